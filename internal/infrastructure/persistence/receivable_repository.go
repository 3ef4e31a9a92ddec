package persistence

import (
	"context"
	"errors"

	"github.com/erp/ledger/internal/domain/finance"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReceivableRepository implements finance.ReceivableRepository using GORM
type GormReceivableRepository struct {
	db *gorm.DB
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{db: db}
}

// FindByID finds a receivable by its ID
func (r *GormReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderID finds the receivable issued for an order
func (r *GormReceivableRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*finance.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer returns all receivables of a customer ordered by creation
// time ascending
func (r *GormReceivableRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]finance.Receivable, error) {
	var receivableModels []models.ReceivableModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&receivableModels).Error; err != nil {
		return nil, err
	}
	return toDomainReceivables(receivableModels), nil
}

// FindOpenByCustomer returns the customer's non-PAID receivables ordered by
// creation time ascending
func (r *GormReceivableRepository) FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) ([]finance.Receivable, error) {
	var receivableModels []models.ReceivableModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status <> ?", customerID, finance.ReceivableStatusPaid).
		Order("created_at ASC").
		Find(&receivableModels).Error; err != nil {
		return nil, err
	}
	return toDomainReceivables(receivableModels), nil
}

// Save creates or updates a receivable
func (r *GormReceivableRepository) Save(ctx context.Context, receivable *finance.Receivable) error {
	var model models.ReceivableModel
	model.FromDomain(receivable)
	return translateError(r.db.WithContext(ctx).Save(&model).Error)
}

// SumOutstandingByCustomer computes the customer's total open debt in SQL so
// credit checks see the committed state of the transaction they run in.
func (r *GormReceivableRepository) SumOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var outstanding decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.ReceivableModel{}).
		Select("COALESCE(SUM(amount - paid_amount), 0)").
		Where("customer_id = ? AND status <> ?", customerID, finance.ReceivableStatusPaid).
		Scan(&outstanding).Error
	if err != nil {
		return decimal.Zero, err
	}
	return outstanding, nil
}

func toDomainReceivables(receivableModels []models.ReceivableModel) []finance.Receivable {
	receivables := make([]finance.Receivable, len(receivableModels))
	for i, model := range receivableModels {
		receivables[i] = *model.ToDomain()
	}
	return receivables
}
