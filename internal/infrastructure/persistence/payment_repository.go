package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/erp/ledger/internal/domain/finance"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements finance.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment with its allocations by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer returns all payments of a customer ordered by creation time
// ascending, allocations included
func (r *GormPaymentRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]finance.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByCustomerCreatedBefore returns the customer's payments created
// strictly before the cutoff
func (r *GormPaymentRepository) FindByCustomerCreatedBefore(ctx context.Context, customerID uuid.UUID, before time.Time) ([]finance.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("customer_id = ? AND created_at < ?", customerID, before).
		Order("created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// Save creates or updates a payment together with its allocation rows. A
// duplicate payment number surfaces as shared.ErrAlreadyExists.
func (r *GormPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	var model models.PaymentModel
	model.FromDomain(payment)
	return translateError(r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&model).Error)
}

// SumAllocatedByReceivable computes the total amount applied to a receivable
// across all payments
func (r *GormPaymentRepository) SumAllocatedByReceivable(ctx context.Context, receivableID uuid.UUID) (decimal.Decimal, error) {
	var allocated decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.AllocationModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("receivable_id = ?", receivableID).
		Scan(&allocated).Error
	if err != nil {
		return decimal.Zero, err
	}
	return allocated, nil
}

func toDomainPayments(paymentModels []models.PaymentModel) []finance.Payment {
	payments := make([]finance.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}
