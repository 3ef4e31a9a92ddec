package models

import (
	"github.com/erp/ledger/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableModel is the persistence model for the Receivable aggregate.
// The unique index on OrderID enforces the one-receivable-per-order rule at
// the database level.
type ReceivableModel struct {
	AggregateModel
	OrderID    uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_receivable_order"`
	CustomerID uuid.UUID                `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	PaidAmount decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Status     finance.ReceivableStatus `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
}

// TableName returns the table name for GORM
func (ReceivableModel) TableName() string {
	return "receivables"
}

// ToDomain converts the persistence model to a domain Receivable
func (m *ReceivableModel) ToDomain() *finance.Receivable {
	return &finance.Receivable{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderID:           m.OrderID,
		CustomerID:        m.CustomerID,
		Amount:            m.Amount,
		PaidAmount:        m.PaidAmount,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Receivable
func (m *ReceivableModel) FromDomain(r *finance.Receivable) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.OrderID = r.OrderID
	m.CustomerID = r.CustomerID
	m.Amount = r.Amount
	m.PaidAmount = r.PaidAmount
	m.Status = r.Status
}

// PaymentModel is the persistence model for the Payment aggregate. The
// allocation rows are saved through the association so a payment and its
// allocations commit together.
type PaymentModel struct {
	AggregateModel
	PaymentNo       string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_payment_no"`
	CustomerID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	AllocatedAmount decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Method          finance.PaymentMethod `gorm:"type:varchar(20);not null"`
	Remark          string                `gorm:"type:text"`
	Allocations     []AllocationModel     `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// AllocationModel is the persistence model for a payment allocation.
type AllocationModel struct {
	BaseModel
	PaymentID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReceivableID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (AllocationModel) TableName() string {
	return "payment_allocations"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *finance.Payment {
	allocations := make([]finance.Allocation, len(m.Allocations))
	for i, am := range m.Allocations {
		allocations[i] = finance.Allocation{
			BaseEntity:   am.BaseModel.ToDomain(),
			PaymentID:    am.PaymentID,
			ReceivableID: am.ReceivableID,
			Amount:       am.Amount,
		}
	}

	return &finance.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PaymentNo:         m.PaymentNo,
		CustomerID:        m.CustomerID,
		Amount:            m.Amount,
		AllocatedAmount:   m.AllocatedAmount,
		Method:            m.Method,
		Remark:            m.Remark,
		Allocations:       allocations,
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *finance.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.PaymentNo = p.PaymentNo
	m.CustomerID = p.CustomerID
	m.Amount = p.Amount
	m.AllocatedAmount = p.AllocatedAmount
	m.Method = p.Method
	m.Remark = p.Remark

	m.Allocations = make([]AllocationModel, len(p.Allocations))
	for i, a := range p.Allocations {
		m.Allocations[i] = AllocationModel{
			PaymentID:    a.PaymentID,
			ReceivableID: a.ReceivableID,
			Amount:       a.Amount,
		}
		m.Allocations[i].FromDomainBaseEntity(a.BaseEntity)
	}
}
