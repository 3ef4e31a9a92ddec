package finance

import (
	"time"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the settlement status of a receivable.
// The status is always derived from the allocation history, never stored
// independently of it.
type ReceivableStatus string

const (
	ReceivableStatusUnpaid  ReceivableStatus = "UNPAID"
	ReceivableStatusPartial ReceivableStatus = "PARTIAL"
	ReceivableStatusPaid    ReceivableStatus = "PAID"
)

// IsValid checks if the status is a valid ReceivableStatus
func (s ReceivableStatus) IsValid() bool {
	return s == ReceivableStatusUnpaid || s == ReceivableStatusPartial || s == ReceivableStatusPaid
}

// String returns the string representation of ReceivableStatus
func (s ReceivableStatus) String() string {
	return string(s)
}

// Receivable represents money owed by a customer for exactly one order.
// Amount is fixed at issuance; PaidAmount and Status are projections of the
// allocation rows and change only through RecomputeFromAllocations.
type Receivable struct {
	shared.BaseAggregateRoot
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	PaidAmount decimal.Decimal
	Status     ReceivableStatus
}

// NewReceivable issues a receivable for an order
func NewReceivable(orderID, customerID uuid.UUID, amount valueobject.Money) (*Receivable, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Receivable amount must be positive")
	}

	return &Receivable{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		CustomerID:        customerID,
		Amount:            amount.Amount(),
		PaidAmount:        decimal.Zero,
		Status:            ReceivableStatusUnpaid,
	}, nil
}

// RecomputeFromAllocations sets PaidAmount to the given allocation sum and
// derives the status. This is the only sanctioned way PaidAmount changes.
func (r *Receivable) RecomputeFromAllocations(allocatedTotal decimal.Decimal) error {
	if allocatedTotal.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidAmount, "Allocated total cannot be negative")
	}
	if allocatedTotal.GreaterThan(r.Amount) {
		return shared.NewDomainError(shared.CodeOverAllocation,
			"Allocated total exceeds receivable amount")
	}

	r.PaidAmount = allocatedTotal
	switch {
	case allocatedTotal.Equal(r.Amount):
		r.Status = ReceivableStatusPaid
	case allocatedTotal.IsPositive():
		r.Status = ReceivableStatusPartial
	default:
		r.Status = ReceivableStatusUnpaid
	}
	r.Touch()
	r.IncrementVersion()
	return nil
}

// Outstanding returns amount minus paid amount
func (r *Receivable) Outstanding() decimal.Decimal {
	return r.Amount.Sub(r.PaidAmount)
}

// GetOutstandingMoney returns the outstanding amount as Money
func (r *Receivable) GetOutstandingMoney() valueobject.Money {
	return valueobject.NewMoneyCNY(r.Outstanding())
}

// CanAccept reports whether an allocation of amount fits into the current
// outstanding balance.
func (r *Receivable) CanAccept(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.LessThanOrEqual(r.Outstanding())
}

// IsPaid returns true if the receivable is fully settled
func (r *Receivable) IsPaid() bool {
	return r.Status == ReceivableStatusPaid
}

// IsUnpaid returns true if nothing has been allocated yet
func (r *Receivable) IsUnpaid() bool {
	return r.Status == ReceivableStatusUnpaid
}

// AgeInDays returns the number of whole days since issuance
func (r *Receivable) AgeInDays(now time.Time) int {
	if now.Before(r.CreatedAt) {
		return 0
	}
	return int(now.Sub(r.CreatedAt).Hours() / 24)
}
