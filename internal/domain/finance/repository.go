package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableRepository defines persistence operations for Receivables
type ReceivableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Receivable, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Receivable, error)
	// FindByCustomer returns all receivables of a customer ordered by
	// creation time ascending.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Receivable, error)
	// FindOpenByCustomer returns the customer's non-PAID receivables.
	FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) ([]Receivable, error)
	Save(ctx context.Context, receivable *Receivable) error
	// SumOutstandingByCustomer computes SUM(amount - paid_amount) over the
	// customer's non-PAID receivables. Callers performing credit checks must
	// invoke it inside the same transaction as the subsequent write.
	SumOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
}

// PaymentRepository defines persistence operations for Payments and their
// Allocations. Save persists the payment together with its allocation rows;
// duplicate payment numbers surface as shared.ErrAlreadyExists.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	// FindByCustomer returns all payments of a customer ordered by creation
	// time ascending, allocations included.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Payment, error)
	FindByCustomerCreatedBefore(ctx context.Context, customerID uuid.UUID, before time.Time) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
	// SumAllocatedByReceivable computes SUM(amount) over all allocation rows
	// that reference the receivable. It is the source of truth for
	// Receivable.RecomputeFromAllocations.
	SumAllocatedByReceivable(ctx context.Context, receivableID uuid.UUID) (decimal.Decimal, error)
}
