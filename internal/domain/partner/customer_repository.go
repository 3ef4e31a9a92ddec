package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines persistence operations for the Customer aggregate
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	// FindByIDForUpdate loads the customer under a row lock so concurrent
	// credit checks against the same customer serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByCode(ctx context.Context, code string) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
	// UpdateBalance writes the cached outstanding-balance projection.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}
