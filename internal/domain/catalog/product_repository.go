package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for the Product aggregate
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	Save(ctx context.Context, product *Product) error
	// DecrementStock performs an atomic conditional decrement:
	//   UPDATE products SET stock = stock - qty WHERE id = ? AND stock >= qty
	// It returns the number of rows affected; zero signals insufficient stock.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int64) (int64, error)
	// IncrementStock adds qty back to stock (restock, future cancellation
	// compensation).
	IncrementStock(ctx context.Context, id uuid.UUID, qty int64) error
}
