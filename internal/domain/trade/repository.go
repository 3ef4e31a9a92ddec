package trade

import (
	"context"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// SalesOrderRepository defines persistence operations for the SalesOrder
// aggregate. Save persists the order together with its lines; duplicate
// order numbers surface as shared.ErrAlreadyExists so callers can retry
// with a fresh candidate.
type SalesOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	FindByOrderNo(ctx context.Context, orderNo string) (*SalesOrder, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]SalesOrder, error)
	Save(ctx context.Context, order *SalesOrder) error
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)
}
