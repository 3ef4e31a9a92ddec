package trade

import (
	"context"

	"github.com/erp/ledger/internal/domain/catalog"
	"github.com/erp/ledger/internal/domain/finance"
	"github.com/erp/ledger/internal/domain/partner"
	"github.com/erp/ledger/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories the
// order workflow touches. When a function is executed within a scope, all
// repository operations are part of the same database transaction and are
// committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the order workflow's
// repositories within one transaction. Order creation spans four
// aggregates: the customer row is locked for the credit check, products
// take conditional stock decrements, the order is inserted with its lines,
// and the receivable is issued alongside it.
type TransactionalRepositories interface {
	// Customers returns the customer repository scoped to the current transaction
	Customers() partner.CustomerRepository
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Orders returns the sales order repository scoped to the current transaction
	Orders() trade.SalesOrderRepository
	// Receivables returns the receivable repository scoped to the current transaction
	Receivables() finance.ReceivableRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are mocks.
type NoOpTransactionScope struct {
	customers   partner.CustomerRepository
	products    catalog.ProductRepository
	orders      trade.SalesOrderRepository
	receivables finance.ReceivableRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	customers partner.CustomerRepository,
	products catalog.ProductRepository,
	orders trade.SalesOrderRepository,
	receivables finance.ReceivableRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		customers:   customers,
		products:    products,
		orders:      orders,
		receivables: receivables,
	}
}

// Execute runs the function directly against the wrapped repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Customers returns the customer repository.
func (s *NoOpTransactionScope) Customers() partner.CustomerRepository {
	return s.customers
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.products
}

// Orders returns the sales order repository.
func (s *NoOpTransactionScope) Orders() trade.SalesOrderRepository {
	return s.orders
}

// Receivables returns the receivable repository.
func (s *NoOpTransactionScope) Receivables() finance.ReceivableRepository {
	return s.receivables
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
