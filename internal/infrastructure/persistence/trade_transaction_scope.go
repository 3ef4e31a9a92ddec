package persistence

import (
	"context"

	apptrade "github.com/erp/ledger/internal/application/trade"
	"github.com/erp/ledger/internal/domain/catalog"
	"github.com/erp/ledger/internal/domain/finance"
	"github.com/erp/ledger/internal/domain/partner"
	"github.com/erp/ledger/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTradeTransactionScope implements the order workflow's TransactionScope
// using GORM transactions.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope.
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTradeTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTradeTransactionalRepositories provides the order workflow's
// repositories scoped to one transaction.
type gormTradeTransactionalRepositories struct {
	tx *gorm.DB
}

// Customers returns the customer repository scoped to the current transaction.
func (r *gormTradeTransactionalRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// Products returns the product repository scoped to the current transaction.
func (r *gormTradeTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Orders returns the sales order repository scoped to the current transaction.
func (r *gormTradeTransactionalRepositories) Orders() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

// Receivables returns the receivable repository scoped to the current transaction.
func (r *gormTradeTransactionalRepositories) Receivables() finance.ReceivableRepository {
	return NewGormReceivableRepository(r.tx)
}

// Ensure GormTradeTransactionScope implements TransactionScope
var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)

// Ensure gormTradeTransactionalRepositories implements TransactionalRepositories
var _ apptrade.TransactionalRepositories = (*gormTradeTransactionalRepositories)(nil)
