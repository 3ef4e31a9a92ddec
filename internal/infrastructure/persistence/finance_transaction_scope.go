package persistence

import (
	"context"

	appfinance "github.com/erp/ledger/internal/application/finance"
	"github.com/erp/ledger/internal/domain/finance"
	"github.com/erp/ledger/internal/domain/partner"
	"gorm.io/gorm"
)

// GormFinanceTransactionScope implements the payment workflow's
// TransactionScope using GORM transactions.
type GormFinanceTransactionScope struct {
	db *gorm.DB
}

// NewGormFinanceTransactionScope creates a new GormFinanceTransactionScope.
func NewGormFinanceTransactionScope(db *gorm.DB) *GormFinanceTransactionScope {
	return &GormFinanceTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormFinanceTransactionScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormFinanceTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormFinanceTransactionalRepositories provides the payment workflow's
// repositories scoped to one transaction.
type gormFinanceTransactionalRepositories struct {
	tx *gorm.DB
}

// Customers returns the customer repository scoped to the current transaction.
func (r *gormFinanceTransactionalRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// Receivables returns the receivable repository scoped to the current transaction.
func (r *gormFinanceTransactionalRepositories) Receivables() finance.ReceivableRepository {
	return NewGormReceivableRepository(r.tx)
}

// Payments returns the payment repository scoped to the current transaction.
func (r *gormFinanceTransactionalRepositories) Payments() finance.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// Ensure GormFinanceTransactionScope implements TransactionScope
var _ appfinance.TransactionScope = (*GormFinanceTransactionScope)(nil)

// Ensure gormFinanceTransactionalRepositories implements TransactionalRepositories
var _ appfinance.TransactionalRepositories = (*gormFinanceTransactionalRepositories)(nil)
