package finance

import (
	"context"

	"github.com/erp/ledger/internal/domain/finance"
	"github.com/erp/ledger/internal/domain/partner"
)

// TransactionScope provides transactional access to the repositories the
// payment workflow touches. All repository operations inside Execute share
// one database transaction.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the payment workflow's
// repositories within one transaction. Recording a payment writes the
// payment with its allocation rows, recomputes every touched receivable
// from the allocation sums, and refreshes the customer balance projection.
type TransactionalRepositories interface {
	// Customers returns the customer repository scoped to the current transaction
	Customers() partner.CustomerRepository
	// Receivables returns the receivable repository scoped to the current transaction
	Receivables() finance.ReceivableRepository
	// Payments returns the payment repository scoped to the current transaction
	Payments() finance.PaymentRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are mocks.
type NoOpTransactionScope struct {
	customers   partner.CustomerRepository
	receivables finance.ReceivableRepository
	payments    finance.PaymentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	customers partner.CustomerRepository,
	receivables finance.ReceivableRepository,
	payments finance.PaymentRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		customers:   customers,
		receivables: receivables,
		payments:    payments,
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

// Receivables returns the receivable repository.
func (s *NoOpTransactionScope) Receivables() finance.ReceivableRepository {
	return s.receivables
}

// Payments returns the payment repository.
func (s *NoOpTransactionScope) Payments() finance.PaymentRepository {
	return s.payments
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
