package finance

import (
	"context"
	"testing"

	"github.com/erp/ledger/internal/domain/finance"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type financeServiceFixture struct {
	customers   *MockCustomerRepository
	receivables *MockReceivableRepository
	payments    *MockPaymentRepository
	service     *FinanceService
}

func newFinanceServiceFixture() *financeServiceFixture {
	customers := new(MockCustomerRepository)
	receivables := new(MockReceivableRepository)
	payments := new(MockPaymentRepository)
	scope := NewNoOpTransactionScope(customers, receivables, payments)
	return &financeServiceFixture{
		customers:   customers,
		receivables: receivables,
		payments:    payments,
		service:     NewFinanceService(scope, customers, receivables, payments),
	}
}

func TestFinanceServiceRecordBatchPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("settles one receivable and partially pays another", func(t *testing.T) {
		f := newFinanceServiceFixture()
		customer := testCustomer()
		r1 := testReceivable(customer.ID, 1000)
		r2 := testReceivable(customer.ID, 5000)

		f.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		f.receivables.On("FindByID", ctx, r1.ID).Return(r1, nil)
		f.receivables.On("FindByID", ctx, r2.ID).Return(r2, nil)
		f.payments.On("Save", ctx, mock.AnythingOfType("*finance.Payment")).Return(nil)
		f.payments.On("SumAllocatedByReceivable", ctx, r1.ID).Return(decimal.NewFromInt(1000), nil)
		f.payments.On("SumAllocatedByReceivable", ctx, r2.ID).Return(decimal.NewFromInt(2000), nil)
		f.receivables.On("Save", ctx, r1).Return(nil)
		f.receivables.On("Save", ctx, r2).Return(nil)
		f.receivables.On("SumOutstandingByCustomer", ctx, customer.ID).Return(decimal.NewFromInt(3000), nil)
		f.customers.On("UpdateBalance", ctx, customer.ID, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(3000))
		})).Return(nil)

		resp, err := f.service.RecordBatchPayment(ctx, RecordBatchPaymentRequest{
			CustomerID: customer.ID,
			Amount:     decimal.NewFromInt(3000),
			Method:     finance.PaymentMethodTransfer,
			Allocations: []AllocationInput{
				{ReceivableID: r1.ID, Amount: decimal.NewFromInt(1000)},
				{ReceivableID: r2.ID, Amount: decimal.NewFromInt(2000)},
			},
		})
		require.NoError(t, err)

		assert.True(t, resp.Amount.Equal(decimal.NewFromInt(3000)))
		require.Len(t, resp.Allocations, 2)

		assert.Equal(t, finance.ReceivableStatusPaid, r1.Status)
		assert.True(t, r1.PaidAmount.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, finance.ReceivableStatusPartial, r2.Status)
		assert.True(t, r2.PaidAmount.Equal(decimal.NewFromInt(2000)))

		f.customers.AssertExpectations(t)
		f.receivables.AssertExpectations(t)
		f.payments.AssertExpectations(t)
	})

	t.Run("accepts drift within the allocation tolerance", func(t *testing.T) {
		f := newFinanceServiceFixture()
		customer := testCustomer()
		r1 := testReceivable(customer.ID, 1000)

		f.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		f.receivables.On("FindByID", ctx, r1.ID).Return(r1, nil)
		f.payments.On("Save", ctx, mock.Anything).Return(nil)
		f.payments.On("SumAllocatedByReceivable", ctx, r1.ID).Return(decimal.NewFromInt(1000), nil)
		f.receivables.On("Save", ctx, r1).Return(nil)
		f.receivables.On("SumOutstandingByCustomer", ctx, customer.ID).Return(decimal.Zero, nil)
		f.customers.On("UpdateBalance", ctx, customer.ID, mock.Anything).Return(nil)

		_, err := f.service.RecordBatchPayment(ctx, RecordBatchPaymentRequest{
			CustomerID: customer.ID,
			Amount:     decimal.RequireFromString("1000.005"),
			Method:     finance.PaymentMethodCash,
			Allocations: []AllocationInput{
				{ReceivableID: r1.ID, Amount: decimal.NewFromInt(1000)},
			},
		})
		assert.NoError(t, err)
	})

	t.Run("rejects allocation sum mismatch beyond tolerance", func(t *testing.T) {
		f := newFinanceServiceFixture()
		customer := testCustomer()
		r1 := testReceivable(customer.ID, 5000)

		f.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		f.receivables.On("FindByID", ctx, r1.ID).Return(r1, nil)

		_, err := f.service.RecordBatchPayment(ctx, RecordBatchPaymentRequest{
			CustomerID: customer.ID,
			Amount:     decimal.NewFromInt(3000),
			Method:     finance.PaymentMethodTransfer,
			Allocations: []AllocationInput{
				{ReceivableID: r1.ID, Amount: decimal.NewFromInt(2500)},
			},
		})
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeAllocationMismatch))

		f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.receivables.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.Equal(t, finance.ReceivableStatusUnpaid, r1.Status)
	})

	t.Run("rejects allocation exceeding outstanding", func(t *testing.T) {
		f := newFinanceServiceFixture()
		customer := testCustomer()
		r1 := testReceivable(customer.ID, 1000)

		f.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		f.receivables.On("FindByID", ctx, r1.ID).Return(r1, nil)

		_, err := f.service.RecordBatchPayment(ctx, RecordBatchPaymentRequest{
			CustomerID: customer.ID,
			Amount:     decimal.NewFromInt(1500),
			Method:     finance.PaymentMethodTransfer,
			Allocations: []AllocationInput{
				{ReceivableID: r1.ID, Amount: decimal.NewFromInt(1500)},
			},
		})
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeOverAllocation))
		f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("two slices against one receivable count together", func(t *testing.T) {
		f := newFinanceServiceFixture()
		customer := testCustomer()
		r1 := testReceivable(customer.ID, 1000)

		f.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		f.receivables.On("FindByID", ctx, r1.ID).Return(r1, nil)

		_, err := f.service.RecordBatchPayment(ctx, RecordBatchPaymentRequest{
			CustomerID: customer.ID,
			Amount:     decimal.NewFromInt(1200),
			Method:     finance.PaymentMethodTransfer,
			Allocations: []AllocationInput{
				{ReceivableID: r1.ID, Amount: decimal.NewFromInt(700)},
				{ReceivableID: r1.ID, Amount: decimal.NewFromInt(500)},
			},
		})
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeOverAllocation))
	})

	t.Run("rejects receivable of another customer", func(t *testing.T) {
		f := newFinanceServiceFixture()
		customer := testCustomer()
		foreign := testReceivable(uuid.New(), 1000)

		f.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		f.receivables.On("FindByID", ctx, foreign.ID).Return(foreign, nil)

		_, err := f.service.RecordBatchPayment(ctx, RecordBatchPaymentRequest{
			CustomerID: customer.ID,
			Amount:     decimal.NewFromInt(1000),
			Method:     finance.PaymentMethodTransfer,
			Allocations: []AllocationInput{
				{ReceivableID: foreign.ID, Amount: decimal.NewFromInt(1000)},
			},
		})
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeOwnershipMismatch))
	})

	t.Run("retries with a fresh number on payment number conflict", func(t *testing.T) {
		f := newFinanceServiceFixture()
		customer := testCustomer()
		r1 := testReceivable(customer.ID, 1000)

		f.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		f.receivables.On("FindByID", ctx, r1.ID).Return(r1, nil)
		f.payments.On("Save", ctx, mock.Anything).Return(shared.ErrAlreadyExists).Once()
		f.payments.On("Save", ctx, mock.Anything).Return(nil).Once()
		f.payments.On("SumAllocatedByReceivable", ctx, r1.ID).Return(decimal.NewFromInt(1000), nil)
		f.receivables.On("Save", ctx, r1).Return(nil)
		f.receivables.On("SumOutstandingByCustomer", ctx, customer.ID).Return(decimal.Zero, nil)
		f.customers.On("UpdateBalance", ctx, customer.ID, mock.Anything).Return(nil)

		resp, err := f.service.RecordBatchPayment(ctx, RecordBatchPaymentRequest{
			CustomerID: customer.ID,
			Amount:     decimal.NewFromInt(1000),
			Method:     finance.PaymentMethodTransfer,
			Allocations: []AllocationInput{
				{ReceivableID: r1.ID, Amount: decimal.NewFromInt(1000)},
			},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.PaymentNo)
		f.payments.AssertNumberOfCalls(t, "Save", 2)
	})
}

func TestFinanceServiceRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("pays a single receivable through the batch path", func(t *testing.T) {
		f := newFinanceServiceFixture()
		customer := testCustomer()
		r1 := testReceivable(customer.ID, 2000)

		f.receivables.On("FindByID", ctx, r1.ID).Return(r1, nil)
		f.customers.On("FindByIDForUpdate", ctx, customer.ID).Return(customer, nil)
		f.payments.On("Save", ctx, mock.Anything).Return(nil)
		f.payments.On("SumAllocatedByReceivable", ctx, r1.ID).Return(decimal.NewFromInt(500), nil)
		f.receivables.On("Save", ctx, r1).Return(nil)
		f.receivables.On("SumOutstandingByCustomer", ctx, customer.ID).Return(decimal.NewFromInt(1500), nil)
		f.customers.On("UpdateBalance", ctx, customer.ID, mock.Anything).Return(nil)

		resp, err := f.service.RecordPayment(ctx, RecordPaymentRequest{
			CustomerID:   customer.ID,
			ReceivableID: r1.ID,
			Amount:       decimal.NewFromInt(500),
			Method:       finance.PaymentMethodWeChat,
		})
		require.NoError(t, err)

		require.Len(t, resp.Allocations, 1)
		assert.Equal(t, r1.ID, resp.Allocations[0].ReceivableID)
		assert.Equal(t, finance.ReceivableStatusPartial, r1.Status)
	})

	t.Run("rejects a fully paid receivable", func(t *testing.T) {
		f := newFinanceServiceFixture()
		customer := testCustomer()
		r1 := testReceivable(customer.ID, 1000)
		require.NoError(t, r1.RecomputeFromAllocations(decimal.NewFromInt(1000)))

		f.receivables.On("FindByID", ctx, r1.ID).Return(r1, nil)

		_, err := f.service.RecordPayment(ctx, RecordPaymentRequest{
			CustomerID:   customer.ID,
			ReceivableID: r1.ID,
			Amount:       decimal.NewFromInt(100),
			Method:       finance.PaymentMethodCash,
		})
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeAlreadyPaid))
		f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a receivable owned by someone else", func(t *testing.T) {
		f := newFinanceServiceFixture()
		foreign := testReceivable(uuid.New(), 1000)

		f.receivables.On("FindByID", ctx, foreign.ID).Return(foreign, nil)

		_, err := f.service.RecordPayment(ctx, RecordPaymentRequest{
			CustomerID:   uuid.New(),
			ReceivableID: foreign.ID,
			Amount:       decimal.NewFromInt(100),
			Method:       finance.PaymentMethodCash,
		})
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeOwnershipMismatch))
	})
}

func TestFinanceServiceReads(t *testing.T) {
	ctx := context.Background()

	t.Run("customer debt summary uses the live outstanding sum", func(t *testing.T) {
		f := newFinanceServiceFixture()
		customer := testCustomer()

		f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.receivables.On("SumOutstandingByCustomer", ctx, customer.ID).Return(decimal.NewFromInt(30000), nil)

		resp, err := f.service.GetCustomerDebt(ctx, customer.ID)
		require.NoError(t, err)

		assert.True(t, resp.TotalDebt.Equal(decimal.NewFromInt(30000)))
		assert.True(t, resp.CreditLimit.Equal(decimal.NewFromInt(100000)))
		assert.True(t, resp.AvailableCredit.Equal(decimal.NewFromInt(70000)))
	})

	t.Run("list receivables maps outstanding", func(t *testing.T) {
		f := newFinanceServiceFixture()
		customer := testCustomer()
		r1 := testReceivable(customer.ID, 1000)
		require.NoError(t, r1.RecomputeFromAllocations(decimal.NewFromInt(400)))

		f.receivables.On("FindByCustomer", ctx, customer.ID).Return([]finance.Receivable{*r1}, nil)

		resps, err := f.service.ListReceivables(ctx, customer.ID)
		require.NoError(t, err)
		require.Len(t, resps, 1)
		assert.True(t, resps[0].Outstanding.Equal(decimal.NewFromInt(600)))
		assert.Equal(t, "PARTIAL", resps[0].Status)
	})

	t.Run("list payments passes not found through", func(t *testing.T) {
		f := newFinanceServiceFixture()
		customerID := uuid.New()
		f.payments.On("FindByCustomer", ctx, customerID).Return(nil, shared.ErrNotFound)

		_, err := f.service.ListPayments(ctx, customerID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
