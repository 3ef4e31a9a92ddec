package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/ledger/internal/domain/finance"
	"github.com/erp/ledger/internal/domain/partner"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// FinanceService records customer payments against receivables and serves
// the receivable ledger's read paths.
type FinanceService struct {
	scope          TransactionScope
	customerRepo   partner.CustomerRepository
	receivableRepo finance.ReceivableRepository
	paymentRepo    finance.PaymentRepository
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(
	scope TransactionScope,
	customerRepo partner.CustomerRepository,
	receivableRepo finance.ReceivableRepository,
	paymentRepo finance.PaymentRepository,
) *FinanceService {
	return &FinanceService{
		scope:          scope,
		customerRepo:   customerRepo,
		receivableRepo: receivableRepo,
		paymentRepo:    paymentRepo,
	}
}

// RecordBatchPayment records one payment distributed across several
// receivables. Every allocation is validated before anything is written:
// the receivable must belong to the paying customer, the allocation must
// fit into its outstanding balance, and the allocations must sum to the
// payment amount within the tolerance. The payment with its allocation
// rows, the recomputed receivables and the refreshed customer balance are
// then committed atomically.
func (s *FinanceService) RecordBatchPayment(ctx context.Context, req RecordBatchPaymentRequest) (*PaymentResponse, error) {
	if len(req.Allocations) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Payment must have at least one allocation")
	}

	var recorded *finance.Payment
	var lastErr error

	for attempt := 0; attempt < shared.MaxNumberAttempts; attempt++ {
		paymentNo := shared.NewDocumentNo("PAY", time.Now())

		lastErr = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			payment, err := s.recordInTx(ctx, repos, paymentNo, req)
			if err != nil {
				return err
			}
			recorded = payment
			return nil
		})
		if lastErr == nil {
			response := ToPaymentResponse(recorded)
			return &response, nil
		}
		if !errors.Is(lastErr, shared.ErrAlreadyExists) {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("payment number generation exhausted retries: %w", lastErr)
}

func (s *FinanceService) recordInTx(ctx context.Context, repos TransactionalRepositories, paymentNo string, req RecordBatchPaymentRequest) (*finance.Payment, error) {
	customer, err := repos.Customers().FindByIDForUpdate(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	payment, err := finance.NewPayment(paymentNo, customer.ID,
		valueobject.NewMoneyCNY(req.Amount), req.Method, req.Remark)
	if err != nil {
		return nil, err
	}

	// Validate every allocation before any write. A batch may carry two
	// slices against the same receivable; AllocatedTo accounts for slices
	// already staged on this payment.
	touched := make(map[uuid.UUID]*finance.Receivable)
	for _, input := range req.Allocations {
		receivable, ok := touched[input.ReceivableID]
		if !ok {
			receivable, err = repos.Receivables().FindByID(ctx, input.ReceivableID)
			if err != nil {
				return nil, err
			}
			touched[input.ReceivableID] = receivable
		}
		if receivable.CustomerID != customer.ID {
			return nil, shared.NewDomainError(shared.CodeOwnershipMismatch,
				fmt.Sprintf("Receivable %s does not belong to customer %s", receivable.ID, customer.Code))
		}

		staged := payment.AllocatedTo(receivable.ID).Add(input.Amount)
		if !receivable.CanAccept(staged) {
			return nil, shared.NewDomainError(shared.CodeOverAllocation,
				fmt.Sprintf("Allocation %s exceeds outstanding %s on receivable %s",
					staged.StringFixed(2), receivable.Outstanding().StringFixed(2), receivable.ID))
		}
		if err := payment.AddAllocation(receivable.ID, valueobject.NewMoneyCNY(input.Amount)); err != nil {
			return nil, err
		}
	}
	if err := payment.VerifyAllocated(); err != nil {
		return nil, err
	}

	if err := repos.Payments().Save(ctx, payment); err != nil {
		return nil, err
	}

	// Recompute each receivable from the full allocation sum across all
	// payments, not by incrementing the cached paid amount.
	for _, receivable := range touched {
		allocated, err := repos.Payments().SumAllocatedByReceivable(ctx, receivable.ID)
		if err != nil {
			return nil, err
		}
		if err := receivable.RecomputeFromAllocations(allocated); err != nil {
			return nil, err
		}
		if err := repos.Receivables().Save(ctx, receivable); err != nil {
			return nil, err
		}
	}

	outstanding, err := repos.Receivables().SumOutstandingByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if err := repos.Customers().UpdateBalance(ctx, customer.ID, outstanding); err != nil {
		return nil, err
	}

	return payment, nil
}

// RecordPayment records a payment against a single receivable. It rejects
// fully settled targets early, then delegates to the batch path with one
// allocation.
func (s *FinanceService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	receivable, err := s.receivableRepo.FindByID(ctx, req.ReceivableID)
	if err != nil {
		return nil, err
	}
	if receivable.IsPaid() {
		return nil, shared.NewDomainError(shared.CodeAlreadyPaid,
			fmt.Sprintf("Receivable %s is already fully paid", receivable.ID))
	}
	if receivable.CustomerID != req.CustomerID {
		return nil, shared.NewDomainError(shared.CodeOwnershipMismatch,
			fmt.Sprintf("Receivable %s does not belong to customer %s", receivable.ID, req.CustomerID))
	}

	return s.RecordBatchPayment(ctx, RecordBatchPaymentRequest{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Method:     req.Method,
		Remark:     req.Remark,
		Allocations: []AllocationInput{
			{ReceivableID: req.ReceivableID, Amount: req.Amount},
		},
	})
}

// ListReceivables returns all receivables of a customer, oldest first
func (s *FinanceService) ListReceivables(ctx context.Context, customerID uuid.UUID) ([]ReceivableResponse, error) {
	receivables, err := s.receivableRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToReceivableResponses(receivables), nil
}

// ListPayments returns all payments of a customer with their allocations,
// oldest first
func (s *FinanceService) ListPayments(ctx context.Context, customerID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

// GetCustomerDebt summarizes a customer's debt position from the live
// outstanding sum, not the cached balance projection.
func (s *FinanceService) GetCustomerDebt(ctx context.Context, customerID uuid.UUID) (*CustomerDebtResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	debt, err := s.receivableRepo.SumOutstandingByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return &CustomerDebtResponse{
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CreditLimit:     customer.CreditLimit,
		TotalDebt:       debt,
		AvailableCredit: customer.CreditLimit.Sub(debt),
	}, nil
}
