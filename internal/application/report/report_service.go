package report

import (
	"context"
	"time"

	"github.com/erp/ledger/internal/domain/finance"
	"github.com/erp/ledger/internal/domain/partner"
	"github.com/erp/ledger/internal/domain/report"
	"github.com/erp/ledger/internal/domain/trade"
	"github.com/google/uuid"
)

// ReportService builds read-only financial reports over a customer's
// receivable and payment history. The computations are pure functions in
// domain/report; this service only loads the inputs.
type ReportService struct {
	customerRepo   partner.CustomerRepository
	orderRepo      trade.SalesOrderRepository
	receivableRepo finance.ReceivableRepository
	paymentRepo    finance.PaymentRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	customerRepo partner.CustomerRepository,
	orderRepo trade.SalesOrderRepository,
	receivableRepo finance.ReceivableRepository,
	paymentRepo finance.PaymentRepository,
) *ReportService {
	return &ReportService{
		customerRepo:   customerRepo,
		orderRepo:      orderRepo,
		receivableRepo: receivableRepo,
		paymentRepo:    paymentRepo,
	}
}

// AnalyzeAging buckets a customer's open receivables by days outstanding
// as of now.
func (s *ReportService) AnalyzeAging(ctx context.Context, customerID uuid.UUID, now time.Time) (*report.AgingAnalysis, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	receivables, err := s.receivableRepo.FindOpenByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	analysis := report.AnalyzeAging(customer.ID, customer.Name, receivables, now)
	return &analysis, nil
}

// GenerateStatement builds the running-balance statement for one calendar
// month from the customer's complete receivable and payment history. Two
// calls with unchanged history produce identical statements.
func (s *ReportService) GenerateStatement(ctx context.Context, customerID uuid.UUID, year, month int) (*report.AccountStatement, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	receivables, err := s.receivableRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	orderNos := make(map[uuid.UUID]string, len(receivables))
	for i := range receivables {
		order, err := s.orderRepo.FindByID(ctx, receivables[i].OrderID)
		if err != nil {
			return nil, err
		}
		orderNos[order.ID] = order.OrderNo
	}

	return report.BuildStatement(customer.ID, customer.Name, year, month, receivables, orderNos, payments)
}
