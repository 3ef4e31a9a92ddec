package finance

import (
	"time"

	"github.com/erp/ledger/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationInput represents one slice of a batch payment
type AllocationInput struct {
	ReceivableID uuid.UUID       `json:"receivable_id" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

// RecordBatchPaymentRequest represents a payment distributed across several
// receivables. The allocation amounts must sum to the payment amount within
// the allocation tolerance.
type RecordBatchPaymentRequest struct {
	CustomerID  uuid.UUID             `json:"customer_id" binding:"required"`
	Amount      decimal.Decimal       `json:"amount" binding:"required"`
	Method      finance.PaymentMethod `json:"method" binding:"required"`
	Remark      string                `json:"remark" binding:"max=500"`
	Allocations []AllocationInput     `json:"allocations" binding:"required,min=1,dive"`
}

// RecordPaymentRequest represents a payment against a single receivable
type RecordPaymentRequest struct {
	CustomerID   uuid.UUID             `json:"customer_id" binding:"required"`
	ReceivableID uuid.UUID             `json:"receivable_id" binding:"required"`
	Amount       decimal.Decimal       `json:"amount" binding:"required"`
	Method       finance.PaymentMethod `json:"method" binding:"required"`
	Remark       string                `json:"remark" binding:"max=500"`
}

// AllocationResponse represents an allocation in API responses
type AllocationResponse struct {
	ReceivableID uuid.UUID       `json:"receivable_id"`
	Amount       decimal.Decimal `json:"amount"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID            `json:"id"`
	PaymentNo   string               `json:"payment_no"`
	CustomerID  uuid.UUID            `json:"customer_id"`
	Amount      decimal.Decimal      `json:"amount"`
	Method      string               `json:"method"`
	Remark      string               `json:"remark,omitempty"`
	Allocations []AllocationResponse `json:"allocations"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ReceivableResponse represents a receivable in API responses
type ReceivableResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CustomerDebtResponse summarizes a customer's debt position
type CustomerDebtResponse struct {
	CustomerID      uuid.UUID       `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	TotalDebt       decimal.Decimal `json:"total_debt"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
}

// ToPaymentResponse converts a Payment aggregate to its response form
func ToPaymentResponse(payment *finance.Payment) PaymentResponse {
	allocations := make([]AllocationResponse, 0, len(payment.Allocations))
	for _, a := range payment.Allocations {
		allocations = append(allocations, AllocationResponse{
			ReceivableID: a.ReceivableID,
			Amount:       a.Amount,
		})
	}

	return PaymentResponse{
		ID:          payment.ID,
		PaymentNo:   payment.PaymentNo,
		CustomerID:  payment.CustomerID,
		Amount:      payment.Amount,
		Method:      string(payment.Method),
		Remark:      payment.Remark,
		Allocations: allocations,
		CreatedAt:   payment.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of payments
func ToPaymentResponses(payments []finance.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i]))
	}
	return responses
}

// ToReceivableResponse converts a Receivable aggregate to its response form
func ToReceivableResponse(receivable *finance.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ID:          receivable.ID,
		OrderID:     receivable.OrderID,
		CustomerID:  receivable.CustomerID,
		Amount:      receivable.Amount,
		PaidAmount:  receivable.PaidAmount,
		Outstanding: receivable.Outstanding(),
		Status:      receivable.Status.String(),
		CreatedAt:   receivable.CreatedAt,
	}
}

// ToReceivableResponses converts a slice of receivables
func ToReceivableResponses(receivables []finance.Receivable) []ReceivableResponse {
	responses := make([]ReceivableResponse, 0, len(receivables))
	for i := range receivables {
		responses = append(responses, ToReceivableResponse(&receivables[i]))
	}
	return responses
}
