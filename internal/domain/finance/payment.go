package finance

import (
	"fmt"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was collected
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodWeChat   PaymentMethod = "WECHAT"
	PaymentMethodAlipay   PaymentMethod = "ALIPAY"
	PaymentMethodOther    PaymentMethod = "OTHER"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodWeChat,
		PaymentMethodAlipay, PaymentMethodOther:
		return true
	}
	return false
}

// Allocation is the portion of a single payment applied to a single
// receivable. It holds a non-owning reference to the receivable by id.
type Allocation struct {
	shared.BaseEntity
	PaymentID    uuid.UUID
	ReceivableID uuid.UUID
	Amount       decimal.Decimal
}

// GetAmountMoney returns the allocated amount as Money
func (a *Allocation) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyCNY(a.Amount)
}

// Payment represents money collected from a customer, distributed across
// one or more receivables through its Allocations. The payment owns its
// allocation rows; they are written together in one transaction.
type Payment struct {
	shared.BaseAggregateRoot
	PaymentNo       string
	CustomerID      uuid.UUID
	Amount          decimal.Decimal
	AllocatedAmount decimal.Decimal
	Method          PaymentMethod
	Remark          string
	Allocations     []Allocation
}

// NewPayment creates a payment shell without allocations
func NewPayment(paymentNo string, customerID uuid.UUID, amount valueobject.Money, method PaymentMethod, remark string) (*Payment, error) {
	if paymentNo == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_NO", "Payment number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Invalid payment method: %s", method))
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PaymentNo:         paymentNo,
		CustomerID:        customerID,
		Amount:            amount.Amount(),
		AllocatedAmount:   decimal.Zero,
		Method:            method,
		Remark:            remark,
		Allocations:       []Allocation{},
	}, nil
}

// AddAllocation appends an allocation against a receivable
func (p *Payment) AddAllocation(receivableID uuid.UUID, amount valueobject.Money) error {
	if receivableID == uuid.Nil {
		return shared.NewDomainError("INVALID_RECEIVABLE", "Receivable ID cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError(shared.CodeInvalidAmount, "Allocation amount must be positive")
	}

	p.Allocations = append(p.Allocations, Allocation{
		BaseEntity:   shared.NewBaseEntity(),
		PaymentID:    p.ID,
		ReceivableID: receivableID,
		Amount:       amount.Amount(),
	})
	p.AllocatedAmount = p.AllocatedAmount.Add(amount.Amount())
	p.Touch()
	return nil
}

// VerifyAllocated checks the invariant that the sum of allocations equals
// the payment amount within the allocation tolerance.
func (p *Payment) VerifyAllocated() error {
	diff := p.AllocatedAmount.Sub(p.Amount).Abs()
	if diff.GreaterThan(valueobject.AllocationTolerance) {
		return shared.NewDomainError(shared.CodeAllocationMismatch,
			fmt.Sprintf("Sum of allocations %s does not match payment amount %s",
				p.AllocatedAmount.StringFixed(2), p.Amount.StringFixed(2)))
	}
	return nil
}

// AllocatedTo returns the total amount this payment allocated to the given
// receivable.
func (p *Payment) AllocatedTo(receivableID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Allocations {
		if a.ReceivableID == receivableID {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyCNY(p.Amount)
}

// AllocationCount returns the number of allocations
func (p *Payment) AllocationCount() int {
	return len(p.Allocations)
}
