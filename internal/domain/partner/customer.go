package partner

import (
	"fmt"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CustomerLevel represents the pricing tier of a customer
type CustomerLevel string

const (
	CustomerLevelNormal CustomerLevel = "NORMAL"
	CustomerLevelVIP    CustomerLevel = "VIP"
)

// IsValid checks if the level is a valid CustomerLevel
func (l CustomerLevel) IsValid() bool {
	return l == CustomerLevelNormal || l == CustomerLevelVIP
}

// String returns the string representation of CustomerLevel
func (l CustomerLevel) String() string {
	return string(l)
}

// CustomerStatus represents the lifecycle status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
)

// IsValid checks if the status is a valid CustomerStatus
func (s CustomerStatus) IsValid() bool {
	return s == CustomerStatusActive || s == CustomerStatusInactive
}

// Customer represents a wholesale customer aggregate root.
// Balance is a cached projection of the customer's outstanding receivables;
// it is refreshed by the receivable ledger and never edited directly.
type Customer struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	ContactName string
	Phone       string
	Level       CustomerLevel
	Status      CustomerStatus
	CreditLimit decimal.Decimal
	Balance     decimal.Decimal
}

// NewCustomer creates a new customer with zero credit limit and balance
func NewCustomer(code, name string, level CustomerLevel) (*Customer, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if !level.IsValid() {
		return nil, shared.NewDomainError("INVALID_LEVEL", fmt.Sprintf("Invalid customer level: %s", level))
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Level:             level,
		Status:            CustomerStatusActive,
		CreditLimit:       decimal.Zero,
		Balance:           decimal.Zero,
	}, nil
}

// SetContact sets the contact details
func (c *Customer) SetContact(contactName, phone string) {
	c.ContactName = contactName
	c.Phone = phone
	c.Touch()
	c.IncrementVersion()
}

// SetLevel changes the pricing tier
func (c *Customer) SetLevel(level CustomerLevel) error {
	if !level.IsValid() {
		return shared.NewDomainError("INVALID_LEVEL", fmt.Sprintf("Invalid customer level: %s", level))
	}
	c.Level = level
	c.Touch()
	c.IncrementVersion()
	return nil
}

// SetCreditLimit sets the customer's credit limit
func (c *Customer) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidAmount, "Credit limit cannot be negative")
	}
	c.CreditLimit = limit
	c.Touch()
	c.IncrementVersion()
	return nil
}

// CheckCredit verifies that taking on an additional receivable of amount
// keeps the customer within their credit limit, given the currently
// outstanding balance. The outstanding value must be read inside the same
// transaction as the order write.
func (c *Customer) CheckCredit(outstanding, amount decimal.Decimal) error {
	if outstanding.Add(amount).GreaterThan(c.CreditLimit) {
		return shared.NewDomainError(shared.CodeCreditLimitExceeded,
			fmt.Sprintf("Order amount %s exceeds available credit (limit %s, outstanding %s)",
				amount.StringFixed(2), c.CreditLimit.StringFixed(2), outstanding.StringFixed(2)))
	}
	return nil
}

// AvailableCredit returns creditLimit minus the cached outstanding balance
func (c *Customer) AvailableCredit() decimal.Decimal {
	return c.CreditLimit.Sub(c.Balance)
}

// RefreshBalance overwrites the cached outstanding-balance projection.
// Only the receivable ledger calls this after a commit.
func (c *Customer) RefreshBalance(outstanding decimal.Decimal) {
	c.Balance = outstanding
	c.Touch()
}

// PriceTierIsVIP returns true if the customer gets VIP pricing
func (c *Customer) PriceTierIsVIP() bool {
	return c.Level == CustomerLevelVIP
}

// Activate marks the customer as active
func (c *Customer) Activate() {
	c.Status = CustomerStatusActive
	c.Touch()
	c.IncrementVersion()
}

// Deactivate marks the customer as inactive; inactive customers cannot order
func (c *Customer) Deactivate() {
	c.Status = CustomerStatusInactive
	c.Touch()
	c.IncrementVersion()
}

// IsActive returns true if the customer can place orders
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// GetCreditLimitMoney returns the credit limit as Money
func (c *Customer) GetCreditLimitMoney() valueobject.Money {
	return valueobject.NewMoneyCNY(c.CreditLimit)
}

// GetBalanceMoney returns the cached outstanding balance as Money
func (c *Customer) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyCNY(c.Balance)
}
