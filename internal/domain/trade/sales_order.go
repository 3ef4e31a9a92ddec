package trade

import (
	"fmt"
	"time"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusApproved  OrderStatus = "APPROVED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	// OrderStatusCancelled is declared but currently has no entry transition.
	// Enabling it requires deciding on stock release and receivable voiding.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// next returns the only status reachable from s. The workflow is strictly
// linear: PENDING -> APPROVED -> SHIPPED -> COMPLETED.
func (s OrderStatus) next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusApproved, true
	case OrderStatusApproved:
		return OrderStatusShipped, true
	case OrderStatusShipped:
		return OrderStatusCompleted, true
	}
	return "", false
}

// CanTransitionTo reports whether target is the legal next status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	next, ok := s.next()
	return ok && next == target
}

// IsTerminal returns true if no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// OrderLine represents one line of a sales order. Unit price is a snapshot
// taken at order time; later catalog price changes never affect it.
type OrderLine struct {
	shared.BaseEntity
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int64
	Subtotal    decimal.Decimal
}

// GetUnitPriceMoney returns the snapshot unit price as Money
func (l *OrderLine) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyCNY(l.UnitPrice)
}

// GetSubtotalMoney returns the line subtotal as Money
func (l *OrderLine) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyCNY(l.Subtotal)
}

// SalesOrder represents a sales order aggregate root. The order is created
// atomically with its lines and exactly one receivable; TotalAmount is fixed
// at creation and never recomputed afterwards.
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNo      string
	CustomerID   uuid.UUID
	CustomerName string
	TotalAmount  decimal.Decimal
	Status       OrderStatus
	Remark       string
	ApprovedAt   *time.Time
	ShippedAt    *time.Time
	CompletedAt  *time.Time
	Lines        []OrderLine
}

// NewSalesOrder creates a new pending sales order without lines
func NewSalesOrder(orderNo string, customerID uuid.UUID, customerName string) (*SalesOrder, error) {
	if orderNo == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NO", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	return &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNo:           orderNo,
		CustomerID:        customerID,
		CustomerName:      customerName,
		TotalAmount:       decimal.Zero,
		Status:            OrderStatusPending,
		Lines:             []OrderLine{},
	}, nil
}

// AddLine appends a line with a snapshot unit price and recomputes the
// total. Lines can only be added while the order is still PENDING, i.e.
// during the creation transaction.
func (o *SalesOrder) AddLine(productID uuid.UUID, productName string, unitPrice valueobject.Money, quantity int64) (*OrderLine, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError(shared.CodeInvalidStateTransition,
			fmt.Sprintf("Cannot add lines to order in %s status", o.Status))
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Line quantity must be positive")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Line unit price must be positive")
	}

	subtotal := unitPrice.MultiplyByInt(quantity)
	line := OrderLine{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice.Amount(),
		Quantity:    quantity,
		Subtotal:    subtotal.Amount(),
	}
	o.Lines = append(o.Lines, line)
	o.TotalAmount = o.TotalAmount.Add(subtotal.Amount())
	o.Touch()

	return &o.Lines[len(o.Lines)-1], nil
}

// SetRemark sets the free-text remark
func (o *SalesOrder) SetRemark(remark string) {
	o.Remark = remark
	o.Touch()
}

// Approve moves the order from PENDING to APPROVED
func (o *SalesOrder) Approve() error {
	if err := o.transition(OrderStatusApproved); err != nil {
		return err
	}
	now := time.Now()
	o.ApprovedAt = &now
	return nil
}

// Ship moves the order from APPROVED to SHIPPED
func (o *SalesOrder) Ship() error {
	if err := o.transition(OrderStatusShipped); err != nil {
		return err
	}
	now := time.Now()
	o.ShippedAt = &now
	return nil
}

// Complete moves the order from SHIPPED to COMPLETED
func (o *SalesOrder) Complete() error {
	if err := o.transition(OrderStatusCompleted); err != nil {
		return err
	}
	now := time.Now()
	o.CompletedAt = &now
	return nil
}

func (o *SalesOrder) transition(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			fmt.Sprintf("Cannot transition order %s from %s to %s", o.OrderNo, o.Status, target))
	}
	o.Status = target
	o.Touch()
	o.IncrementVersion()
	return nil
}

// GetTotalAmountMoney returns the order total as Money
func (o *SalesOrder) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyCNY(o.TotalAmount)
}

// LineCount returns the number of order lines
func (o *SalesOrder) LineCount() int {
	return len(o.Lines)
}

// IsPending returns true if the order awaits approval
func (o *SalesOrder) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsCompleted returns true if the order reached its terminal state
func (o *SalesOrder) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}
