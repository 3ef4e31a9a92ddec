package trade

import (
	"time"

	"github.com/erp/ledger/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSalesOrderRequest represents a request to create a sales order.
// Unit prices are never part of the request; they are resolved from the
// catalog by the customer's pricing tier.
type CreateSalesOrderRequest struct {
	CustomerID uuid.UUID              `json:"customer_id" binding:"required"`
	Lines      []CreateOrderLineInput `json:"lines" binding:"required,min=1,dive"`
	Remark     string                 `json:"remark" binding:"max=500"`
}

// CreateOrderLineInput represents one line in the create order request
type CreateOrderLineInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// SalesOrderListFilter represents filter options for the order list
type SalesOrderListFilter struct {
	Status   *trade.OrderStatus `form:"status"`
	Page     int                `form:"page" binding:"omitempty,min=1"`
	PageSize int                `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNo      string              `json:"order_no"`
	CustomerID   uuid.UUID           `json:"customer_id"`
	CustomerName string              `json:"customer_name"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Status       string              `json:"status"`
	Remark       string              `json:"remark,omitempty"`
	Lines        []OrderLineResponse `json:"lines"`
	ApprovedAt   *time.Time          `json:"approved_at,omitempty"`
	ShippedAt    *time.Time          `json:"shipped_at,omitempty"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ToSalesOrderResponse converts a SalesOrder aggregate to its response form
func ToSalesOrderResponse(order *trade.SalesOrder) SalesOrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal,
		})
	}

	return SalesOrderResponse{
		ID:           order.ID,
		OrderNo:      order.OrderNo,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		TotalAmount:  order.TotalAmount,
		Status:       order.Status.String(),
		Remark:       order.Remark,
		Lines:        lines,
		ApprovedAt:   order.ApprovedAt,
		ShippedAt:    order.ShippedAt,
		CompletedAt:  order.CompletedAt,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

// ToSalesOrderResponses converts a slice of orders
func ToSalesOrderResponses(orders []trade.SalesOrder) []SalesOrderResponse {
	responses := make([]SalesOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToSalesOrderResponse(&orders[i]))
	}
	return responses
}
