package handler

import (
	"context"

	apptrade "github.com/erp/ledger/internal/application/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles sales order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *apptrade.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apptrade.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("/:id", h.GetByID)
		orders.GET("/number/:orderNo", h.GetByOrderNo)
		orders.POST("/:id/approve", h.Approve)
		orders.POST("/:id/ship", h.Ship)
		orders.POST("/:id/complete", h.Complete)
	}

	rg.GET("/customers/:id/orders", h.ListByCustomer)
}

// Create creates a sales order with its receivable
func (h *OrderHandler) Create(c *gin.Context) {
	var req apptrade.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID returns a sales order by ID
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByOrderNo returns a sales order by its document number
func (h *OrderHandler) GetByOrderNo(c *gin.Context) {
	order, err := h.orderService.GetByOrderNo(c.Request.Context(), c.Param("orderNo"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Approve moves a pending order to APPROVED
func (h *OrderHandler) Approve(c *gin.Context) {
	h.transition(c, h.orderService.Approve)
}

// Ship moves an approved order to SHIPPED
func (h *OrderHandler) Ship(c *gin.Context) {
	h.transition(c, h.orderService.Ship)
}

// Complete moves a shipped order to COMPLETED
func (h *OrderHandler) Complete(c *gin.Context) {
	h.transition(c, h.orderService.Complete)
}

// ListByCustomer returns a customer's orders, optionally filtered by status
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var filter apptrade.SalesOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.orderService.ListByCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, orders, page, pageSize)
}

func (h *OrderHandler) transition(c *gin.Context, step func(ctx context.Context, orderID uuid.UUID) (*apptrade.SalesOrderResponse, error)) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := step(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
