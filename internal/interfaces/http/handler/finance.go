package handler

import (
	appfinance "github.com/erp/ledger/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FinanceHandler handles receivable and payment API endpoints
type FinanceHandler struct {
	BaseHandler
	financeService *appfinance.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService *appfinance.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// RegisterRoutes registers the finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.RecordBatchPayment)
		payments.POST("/single", h.RecordPayment)
	}

	customers := rg.Group("/customers/:id")
	{
		customers.GET("/receivables", h.ListReceivables)
		customers.GET("/payments", h.ListPayments)
		customers.GET("/debt", h.GetCustomerDebt)
	}
}

// RecordBatchPayment records a payment distributed across several receivables
func (h *FinanceHandler) RecordBatchPayment(c *gin.Context) {
	var req appfinance.RecordBatchPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.financeService.RecordBatchPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// RecordPayment records a payment against a single receivable
func (h *FinanceHandler) RecordPayment(c *gin.Context) {
	var req appfinance.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.financeService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// ListReceivables returns a customer's receivables
func (h *FinanceHandler) ListReceivables(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	receivables, err := h.financeService.ListReceivables(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receivables)
}

// ListPayments returns a customer's payments with their allocations
func (h *FinanceHandler) ListPayments(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	payments, err := h.financeService.ListPayments(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// GetCustomerDebt returns a customer's live debt summary
func (h *FinanceHandler) GetCustomerDebt(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	debt, err := h.financeService.GetCustomerDebt(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debt)
}
