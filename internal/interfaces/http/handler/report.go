package handler

import (
	"time"

	appreport "github.com/erp/ledger/internal/application/report"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StatementRequest carries the statement period
type StatementRequest struct {
	Year  int `form:"year" binding:"required,min=1970"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// ReportHandler handles aging and statement API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *appreport.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *appreport.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers/:id")
	{
		customers.GET("/aging", h.GetAging)
		customers.GET("/statement", h.GetStatement)
	}
}

// GetAging returns a customer's open receivables bucketed by age
func (h *ReportHandler) GetAging(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	analysis, err := h.reportService.AnalyzeAging(c.Request.Context(), customerID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, analysis)
}

// GetStatement returns a customer's monthly statement with running balance
func (h *ReportHandler) GetStatement(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	statement, err := h.reportService.GenerateStatement(c.Request.Context(), customerID, req.Year, req.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}
