package handler

import (
	"github.com/gin-gonic/gin"

	"distrobill/internal/service"
)

// ReportHandler handles report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Inventory handles GET /api/v1/reports/inventory
// @Summary Inventory by product
// @Description Stock quantities rolled up per product with batch count and earliest expiry.
// @Tags reports
// @Produce json
// @Success 200 {object} Response{data=[]report.InventoryRow}
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /reports/inventory [get]
func (h *ReportHandler) Inventory(c *gin.Context) {
	rows, err := h.reportService.Inventory(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// MonthlySales handles GET /api/v1/reports/sales/monthly
// @Summary Monthly sales
// @Description Gross challan value per calendar month, grouped by year.
// @Tags reports
// @Produce json
// @Success 200 {object} Response{data=[]report.YearSales}
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /reports/sales/monthly [get]
func (h *ReportHandler) MonthlySales(c *gin.Context) {
	years, err := h.reportService.MonthlySales(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, years)
}
