package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"distrobill/internal/billing"
	"distrobill/internal/domain"
	"distrobill/internal/service"
)

// InvoiceHandler handles challan invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Get handles GET /api/v1/challans/:id/invoice
// @Summary Compute a challan invoice
// @Description Computes the GST-inclusive invoice of a stored challan. Amounts are formatted to two decimals.
// @Tags invoices
// @Produce json
// @Param id path string true "Challan ID"
// @Success 200 {object} Response{data=InvoiceView}
// @Failure 400 {object} ErrorResponseBody "Invalid challan ID"
// @Failure 404 {object} ErrorResponseBody "Challan not found"
// @Router /challans/{id}/invoice [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid challan ID")
		return
	}

	inv, err := h.invoiceService.Compute(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, NewInvoiceView(inv))
}

// Archive handles POST /api/v1/challans/:id/invoice/archive
// @Summary Archive a challan invoice
// @Description Stores the computed invoice in object storage and returns a presigned URL.
// @Tags invoices
// @Produce json
// @Param id path string true "Challan ID"
// @Success 201 {object} Response{data=service.InvoiceArchive}
// @Failure 400 {object} ErrorResponseBody "Invalid challan ID"
// @Failure 404 {object} ErrorResponseBody "Challan not found"
// @Failure 502 {object} ErrorResponseBody "Storage unavailable"
// @Router /challans/{id}/invoice/archive [post]
func (h *InvoiceHandler) Archive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid challan ID")
		return
	}

	archive, err := h.invoiceService.Archive(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, archive)
}

// Preview handles POST /api/v1/invoices/preview
// @Summary Preview an invoice
// @Description Computes an invoice from posted batch info without storing anything.
// @Tags invoices
// @Accept json
// @Produce json
// @Param body body PreviewRequest true "Unsaved challan"
// @Success 200 {object} Response{data=InvoiceView}
// @Failure 400 {object} ErrorResponseBody "Malformed request body"
// @Failure 422 {object} ErrorResponseBody "Batch info is not a line item list"
// @Router /invoices/preview [post]
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	inv, err := h.invoiceService.Preview(c.Request.Context(), service.PreviewInput{
		BatchInfo: req.BatchInfo,
		Context: billing.InvoiceContext{
			ChallanNo:   req.ChallanNo,
			Date:        domain.ParseDate(req.Date),
			Customer:    req.Customer,
			Distributor: req.Distributor,
			SalesStaff:  req.SalesStaff,
		},
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, NewInvoiceView(inv))
}
