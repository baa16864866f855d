package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"distrobill/internal/domain"
	"distrobill/internal/service"
)

// ResourceHandler exposes the generic record store.
type ResourceHandler struct {
	resourceService service.ResourceService
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(resourceService service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// List handles GET /api/v1/resources/:resource
// @Summary List records
// @Tags resources
// @Produce json
// @Param resource path string true "Resource name" Enums(products, stocks, customers, distributors, sales_staff, challans, payments, expenses, audit_logs)
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20)
// @Success 200 {object} Response{data=[]domain.Record,meta=PagMeta}
// @Failure 404 {object} ErrorResponseBody "Unknown resource"
// @Router /resources/{resource} [get]
func (h *ResourceHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	records, total, err := h.resourceService.List(c.Request.Context(), c.Param("resource"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if records == nil {
		records = []domain.Record{}
	}
	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/resources/:resource/:id
// @Summary Get a record
// @Tags resources
// @Produce json
// @Param resource path string true "Resource name"
// @Param id path string true "Record ID"
// @Success 200 {object} Response{data=domain.Record}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Record not found"
// @Router /resources/{resource}/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	rec, err := h.resourceService.Get(c.Request.Context(), c.Param("resource"), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rec)
}

// Create handles POST /api/v1/resources/:resource
// @Summary Create a record
// @Description The body is stored as given. Challan bodies must carry a well-formed batch_info.
// @Tags resources
// @Accept json
// @Produce json
// @Param resource path string true "Resource name"
// @Param body body RecordBody true "Record data"
// @Success 201 {object} Response{data=domain.Record}
// @Failure 400 {object} ErrorResponseBody "Body is not a JSON object"
// @Failure 405 {object} ErrorResponseBody "Resource is read-only"
// @Failure 422 {object} ErrorResponseBody "Invalid batch info"
// @Router /resources/{resource} [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read request body")
		return
	}

	rec, err := h.resourceService.Create(c.Request.Context(), c.Param("resource"), data)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, rec)
}

// Update handles PUT /api/v1/resources/:resource/:id
// @Summary Replace a record
// @Tags resources
// @Accept json
// @Produce json
// @Param resource path string true "Resource name"
// @Param id path string true "Record ID"
// @Param body body RecordBody true "Record data"
// @Success 200 {object} Response{data=domain.Record}
// @Failure 400 {object} ErrorResponseBody "Invalid ID or body"
// @Failure 404 {object} ErrorResponseBody "Record not found"
// @Failure 422 {object} ErrorResponseBody "Invalid batch info"
// @Router /resources/{resource}/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	data, err := c.GetRawData()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read request body")
		return
	}

	rec, err := h.resourceService.Update(c.Request.Context(), c.Param("resource"), id, data)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rec)
}

// Delete handles DELETE /api/v1/resources/:resource/:id
// @Summary Delete a record
// @Tags resources
// @Produce json
// @Param resource path string true "Resource name"
// @Param id path string true "Record ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Record not found"
// @Router /resources/{resource}/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	if err := h.resourceService.Delete(c.Request.Context(), c.Param("resource"), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "record deleted"})
}

func recordID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return uuid.Nil, false
	}
	return id, true
}
