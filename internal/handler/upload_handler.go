package handler

import (
	"io"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"distrobill/internal/service"
)

// UploadHandler handles file upload endpoints.
type UploadHandler struct {
	uploadService service.UploadService
	maxBytes      int64
}

// NewUploadHandler creates a new UploadHandler. Bodies beyond maxBytes are
// not read past the limit.
func NewUploadHandler(uploadService service.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, maxBytes: maxBytes}
}

// Upload handles POST /api/v1/uploads
// @Summary Upload a file
// @Description Upload a PDF, JPG, PNG or XLSX file to object storage
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param folder formData string false "Folder to store the file under" example(challans/2024)
// @Success 201 {object} Response{data=UploadResponse} "File uploaded successfully"
// @Failure 400 {object} ErrorResponseBody "Missing file, bad path or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 502 {object} ErrorResponseBody "Upload failed"
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	// One byte past the limit is enough for the service to reject it.
	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}

	name := path.Join(c.PostForm("folder"), header.Filename)
	url, err := h.uploadService.Upload(c.Request.Context(), name, data, header.Header.Get("Content-Type"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, UploadResponse{URL: url})
}
