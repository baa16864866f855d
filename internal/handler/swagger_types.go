package handler

import (
	"encoding/json"

	"distrobill/internal/billing"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// PreviewRequest is an unsaved challan posted for an invoice preview.
// batch_info may be a JSON array of line items or a string holding one.
type PreviewRequest struct {
	BatchInfo   billing.RawBatchInfo `json:"batch_info" swaggertype:"array,object"`
	ChallanNo   string               `json:"challan_no" example:"CH-2024-0042"`
	Date        string               `json:"date" example:"2024-12-15"`
	Customer    billing.Party        `json:"customer"`
	Distributor billing.Party        `json:"distributor"`
	SalesStaff  string               `json:"sales_staff" example:"Ravi Kumar"`
}

// RecordBody is the free-form JSON object stored for a resource record.
type RecordBody map[string]json.RawMessage

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// UploadResponse carries the retrieval URL of an uploaded file.
type UploadResponse struct {
	URL string `json:"url" example:"https://s3.amazonaws.com/distrobill-uploads/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
