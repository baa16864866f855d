package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnknownResource     = errors.New("unknown resource")
	ErrReadOnlyResource    = errors.New("resource is read-only")
	ErrInvalidRecord       = errors.New("record data must be a JSON object")
	ErrInvalidBatchInfo    = errors.New("invalid batch info")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrInvalidUploadPath   = errors.New("invalid upload path")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
