package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"

	"distrobill/internal/config"
	"distrobill/internal/domain"
	"distrobill/internal/metrics"
	"distrobill/internal/port"
)

// UploadService stores files in object storage.
type UploadService interface {
	// Upload stores data under path and returns a presigned URL for it.
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

type uploadService struct {
	storage port.ObjectStorage
	cfg     *config.UploadConfig
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(storage port.ObjectStorage, cfg *config.UploadConfig, m *metrics.Metrics, log *zap.Logger) UploadService {
	return &uploadService{storage: storage, cfg: cfg, metrics: m, log: log.Named("upload")}
}

// Upload checks the extension against the allowed file types and the
// sniffed content against the extension. The stored content type is derived
// from the extension; contentType is only logged when it disagrees.
func (s *uploadService) Upload(ctx context.Context, p string, data []byte, contentType string) (string, error) {
	cleaned, err := cleanObjectPath(p)
	if err != nil {
		return "", err
	}
	if int64(len(data)) > s.cfg.MaxBytes() {
		return "", domain.ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(cleaned), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok || len(data) == 0 {
		return "", domain.ErrUnsupportedFileType
	}
	if detected := http.DetectContentType(data); !domain.MatchesSniffedType(fileType, detected) {
		s.log.Debug("content does not match extension", zap.String("path", cleaned), zap.String("detected", detected))
		return "", domain.ErrUnsupportedFileType
	}

	storedType := domain.AllowedFileTypes[fileType]
	if contentType != "" && contentType != storedType {
		s.log.Debug("declared content type overridden",
			zap.String("declared", contentType), zap.String("stored", storedType))
	}

	key := cleaned
	if s.cfg.RootPrefix != "" {
		key = s.cfg.RootPrefix + "/" + cleaned
	}

	_, err = s.storage.Put(ctx, port.PutInput{
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: storedType,
	})
	if err != nil {
		s.metrics.Uploads.WithLabelValues("failed").Inc()
		s.log.Error("upload to storage failed", zap.String("key", key), zap.Int("bytes", len(data)), zap.Error(err))
		return "", domain.ErrUploadFailed
	}
	s.metrics.Uploads.WithLabelValues("stored").Inc()
	s.log.Info("file uploaded", zap.String("key", key), zap.Int("bytes", len(data)))

	url, err := s.storage.PresignGet(ctx, key)
	if err != nil {
		return "", fmt.Errorf("presigning %s: %w", key, err)
	}
	return url, nil
}
