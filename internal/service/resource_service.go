package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"distrobill/internal/billing"
	"distrobill/internal/domain"
	"distrobill/internal/metrics"
	"distrobill/internal/port"
)

// ResourceService is generic CRUD over named resources.
type ResourceService interface {
	List(ctx context.Context, resource string, offset, limit int) ([]domain.Record, int, error)
	Get(ctx context.Context, resource string, id uuid.UUID) (*domain.Record, error)
	Create(ctx context.Context, resource string, data json.RawMessage) (*domain.Record, error)
	Update(ctx context.Context, resource string, id uuid.UUID, data json.RawMessage) (*domain.Record, error)
	Delete(ctx context.Context, resource string, id uuid.UUID) error
}

type resourceService struct {
	records port.RecordRepository
	storage port.ObjectStorage
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time
}

// NewResourceService creates a new ResourceService implementation. storage
// holds archived invoices, which are removed along with their challan.
func NewResourceService(records port.RecordRepository, storage port.ObjectStorage, m *metrics.Metrics, log *zap.Logger) ResourceService {
	return &resourceService{
		records: records,
		storage: storage,
		metrics: m,
		log:     log.Named("resource"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *resourceService) List(ctx context.Context, resource string, offset, limit int) ([]domain.Record, int, error) {
	res, err := domain.ParseResource(resource)
	if err != nil {
		return nil, 0, err
	}
	return s.records.List(ctx, res, offset, limit)
}

func (s *resourceService) Get(ctx context.Context, resource string, id uuid.UUID) (*domain.Record, error) {
	res, err := domain.ParseResource(resource)
	if err != nil {
		return nil, err
	}
	return s.records.GetByID(ctx, res, id)
}

func (s *resourceService) Create(ctx context.Context, resource string, data json.RawMessage) (*domain.Record, error) {
	res, err := writableResource(resource)
	if err != nil {
		return nil, err
	}
	if err := validateRecordData(res, data); err != nil {
		return nil, err
	}

	rec := &domain.Record{Resource: res, Data: data}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating %s record: %w", res, err)
	}

	s.written(ctx, domain.AuditCreate, res, rec.ID)
	return rec, nil
}

func (s *resourceService) Update(ctx context.Context, resource string, id uuid.UUID, data json.RawMessage) (*domain.Record, error) {
	res, err := writableResource(resource)
	if err != nil {
		return nil, err
	}
	if err := validateRecordData(res, data); err != nil {
		return nil, err
	}

	rec := &domain.Record{ID: id, Resource: res, Data: data}
	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}

	s.written(ctx, domain.AuditUpdate, res, id)
	return rec, nil
}

func (s *resourceService) Delete(ctx context.Context, resource string, id uuid.UUID) error {
	res, err := writableResource(resource)
	if err != nil {
		return err
	}

	var archiveKey string
	if res == domain.ResourceChallans {
		rec, err := s.records.GetByID(ctx, res, id)
		if err != nil {
			return err
		}
		var challanNo string
		if ch, err := domain.DecodeChallan(rec); err == nil {
			challanNo = ch.ChallanNo
		}
		archiveKey = InvoiceArchiveKey(id, challanNo)
	}

	if err := s.records.Delete(ctx, res, id); err != nil {
		return err
	}

	s.written(ctx, domain.AuditDelete, res, id)
	if archiveKey != "" {
		s.removeArchive(ctx, id, archiveKey)
	}
	return nil
}

// removeArchive deletes the archived invoice of a deleted challan. A missing
// object is not an error. A failure is logged and does not fail the request.
func (s *resourceService) removeArchive(ctx context.Context, challanID uuid.UUID, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.metrics.InvoiceArchives.WithLabelValues("remove_failed").Inc()
		s.log.Error("removing archived invoice failed",
			zap.Stringer("challan_id", challanID),
			zap.String("key", key),
			zap.Error(err))
		return
	}
	s.metrics.InvoiceArchives.WithLabelValues("removed").Inc()
}

// written counts a successful write and appends it to audit_logs. A failed
// audit write is logged and does not fail the request.
func (s *resourceService) written(ctx context.Context, action domain.AuditAction, res domain.Resource, id uuid.UUID) {
	s.metrics.RecordWrites.WithLabelValues(string(res), string(action)).Inc()

	entry, err := json.Marshal(domain.AuditEntry{Action: action, Resource: res, RecordID: id, At: s.now()})
	if err != nil {
		s.log.Error("encoding audit entry", zap.Error(err))
		return
	}
	if err := s.records.Create(ctx, &domain.Record{Resource: domain.ResourceAuditLogs, Data: entry}); err != nil {
		s.log.Error("writing audit entry failed",
			zap.String("action", string(action)),
			zap.String("resource", string(res)),
			zap.Stringer("record_id", id),
			zap.Error(err))
	}
}

func writableResource(name string) (domain.Resource, error) {
	res, err := domain.ParseResource(name)
	if err != nil {
		return "", err
	}
	if !res.Writable() {
		return "", domain.ErrReadOnlyResource
	}
	return res, nil
}

// validateRecordData requires a JSON object. Challans must also carry batch
// info that decodes strictly and passes line item validation.
func validateRecordData(res domain.Resource, data json.RawMessage) error {
	if !domain.IsJSONObject(data) {
		return domain.ErrInvalidRecord
	}
	if res != domain.ResourceChallans {
		return nil
	}

	raw, err := domain.ChallanBatchInfo(data)
	if err != nil {
		return err
	}
	items, err := billing.DecodeBatchInfo(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidBatchInfo, err)
	}
	if err := billing.ValidateLineItems(items); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidBatchInfo, err)
	}
	return nil
}
