package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"distrobill/internal/billing"
	"distrobill/internal/domain"
	"distrobill/internal/metrics"
	"distrobill/internal/port"
)

// InvoiceArchive locates an archived invoice document.
type InvoiceArchive struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// PreviewInput is an unsaved challan to compute an invoice for.
type PreviewInput struct {
	BatchInfo billing.RawBatchInfo
	Context   billing.InvoiceContext
}

// InvoiceService computes GST invoices for challans.
type InvoiceService interface {
	Compute(ctx context.Context, challanID uuid.UUID) (*billing.Invoice, error)
	Preview(ctx context.Context, input PreviewInput) (*billing.Invoice, error)
	Archive(ctx context.Context, challanID uuid.UUID) (*InvoiceArchive, error)
}

type invoiceService struct {
	challans port.ChallanRepository
	records  port.RecordRepository
	storage  port.ObjectStorage
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	challans port.ChallanRepository,
	records port.RecordRepository,
	storage port.ObjectStorage,
	m *metrics.Metrics,
	log *zap.Logger,
) InvoiceService {
	return &invoiceService{
		challans: challans,
		records:  records,
		storage:  storage,
		metrics:  m,
		log:      log.Named("invoice"),
	}
}

func (s *invoiceService) Compute(ctx context.Context, challanID uuid.UUID) (*billing.Invoice, error) {
	ch, err := s.challans.GetByID(ctx, challanID)
	if err != nil {
		return nil, err
	}

	ictx := billing.InvoiceContext{
		ChallanID: ch.ID.String(),
		ChallanNo: ch.ChallanNo,
		Date:      ch.Date,
	}
	if ictx.Customer, err = s.party(ctx, domain.ResourceCustomers, ch.CustomerID); err != nil {
		return nil, err
	}
	if ictx.Distributor, err = s.party(ctx, domain.ResourceDistributors, ch.DistributorID); err != nil {
		return nil, err
	}
	staff, err := s.party(ctx, domain.ResourceSalesStaff, ch.SalesStaffID)
	if err != nil {
		return nil, err
	}
	ictx.SalesStaff = staff.Name

	batch, err := billing.ReadBatchInfo(ch.BatchInfo)
	if err != nil {
		s.log.Warn("challan batch info unreadable, computing an empty invoice",
			zap.Stringer("challan_id", ch.ID),
			zap.Stringer("kind", ch.BatchInfo.Kind()),
			zap.Error(err))
	}

	inv := billing.ComputeBatch(batch, ictx)
	s.observe("challan", inv)
	return inv, nil
}

// Preview rejects batch info that is not a JSON array. Unreadable or invalid
// line values are computed as zero and reported as warnings.
func (s *invoiceService) Preview(_ context.Context, input PreviewInput) (*billing.Invoice, error) {
	batch, err := billing.ReadBatchInfo(input.BatchInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBatchInfo, err)
	}
	inv := billing.ComputeBatch(batch, input.Context)
	s.observe("preview", inv)
	return inv, nil
}

func (s *invoiceService) Archive(ctx context.Context, challanID uuid.UUID) (*InvoiceArchive, error) {
	inv, err := s.Compute(ctx, challanID)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("encoding invoice: %w", err)
	}

	key := InvoiceArchiveKey(challanID, inv.Context.ChallanNo)
	_, err = s.storage.Put(ctx, port.PutInput{
		Key:         key,
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
		Metadata:    map[string]string{"challan-id": challanID.String()},
	})
	if err != nil {
		s.metrics.InvoiceArchives.WithLabelValues("failed").Inc()
		s.log.Error("archiving invoice failed", zap.Stringer("challan_id", challanID), zap.String("key", key), zap.Error(err))
		return nil, domain.ErrUploadFailed
	}
	s.metrics.InvoiceArchives.WithLabelValues("stored").Inc()

	url, err := s.storage.PresignGet(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("presigning %s: %w", key, err)
	}

	s.log.Info("invoice archived", zap.Stringer("challan_id", challanID), zap.String("key", key))
	return &InvoiceArchive{Key: key, URL: url}, nil
}

// InvoiceArchiveKey is the object key of a challan's archived invoice.
func InvoiceArchiveKey(challanID uuid.UUID, challanNo string) string {
	name := safeName(challanNo)
	if name == "" {
		name = challanID.String()
	}
	return fmt.Sprintf("challans/%s/invoice-%s.json", challanID, name)
}

// party loads header details for a referenced record. Unset and dangling
// references yield a Party carrying only the ID.
func (s *invoiceService) party(ctx context.Context, resource domain.Resource, id uuid.UUID) (billing.Party, error) {
	if id == uuid.Nil {
		return billing.Party{}, nil
	}
	rec, err := s.records.GetByID(ctx, resource, id)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Warn("challan references a missing record", zap.String("resource", string(resource)), zap.Stringer("id", id))
		return billing.Party{ID: id.String()}, nil
	}
	if err != nil {
		return billing.Party{}, fmt.Errorf("loading %s %s: %w", resource, id, err)
	}
	p, err := domain.DecodeParty(rec)
	if err != nil {
		s.log.Warn("unreadable party record", zap.String("resource", string(resource)), zap.Stringer("id", id), zap.Error(err))
		return billing.Party{ID: id.String()}, nil
	}
	return p, nil
}

func (s *invoiceService) observe(source string, inv *billing.Invoice) {
	s.metrics.InvoicesComputed.WithLabelValues(source).Inc()
	for _, w := range inv.Warnings {
		field := w.Field
		if field == "" {
			field = "line"
		}
		s.metrics.InvoiceWarnings.WithLabelValues(field).Inc()
	}
}
