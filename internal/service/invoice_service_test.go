package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"distrobill/internal/billing"
	"distrobill/internal/domain"
	"distrobill/internal/metrics"
	"distrobill/internal/port"
	"distrobill/internal/service"
	"distrobill/mocks"
)

const challanItems = `[
	{"product_id":"p1","billed_quantity":10,"free_quantity":2,"selling_price":118,"gst_slab":18},
	{"product_id":"p2","billed_quantity":4,"selling_price":105,"gst_slab":5}
]`

func testMetrics() *metrics.Metrics {
	return metrics.New("test", prometheus.NewRegistry())
}

type invoiceFixture struct {
	challans *mocks.MockChallanRepo
	records  *mocks.MockRecordRepo
	storage  *mocks.MockObjectStorage
	metrics  *metrics.Metrics
	svc      service.InvoiceService
}

func newInvoiceFixture() *invoiceFixture {
	f := &invoiceFixture{
		challans: new(mocks.MockChallanRepo),
		records:  new(mocks.MockRecordRepo),
		storage:  new(mocks.MockObjectStorage),
		metrics:  testMetrics(),
	}
	f.svc = service.NewInvoiceService(f.challans, f.records, f.storage, f.metrics, zap.NewNop())
	return f
}

func sampleChallan(raw string) *domain.Challan {
	return &domain.Challan{
		ID:         uuid.New(),
		ChallanNo:  "CH/24/001",
		Date:       time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		CustomerID: uuid.New(),
		BatchInfo:  billing.NewRawBatchInfo(json.RawMessage(raw)),
	}
}

func TestInvoiceService_Compute_Success(t *testing.T) {
	f := newInvoiceFixture()
	ch := sampleChallan(challanItems)
	ch.DistributorID = uuid.New()

	f.challans.On("GetByID", mock.Anything, ch.ID).Return(ch, nil)
	f.records.On("GetByID", mock.Anything, domain.ResourceCustomers, ch.CustomerID).Return(&domain.Record{
		ID:       ch.CustomerID,
		Resource: domain.ResourceCustomers,
		Data:     json.RawMessage(`{"name":"Sharma Medicals","gstin":"27ABCDE1234F1Z5"}`),
	}, nil)
	f.records.On("GetByID", mock.Anything, domain.ResourceDistributors, ch.DistributorID).Return(nil, domain.ErrNotFound)

	inv, err := f.svc.Compute(context.Background(), ch.ID)
	require.NoError(t, err)

	require.Len(t, inv.Lines, 2)
	assert.InDelta(t, 1600, inv.Totals.Gross, 1e-9)
	assert.InDelta(t, 1400, inv.Totals.Taxable, 1e-9)
	assert.Equal(t, "CH/24/001", inv.Context.ChallanNo)
	assert.Equal(t, "Sharma Medicals", inv.Context.Customer.Name)
	assert.Equal(t, ch.DistributorID.String(), inv.Context.Distributor.ID)
	assert.Empty(t, inv.Context.Distributor.Name)
	assert.Empty(t, inv.Context.SalesStaff)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.InvoicesComputed.WithLabelValues("challan")))

	f.challans.AssertExpectations(t)
	f.records.AssertExpectations(t)
}

func TestInvoiceService_Compute_NotFound(t *testing.T) {
	f := newInvoiceFixture()
	id := uuid.New()
	f.challans.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	inv, err := f.svc.Compute(context.Background(), id)
	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceService_Compute_MalformedBatchInfoIsEmpty(t *testing.T) {
	f := newInvoiceFixture()
	ch := sampleChallan(`"{not json"`)
	ch.CustomerID = uuid.Nil
	f.challans.On("GetByID", mock.Anything, ch.ID).Return(ch, nil)

	inv, err := f.svc.Compute(context.Background(), ch.ID)
	require.NoError(t, err)
	assert.Empty(t, inv.Lines)
	assert.Equal(t, "Zero Only", inv.Totals.AmountInWords)
	f.records.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Compute_PartyLookupError(t *testing.T) {
	f := newInvoiceFixture()
	ch := sampleChallan(challanItems)
	f.challans.On("GetByID", mock.Anything, ch.ID).Return(ch, nil)
	f.records.On("GetByID", mock.Anything, domain.ResourceCustomers, ch.CustomerID).Return(nil, errors.New("connection reset"))

	_, err := f.svc.Compute(context.Background(), ch.ID)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceService_Preview(t *testing.T) {
	f := newInvoiceFixture()

	inv, err := f.svc.Preview(context.Background(), service.PreviewInput{
		BatchInfo: billing.NewRawBatchInfo(json.RawMessage(`[{"product_id":"p","billed_quantity":-1,"selling_price":50,"gst_slab":12}]`)),
		Context:   billing.InvoiceContext{ChallanNo: "draft"},
	})
	require.NoError(t, err)
	require.Len(t, inv.Warnings, 1)
	assert.Equal(t, 0.0, inv.Totals.Gross)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.InvoiceWarnings.WithLabelValues("billed_quantity")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.InvoicesComputed.WithLabelValues("preview")))
}

func TestInvoiceService_Preview_UnreadableLineValue(t *testing.T) {
	f := newInvoiceFixture()

	inv, err := f.svc.Preview(context.Background(), service.PreviewInput{
		BatchInfo: billing.NewRawBatchInfo(json.RawMessage(`[
			{"product_id":"p1","billed_quantity":10,"selling_price":118,"gst_slab":18},
			{"product_id":"p2","billed_quantity":1,"selling_price":"n/a","gst_slab":5},
			42
		]`)),
	})
	require.NoError(t, err)
	require.Len(t, inv.Lines, 3)
	assert.InDelta(t, 1180, inv.Totals.Gross, 1e-6)
	require.Len(t, inv.Warnings, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.InvoiceWarnings.WithLabelValues("selling_price")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.InvoiceWarnings.WithLabelValues("line")))
}

func TestInvoiceService_Preview_RejectsMalformed(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.svc.Preview(context.Background(), service.PreviewInput{
		BatchInfo: billing.TextBatchInfo(`{"product_id":"p"}`),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBatchInfo)
}

func TestInvoiceService_Archive_Success(t *testing.T) {
	f := newInvoiceFixture()
	ch := sampleChallan(challanItems)
	ch.CustomerID = uuid.Nil
	wantKey := "challans/" + ch.ID.String() + "/invoice-CH-24-001.json"

	f.challans.On("GetByID", mock.Anything, ch.ID).Return(ch, nil)
	var stored []byte
	f.storage.On("Put", mock.Anything, mock.MatchedBy(func(in port.PutInput) bool {
		return in.Key == wantKey && in.ContentType == "application/json" && in.Metadata["challan-id"] == ch.ID.String()
	})).Run(func(args mock.Arguments) {
		stored, _ = io.ReadAll(args.Get(1).(port.PutInput).Body)
	}).Return(&port.PutOutput{Key: wantKey}, nil)
	f.storage.On("PresignGet", mock.Anything, wantKey).Return("https://storage.test/"+wantKey+"?sig=1", nil)

	archive, err := f.svc.Archive(context.Background(), ch.ID)
	require.NoError(t, err)
	assert.Equal(t, wantKey, archive.Key)
	assert.Contains(t, archive.URL, "sig=1")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.InvoiceArchives.WithLabelValues("stored")))
	f.storage.AssertExpectations(t)

	var archived billing.Invoice
	require.NoError(t, json.Unmarshal(stored, &archived))
	assert.Len(t, archived.Lines, 2)
	assert.Equal(t, "CH/24/001", archived.Context.ChallanNo)
}

func TestInvoiceService_Archive_UploadFails(t *testing.T) {
	f := newInvoiceFixture()
	ch := sampleChallan(challanItems)
	ch.CustomerID = uuid.Nil

	f.challans.On("GetByID", mock.Anything, ch.ID).Return(ch, nil)
	f.storage.On("Put", mock.Anything, mock.AnythingOfType("port.PutInput")).Return(nil, errors.New("bucket gone"))

	archive, err := f.svc.Archive(context.Background(), ch.ID)
	assert.Nil(t, archive)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.InvoiceArchives.WithLabelValues("failed")))
	f.storage.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything)
}

func TestInvoiceArchiveKey(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	assert.Equal(t, "challans/"+id.String()+"/invoice-CH-7.json", service.InvoiceArchiveKey(id, " CH #7 "))
	assert.Equal(t, "challans/"+id.String()+"/invoice-"+id.String()+".json", service.InvoiceArchiveKey(id, "///"))
}
