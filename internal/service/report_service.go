package service

import (
	"context"

	"go.uber.org/zap"

	"distrobill/internal/billing"
	"distrobill/internal/domain"
	"distrobill/internal/port"
	"distrobill/internal/report"
)

const reportPageSize = 500

// ReportService aggregates stocks and challans into reports.
type ReportService interface {
	Inventory(ctx context.Context) ([]report.InventoryRow, error)
	MonthlySales(ctx context.Context) ([]report.YearSales, error)
}

type reportService struct {
	records  port.RecordRepository
	challans port.ChallanRepository
	log      *zap.Logger
}

// NewReportService creates a new ReportService implementation.
func NewReportService(records port.RecordRepository, challans port.ChallanRepository, log *zap.Logger) ReportService {
	return &reportService{records: records, challans: challans, log: log.Named("report")}
}

func (s *reportService) Inventory(ctx context.Context) ([]report.InventoryRow, error) {
	recs, err := collectPages(ctx, func(ctx context.Context, offset, limit int) ([]domain.Record, int, error) {
		return s.records.List(ctx, domain.ResourceStocks, offset, limit)
	})
	if err != nil {
		return nil, err
	}

	entries := make([]report.StockEntry, 0, len(recs))
	for i := range recs {
		st, err := domain.DecodeStock(&recs[i])
		if err != nil {
			s.log.Warn("skipping unreadable stock record", zap.Stringer("id", recs[i].ID), zap.Error(err))
			continue
		}
		entries = append(entries, report.StockEntry{
			ProductID:   st.ProductID,
			ProductName: st.ProductName,
			BatchID:     st.BatchID,
			Quantity:    st.Quantity,
			ExpiryDate:  st.ExpiryDate,
		})
	}
	return report.RollupInventory(entries), nil
}

// MonthlySales uses the invoice gross of every challan. Challans without a
// readable date are left out.
func (s *reportService) MonthlySales(ctx context.Context) ([]report.YearSales, error) {
	challans, err := collectPages(ctx, s.challans.List)
	if err != nil {
		return nil, err
	}

	entries := make([]report.SaleEntry, 0, len(challans))
	for i := range challans {
		ch := &challans[i]
		if ch.Date.IsZero() {
			s.log.Debug("challan has no date, excluded from sales", zap.Stringer("id", ch.ID))
			continue
		}
		inv := billing.ComputeInvoice(ch.BatchInfo, billing.InvoiceContext{})
		entries = append(entries, report.SaleEntry{Date: ch.Date, Gross: inv.Totals.Gross})
	}
	return report.MonthlySalesByYear(entries), nil
}

// collectPages reads every page of a paginated listing.
func collectPages[T any](ctx context.Context, fetch func(ctx context.Context, offset, limit int) ([]T, int, error)) ([]T, error) {
	var out []T
	for offset := 0; ; offset += reportPageSize {
		page, total, err := fetch(ctx, offset, reportPageSize)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if offset+reportPageSize >= total {
			return out, nil
		}
	}
}
