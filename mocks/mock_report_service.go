package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"distrobill/internal/report"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Inventory(ctx context.Context) ([]report.InventoryRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.InventoryRow), args.Error(1)
}

func (m *MockReportService) MonthlySales(ctx context.Context) ([]report.YearSales, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.YearSales), args.Error(1)
}
