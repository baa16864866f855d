package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"distrobill/internal/billing"
	"distrobill/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Compute(ctx context.Context, challanID uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, challanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Preview(ctx context.Context, input service.PreviewInput) (*billing.Invoice, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Archive(ctx context.Context, challanID uuid.UUID) (*service.InvoiceArchive, error) {
	args := m.Called(ctx, challanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceArchive), args.Error(1)
}
