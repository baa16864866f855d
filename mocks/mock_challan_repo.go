package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"distrobill/internal/domain"
)

// MockChallanRepo is a mock implementation of port.ChallanRepository.
type MockChallanRepo struct {
	mock.Mock
}

func (m *MockChallanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Challan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challan), args.Error(1)
}

func (m *MockChallanRepo) List(ctx context.Context, offset, limit int) ([]domain.Challan, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Challan), args.Int(1), args.Error(2)
}
