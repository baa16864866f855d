package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"distrobill/internal/domain"
)

// MockResourceService is a mock implementation of service.ResourceService.
type MockResourceService struct {
	mock.Mock
}

func (m *MockResourceService) List(ctx context.Context, resource string, offset, limit int) ([]domain.Record, int, error) {
	args := m.Called(ctx, resource, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Record), args.Int(1), args.Error(2)
}

func (m *MockResourceService) Get(ctx context.Context, resource string, id uuid.UUID) (*domain.Record, error) {
	args := m.Called(ctx, resource, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockResourceService) Create(ctx context.Context, resource string, data json.RawMessage) (*domain.Record, error) {
	args := m.Called(ctx, resource, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockResourceService) Update(ctx context.Context, resource string, id uuid.UUID, data json.RawMessage) (*domain.Record, error) {
	args := m.Called(ctx, resource, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockResourceService) Delete(ctx context.Context, resource string, id uuid.UUID) error {
	args := m.Called(ctx, resource, id)
	return args.Error(0)
}
