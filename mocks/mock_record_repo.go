package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"distrobill/internal/domain"
)

// MockRecordRepo is a mock implementation of port.RecordRepository.
type MockRecordRepo struct {
	mock.Mock
}

func (m *MockRecordRepo) Create(ctx context.Context, rec *domain.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecordRepo) CreateBatch(ctx context.Context, recs []domain.Record) error {
	args := m.Called(ctx, recs)
	return args.Error(0)
}

func (m *MockRecordRepo) GetByID(ctx context.Context, resource domain.Resource, id uuid.UUID) (*domain.Record, error) {
	args := m.Called(ctx, resource, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockRecordRepo) List(ctx context.Context, resource domain.Resource, offset, limit int) ([]domain.Record, int, error) {
	args := m.Called(ctx, resource, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Record), args.Int(1), args.Error(2)
}

func (m *MockRecordRepo) Update(ctx context.Context, rec *domain.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecordRepo) Delete(ctx context.Context, resource domain.Resource, id uuid.UUID) error {
	args := m.Called(ctx, resource, id)
	return args.Error(0)
}
