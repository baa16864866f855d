package port

import (
	"context"

	"github.com/google/uuid"

	"distrobill/internal/domain"
)

// RecordRepository is opaque CRUD over the records of every resource.
// All methods are scoped by resource so an ID from one resource never
// resolves a record of another.
type RecordRepository interface {
	Create(ctx context.Context, rec *domain.Record) error
	CreateBatch(ctx context.Context, recs []domain.Record) error
	GetByID(ctx context.Context, resource domain.Resource, id uuid.UUID) (*domain.Record, error)
	List(ctx context.Context, resource domain.Resource, offset, limit int) ([]domain.Record, int, error)
	Update(ctx context.Context, rec *domain.Record) error
	Delete(ctx context.Context, resource domain.Resource, id uuid.UUID) error
}

// ChallanRepository reads challans as typed views.
type ChallanRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Challan, error)
	List(ctx context.Context, offset, limit int) ([]domain.Challan, int, error)
}
