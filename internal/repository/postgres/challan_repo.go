package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"distrobill/internal/domain"
	"distrobill/internal/port"
)

type challanRepo struct {
	records port.RecordRepository
}

// NewChallanRepo creates a ChallanRepository over the records table.
func NewChallanRepo(db *sqlx.DB) port.ChallanRepository {
	return &challanRepo{records: NewRecordRepo(db)}
}

func (r *challanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Challan, error) {
	rec, err := r.records.GetByID(ctx, domain.ResourceChallans, id)
	if err != nil {
		return nil, err
	}
	ch, err := domain.DecodeChallan(rec)
	if err != nil {
		return nil, fmt.Errorf("challanRepo.GetByID: %w", err)
	}
	return ch, nil
}

// List returns a page of challans. Rows whose data is not a JSON object are
// skipped but still counted in the total.
func (r *challanRepo) List(ctx context.Context, offset, limit int) ([]domain.Challan, int, error) {
	recs, total, err := r.records.List(ctx, domain.ResourceChallans, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.Challan, 0, len(recs))
	for i := range recs {
		ch, err := domain.DecodeChallan(&recs[i])
		if err != nil {
			continue
		}
		out = append(out, *ch)
	}
	return out, total, nil
}
