package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"distrobill/internal/domain"
	"distrobill/internal/port"
)

const recordColumns = "id, resource, data, created_at, updated_at"

type recordRepo struct {
	db *sqlx.DB
}

// NewRecordRepo creates a new PostgreSQL-backed RecordRepository.
func NewRecordRepo(db *sqlx.DB) port.RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) Create(ctx context.Context, rec *domain.Record) error {
	stampNew(rec, time.Now().UTC())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO records (id, resource, data, created_at, updated_at)
		 VALUES ($1, $2, $3::jsonb, $4, $5)`,
		rec.ID, rec.Resource, string(rec.Data), rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("recordRepo.Create: %w", err)
	}
	return nil
}

func (r *recordRepo) CreateBatch(ctx context.Context, recs []domain.Record) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("recordRepo.CreateBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO records (id, resource, data, created_at, updated_at)
		 VALUES ($1, $2, $3::jsonb, $4, $5)`)
	if err != nil {
		return fmt.Errorf("recordRepo.CreateBatch prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for i := range recs {
		rec := &recs[i]
		stampNew(rec, now)
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.Resource, string(rec.Data), rec.CreatedAt, rec.UpdatedAt); err != nil {
			return fmt.Errorf("recordRepo.CreateBatch row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("recordRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *recordRepo) GetByID(ctx context.Context, resource domain.Resource, id uuid.UUID) (*domain.Record, error) {
	var rec domain.Record
	err := r.db.GetContext(ctx, &rec,
		"SELECT "+recordColumns+" FROM records WHERE id = $1 AND resource = $2", id, resource)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("recordRepo.GetByID: %w", err)
	}
	return &rec, nil
}

func (r *recordRepo) List(ctx context.Context, resource domain.Resource, offset, limit int) ([]domain.Record, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM records WHERE resource = $1", resource)
	if err != nil {
		return nil, 0, fmt.Errorf("recordRepo.List count: %w", err)
	}

	recs := []domain.Record{}
	err = r.db.SelectContext(ctx, &recs,
		`SELECT `+recordColumns+` FROM records
		 WHERE resource = $1
		 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		resource, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("recordRepo.List: %w", err)
	}
	return recs, total, nil
}

func (r *recordRepo) Update(ctx context.Context, rec *domain.Record) error {
	rec.UpdatedAt = time.Now().UTC()

	err := r.db.GetContext(ctx, &rec.CreatedAt,
		`UPDATE records SET data = $1::jsonb, updated_at = $2
		 WHERE id = $3 AND resource = $4
		 RETURNING created_at`,
		string(rec.Data), rec.UpdatedAt, rec.ID, rec.Resource)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("recordRepo.Update: %w", err)
	}
	return nil
}

func (r *recordRepo) Delete(ctx context.Context, resource domain.Resource, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM records WHERE id = $1 AND resource = $2", id, resource)
	if err != nil {
		return fmt.Errorf("recordRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func stampNew(rec *domain.Record, now time.Time) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now
}
