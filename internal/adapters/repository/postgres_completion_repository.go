package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
)

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

// Upsert relies on the unique index over (entity_id, completion_date,
// category), the storage-side guarantee that at most one record exists
// per slot. The category column stores '' for plain habit records so the
// index treats them as equal, which NULLs would not.
func (r *PostgresCompletionRepository) Upsert(ctx context.Context, record *domain.CompletionRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO completion_records (
			id, entity_id, user_id,
			completion_date, completed, on_time, category,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :entity_id, :user_id,
			:completion_date, :completed, :on_time, :category,
			:version, :created_at, :updated_at, :deleted_at
		)
		ON CONFLICT (entity_id, completion_date, category) DO UPDATE
		SET completed  = EXCLUDED.completed,
		    on_time    = EXCLUDED.on_time,
		    updated_at = NOW(),
		    deleted_at = NULL,
		    version    = completion_records.version + 1`

	_, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return errors.New("referenced entity or user does not exist")
		}
		return err
	}
	return nil
}

func (r *PostgresCompletionRepository) Delete(ctx context.Context, entityID, userID string, date time.Time, category domain.Prayer) error {
	now := time.Now().UTC()

	query := `
		UPDATE completion_records
		SET deleted_at = $1,
		    updated_at = $1,
		    version = version + 1
		WHERE entity_id = $2
		  AND user_id = $3
		  AND completion_date = $4
		  AND category = $5
		  AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, now, entityID, userID, date, string(category))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCompletionNotFound
	}

	return nil
}

func (r *PostgresCompletionRepository) ListByEntity(ctx context.Context, entityID string, from, to time.Time) ([]*domain.CompletionRecord, error) {
	records := []*domain.CompletionRecord{}

	query := `
		SELECT * FROM completion_records
		WHERE entity_id = $1
		  AND completion_date >= $2
		  AND completion_date <= $3
		  AND deleted_at IS NULL
		ORDER BY completion_date DESC`

	if err := r.db.SelectContext(ctx, &records, query, entityID, from, to); err != nil {
		return nil, err
	}
	return records, nil
}
