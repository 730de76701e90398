package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresEntityRepository struct {
	db *sqlx.DB
}

func NewPostgresEntityRepository(db *sqlx.DB) *PostgresEntityRepository {
	return &PostgresEntityRepository{db: db}
}

func (r *PostgresEntityRepository) Create(ctx context.Context, e *domain.TrackedEntity) error {
	query := `
        INSERT INTO tracked_entities (
            id, user_id, title, kind, frequency, target_per_week,
            current_streak, longest_streak,
            version, created_at, updated_at, archived_at, deleted_at
        ) VALUES (
            :id, :user_id, :title, :kind, :frequency, :target_per_week,
            :current_streak, :longest_streak,
            :version, :created_at, :updated_at, :archived_at, :deleted_at
        )`

	_, err := r.db.NamedExecContext(ctx, query, e)
	if err != nil {
		return fmt.Errorf("failed to insert tracked entity: %w", err)
	}
	return nil
}

func (r *PostgresEntityRepository) GetByID(ctx context.Context, id string) (*domain.TrackedEntity, error) {
	var e domain.TrackedEntity
	query := `SELECT * FROM tracked_entities WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &e, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &e, nil
}

func (r *PostgresEntityRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.TrackedEntity, error) {
	entities := []*domain.TrackedEntity{}

	query := `
        SELECT * FROM tracked_entities
        WHERE user_id = $1 AND deleted_at IS NULL
        ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &entities, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return entities, nil
}

func (r *PostgresEntityRepository) GetPrayerSet(ctx context.Context, userID string) (*domain.TrackedEntity, error) {
	var e domain.TrackedEntity

	query := `
        SELECT * FROM tracked_entities
        WHERE user_id = $1 AND kind = $2 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &e, query, userID, domain.KindPrayerSet)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &e, nil
}

func (r *PostgresEntityRepository) Update(ctx context.Context, e *domain.TrackedEntity) error {
	query := `
        UPDATE tracked_entities SET
            title=$1, frequency=$2, target_per_week=$3, archived_at=$4,
            updated_at=NOW(), version = version + 1
        WHERE id=$5 AND version=$6 AND deleted_at IS NULL
        RETURNING version, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		e.Title, e.Frequency, e.TargetPerWeek, e.ArchivedAt,
		e.ID, e.Version,
	)

	var newVersion int
	var newUpdatedAt time.Time

	if err := row.Scan(&newVersion, &newUpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var count int
			existsQuery := `SELECT count(*) FROM tracked_entities WHERE id = $1 AND deleted_at IS NULL`
			if checkErr := r.db.QueryRowContext(ctx, existsQuery, e.ID).Scan(&count); checkErr != nil {
				return fmt.Errorf("existence check failed: %w", checkErr)
			}

			if count == 0 {
				return domain.ErrEntityNotFound
			}
			return domain.ErrEntityConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	e.Version = newVersion
	e.UpdatedAt = newUpdatedAt

	return nil
}

func (r *PostgresEntityRepository) Delete(ctx context.Context, id string) error {
	query := `
        UPDATE tracked_entities
        SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
        WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEntityNotFound
	}

	return nil
}

// RaiseLongestStreak writes the current streak unconditionally and the
// longest streak through GREATEST, which makes the longest update an
// atomic set-to-max inside the row lock. Two racing recomputations can
// interleave freely; the stored longest only ever grows.
func (r *PostgresEntityRepository) RaiseLongestStreak(ctx context.Context, id string, current, longest int) error {
	query := `
        UPDATE tracked_entities
        SET current_streak = $2,
            longest_streak = GREATEST(longest_streak, $3),
            updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id, current, longest)
	if err != nil {
		return fmt.Errorf("streak update failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEntityNotFound
	}

	return nil
}
