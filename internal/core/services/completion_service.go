package services

import (
	"context"
	"errors"
	"time"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/workers"
)

// CompletionService owns the mark/unmark flow. Storage upserts on
// (entity, date, category), so marking the same slot twice is idempotent,
// and every write enqueues a streak recompute for the touched entity.
type CompletionService struct {
	repo       domain.CompletionRepository
	entityRepo domain.EntityRepository
	worker     *workers.StreakWorker
}

func NewCompletionService(repo domain.CompletionRepository, entityRepo domain.EntityRepository, worker *workers.StreakWorker) *CompletionService {
	return &CompletionService{
		repo:       repo,
		entityRepo: entityRepo,
		worker:     worker,
	}
}

type MarkHabitInput struct {
	EntityID  string
	UserID    string
	Date      time.Time
	Completed bool
}

type MarkPrayerInput struct {
	UserID string
	Date   time.Time
	Prayer domain.Prayer
	OnTime *bool
}

func (s *CompletionService) ownedEntity(ctx context.Context, entityID, userID string) (*domain.TrackedEntity, error) {
	entity, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if entity.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return entity, nil
}

// MarkHabit records a habit completion (or explicit non-completion) for
// one calendar day.
func (s *CompletionService) MarkHabit(ctx context.Context, input MarkHabitInput) (*domain.CompletionRecord, error) {
	if _, err := s.ownedEntity(ctx, input.EntityID, input.UserID); err != nil {
		return nil, err
	}

	record := domain.NewCompletionRecord(input.EntityID, input.UserID, input.Date, input.Completed)
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.worker.Enqueue(input.EntityID)

	return record, nil
}

// UnmarkHabit removes the record for one day, restoring the state before
// the mark.
func (s *CompletionService) UnmarkHabit(ctx context.Context, entityID, userID string, date time.Time) error {
	if _, err := s.ownedEntity(ctx, entityID, userID); err != nil {
		return err
	}

	day := domain.DayKey(date, time.UTC)
	if err := s.repo.Delete(ctx, entityID, userID, day, domain.PrayerNone); err != nil {
		return err
	}

	s.worker.Enqueue(entityID)

	return nil
}

// MarkPrayer records one prayer slot for a user-day, creating the user's
// prayer-set entity on first use.
func (s *CompletionService) MarkPrayer(ctx context.Context, input MarkPrayerInput) (*domain.CompletionRecord, error) {
	if !input.Prayer.Valid() {
		return nil, domain.ErrInvalidPrayer
	}

	set, err := s.ensurePrayerSet(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	record := domain.NewCompletionRecord(set.ID, input.UserID, input.Date, true)
	record.Category = input.Prayer
	record.OnTime = input.OnTime
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.worker.Enqueue(set.ID)

	return record, nil
}

// UnmarkPrayer removes one prayer slot for a user-day.
func (s *CompletionService) UnmarkPrayer(ctx context.Context, userID string, date time.Time, prayer domain.Prayer) error {
	if !prayer.Valid() {
		return domain.ErrInvalidPrayer
	}

	set, err := s.entityRepo.GetPrayerSet(ctx, userID)
	if err != nil {
		return err
	}

	day := domain.DayKey(date, time.UTC)
	if err := s.repo.Delete(ctx, set.ID, userID, day, prayer); err != nil {
		return err
	}

	s.worker.Enqueue(set.ID)

	return nil
}

// ListByEntity returns the raw records inside [from, to] for an entity the
// user owns.
func (s *CompletionService) ListByEntity(ctx context.Context, entityID, userID string, from, to time.Time) ([]*domain.CompletionRecord, error) {
	if _, err := s.ownedEntity(ctx, entityID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByEntity(ctx, entityID, from, to)
}

func (s *CompletionService) ensurePrayerSet(ctx context.Context, userID string) (*domain.TrackedEntity, error) {
	set, err := s.entityRepo.GetPrayerSet(ctx, userID)
	if err == nil {
		return set, nil
	}
	if !errors.Is(err, domain.ErrEntityNotFound) {
		return nil, err
	}

	set, err = domain.NewPrayerSet(userID)
	if err != nil {
		return nil, err
	}
	if err := s.entityRepo.Create(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}
