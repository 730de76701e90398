package services

import (
	"context"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
)

type EntityService struct {
	repo domain.EntityRepository
}

func NewEntityService(repo domain.EntityRepository) *EntityService {
	return &EntityService{
		repo: repo,
	}
}

type CreateHabitInput struct {
	UserID        string
	Title         string
	Frequency     string
	TargetPerWeek int
}

type UpdateHabitInput struct {
	ID            string
	UserID        string
	Title         string
	Frequency     string
	TargetPerWeek int
	Version       int
}

func (s *EntityService) Create(ctx context.Context, input CreateHabitInput) (*domain.TrackedEntity, error) {
	entity, err := domain.NewHabit(input.UserID, input.Title, input.Frequency, input.TargetPerWeek)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *EntityService) GetByID(ctx context.Context, id, userID string) (*domain.TrackedEntity, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return entity, nil
}

func (s *EntityService) ListByUserID(ctx context.Context, userID string) ([]*domain.TrackedEntity, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *EntityService) Update(ctx context.Context, input UpdateHabitInput) (*domain.TrackedEntity, error) {
	entity, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && entity.Version != input.Version {
		return nil, domain.ErrEntityConflict
	}

	if err := entity.Update(input.Title, input.Frequency, input.TargetPerWeek); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *EntityService) Archive(ctx context.Context, id, userID string) error {
	entity, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	entity.Archive()

	return s.repo.Update(ctx, entity)
}

func (s *EntityService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
