package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
)

type MockEntityRepo struct {
	mock.Mock
}

func (m *MockEntityRepo) Create(ctx context.Context, entity *domain.TrackedEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepo) GetByID(ctx context.Context, id string) (*domain.TrackedEntity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackedEntity), args.Error(1)
}

func (m *MockEntityRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.TrackedEntity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TrackedEntity), args.Error(1)
}

func (m *MockEntityRepo) GetPrayerSet(ctx context.Context, userID string) (*domain.TrackedEntity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackedEntity), args.Error(1)
}

func (m *MockEntityRepo) Update(ctx context.Context, entity *domain.TrackedEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEntityRepo) RaiseLongestStreak(ctx context.Context, id string, current, longest int) error {
	args := m.Called(ctx, id, current, longest)
	return args.Error(0)
}

type MockCompletionRepo struct {
	mock.Mock
}

func (m *MockCompletionRepo) Upsert(ctx context.Context, record *domain.CompletionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCompletionRepo) Delete(ctx context.Context, entityID, userID string, date time.Time, category domain.Prayer) error {
	args := m.Called(ctx, entityID, userID, date, category)
	return args.Error(0)
}

func (m *MockCompletionRepo) ListByEntity(ctx context.Context, entityID string, from, to time.Time) ([]*domain.CompletionRecord, error) {
	args := m.Called(ctx, entityID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CompletionRecord), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
