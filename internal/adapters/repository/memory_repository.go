package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
)

type InMemoryEntityRepository struct {
	store map[string]*domain.TrackedEntity

	mu sync.RWMutex
}

func NewInMemoryEntityRepository() *InMemoryEntityRepository {
	return &InMemoryEntityRepository{
		store: make(map[string]*domain.TrackedEntity),
	}
}

func (r *InMemoryEntityRepository) Create(ctx context.Context, entity *domain.TrackedEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *entity
	r.store[entity.ID] = &cp
	return nil
}

func (r *InMemoryEntityRepository) GetByID(ctx context.Context, id string) (*domain.TrackedEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.store[id]
	if !ok {
		return nil, domain.ErrEntityNotFound
	}
	cp := *entity
	return &cp, nil
}

func (r *InMemoryEntityRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.TrackedEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entities []*domain.TrackedEntity
	for _, e := range r.store {
		if e.UserID == userID {
			cp := *e
			entities = append(entities, &cp)
		}
	}

	sort.Slice(entities, func(i, j int) bool {
		return entities[i].CreatedAt.After(entities[j].CreatedAt)
	})

	return entities, nil
}

func (r *InMemoryEntityRepository) GetPrayerSet(ctx context.Context, userID string) (*domain.TrackedEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.store {
		if e.UserID == userID && e.Kind == domain.KindPrayerSet {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrEntityNotFound
}

func (r *InMemoryEntityRepository) Update(ctx context.Context, entity *domain.TrackedEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[entity.ID]; !ok {
		return domain.ErrEntityNotFound
	}

	cp := *entity
	r.store[entity.ID] = &cp
	return nil
}

func (r *InMemoryEntityRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrEntityNotFound
	}

	delete(r.store, id)
	return nil
}

// RaiseLongestStreak mirrors the conditional update the postgres adapter
// runs: the longest streak is set-to-max under the lock and can never
// regress, regardless of the order proposals arrive in.
func (r *InMemoryEntityRepository) RaiseLongestStreak(ctx context.Context, id string, current, longest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entity, ok := r.store[id]
	if !ok {
		return domain.ErrEntityNotFound
	}

	entity.CurrentStreak = current
	if longest > entity.LongestStreak {
		entity.LongestStreak = longest
	}
	entity.UpdatedAt = time.Now().UTC()
	return nil
}

type completionKey struct {
	entityID string
	date     time.Time
	category domain.Prayer
}

type InMemoryCompletionRepository struct {
	store map[completionKey]*domain.CompletionRecord

	mu sync.RWMutex
}

func NewInMemoryCompletionRepository() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store: make(map[completionKey]*domain.CompletionRecord),
	}
}

func (r *InMemoryCompletionRepository) key(record *domain.CompletionRecord) completionKey {
	return completionKey{
		entityID: record.EntityID,
		date:     record.Date,
		category: record.Category,
	}
}

func (r *InMemoryCompletionRepository) Upsert(ctx context.Context, record *domain.CompletionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.key(record)

	if existing, ok := r.store[key]; ok {
		existing.Completed = record.Completed
		existing.OnTime = record.OnTime
		existing.Version++
		existing.UpdatedAt = time.Now().UTC()
		existing.DeletedAt = nil
		return nil
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	cp := *record
	r.store[key] = &cp
	return nil
}

func (r *InMemoryCompletionRepository) Delete(ctx context.Context, entityID, userID string, date time.Time, category domain.Prayer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := completionKey{entityID: entityID, date: date, category: category}

	record, ok := r.store[key]
	if !ok || record.UserID != userID {
		return domain.ErrCompletionNotFound
	}

	delete(r.store, key)
	return nil
}

func (r *InMemoryCompletionRepository) ListByEntity(ctx context.Context, entityID string, from, to time.Time) ([]*domain.CompletionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*domain.CompletionRecord
	for _, rec := range r.store {
		if rec.EntityID != entityID {
			continue
		}
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		cp := *rec
		records = append(records, &cp)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	return records, nil
}

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	cp := *user
	r.store[user.ID] = &cp
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
