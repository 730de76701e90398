package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEntityNotFound     = errors.New("tracked entity not found")
	ErrEntityConflict     = errors.New("tracked entity version conflict")
	ErrCompletionNotFound = errors.New("completion record not found")
	ErrUnauthorized       = errors.New("user does not own this resource")
)

type EntityRepository interface {
	// Create persists a new tracked entity.
	Create(ctx context.Context, entity *TrackedEntity) error

	// GetByID retrieves an entity by its unique identifier.
	GetByID(ctx context.Context, id string) (*TrackedEntity, error)

	// ListByUserID retrieves all active entities belonging to a user.
	ListByUserID(ctx context.Context, userID string) ([]*TrackedEntity, error)

	// GetPrayerSet returns the user's prayer-set entity, or
	// ErrEntityNotFound if the user has never logged a prayer.
	GetPrayerSet(ctx context.Context, userID string) (*TrackedEntity, error)

	// Update modifies an existing entity.
	// Implementations must enforce optimistic locking on Version.
	Update(ctx context.Context, entity *TrackedEntity) error

	// Delete soft-deletes an entity.
	Delete(ctx context.Context, id string) error

	// RaiseLongestStreak stores a freshly computed streak pair. The
	// current streak is written unconditionally; the longest streak is a
	// monotonic compare-and-set and must only be applied when the
	// proposed value is greater than the stored one. Concurrent
	// recomputations for the same entity may race here, and the CAS is
	// what keeps a stale smaller value from clobbering a fresher larger
	// one.
	RaiseLongestStreak(ctx context.Context, id string, current, longest int) error
}

type CompletionRepository interface {
	// Upsert inserts or replaces the record identified by
	// (entity_id, date, category). Marking the same slot twice is a
	// no-op beyond bumping the row version.
	Upsert(ctx context.Context, record *CompletionRecord) error

	// Delete removes the record for one slot (unmark). userID guards
	// ownership at the storage boundary.
	Delete(ctx context.Context, entityID, userID string, date time.Time, category Prayer) error

	// ListByEntity retrieves active records for an entity whose date
	// falls inside [from, to], ordered by date descending.
	ListByEntity(ctx context.Context, entityID string, from, to time.Time) ([]*CompletionRecord, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
