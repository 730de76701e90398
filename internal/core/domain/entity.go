package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEntityTitleEmpty    = errors.New("entity title cannot be empty")
	ErrEntityTitleTooLong  = errors.New("entity title is too long (max 100 chars)")
	ErrEntityInvalidUserID = errors.New("invalid user id")
	ErrInvalidFrequency    = errors.New("invalid frequency (must be daily, weekly, or custom)")
	ErrInvalidTarget       = errors.New("target per week must be between 1 and 7")
	ErrEntityArchived      = errors.New("cannot update an archived entity")
)

const (
	FreqDaily  = "daily"
	FreqWeekly = "weekly"
	FreqCustom = "custom"

	KindHabit     = "habit"
	KindPrayerSet = "prayer_set"

	MaxTitleLen = 100
)

// TrackedEntity is anything streaks are computed for: a user habit, or the
// per-user five-prayer set. CurrentStreak and LongestStreak are derived
// caches; LongestStreak is only ever raised, never lowered (see
// EntityRepository.RaiseLongestStreak).
type TrackedEntity struct {
	ID            string `json:"id" db:"id"`
	UserID        string `json:"user_id" db:"user_id"`
	Title         string `json:"title" db:"title"`
	Kind          string `json:"kind" db:"kind"`
	Frequency     string `json:"frequency" db:"frequency"`
	TargetPerWeek int    `json:"target_per_week" db:"target_per_week"`

	CurrentStreak int `json:"current_streak" db:"current_streak"`
	LongestStreak int `json:"longest_streak" db:"longest_streak"`

	Version    int        `json:"version" db:"version"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty" db:"archived_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func validateEntity(title, frequency string, targetPerWeek int) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEntityTitleEmpty
	}
	if len(trimmed) > MaxTitleLen {
		return "", ErrEntityTitleTooLong
	}

	switch frequency {
	case FreqDaily, FreqWeekly:
	case FreqCustom:
		if targetPerWeek < 1 || targetPerWeek > 7 {
			return "", ErrInvalidTarget
		}
	default:
		return "", ErrInvalidFrequency
	}

	return trimmed, nil
}

func NewHabit(userID, title, frequency string, targetPerWeek int) (*TrackedEntity, error) {
	if userID == "" {
		return nil, ErrEntityInvalidUserID
	}

	cleanTitle, err := validateEntity(title, frequency, targetPerWeek)
	if err != nil {
		return nil, err
	}

	if frequency != FreqCustom {
		targetPerWeek = 0
	}

	now := time.Now().UTC()

	return &TrackedEntity{
		ID:            uuid.New().String(),
		UserID:        userID,
		Title:         cleanTitle,
		Kind:          KindHabit,
		Frequency:     frequency,
		TargetPerWeek: targetPerWeek,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// NewPrayerSet builds the implicit per-user entity that owns the streak
// cache for prayer tracking. There is at most one per user; the completion
// service creates it lazily on the first prayer log.
func NewPrayerSet(userID string) (*TrackedEntity, error) {
	if userID == "" {
		return nil, ErrEntityInvalidUserID
	}

	now := time.Now().UTC()

	return &TrackedEntity{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     "Daily Prayers",
		Kind:      KindPrayerSet,
		Frequency: FreqDaily,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (e *TrackedEntity) Update(title, frequency string, targetPerWeek int) error {
	if e.ArchivedAt != nil {
		return ErrEntityArchived
	}

	cleanTitle, err := validateEntity(title, frequency, targetPerWeek)
	if err != nil {
		return err
	}

	if frequency != FreqCustom {
		targetPerWeek = 0
	}

	e.Title = cleanTitle
	e.Frequency = frequency
	e.TargetPerWeek = targetPerWeek
	e.UpdatedAt = time.Now().UTC()

	return nil
}

func (e *TrackedEntity) Archive() {
	if e.ArchivedAt != nil {
		return
	}

	now := time.Now().UTC()
	e.ArchivedAt = &now
	e.UpdatedAt = now
}

func (e *TrackedEntity) Restore() {
	if e.ArchivedAt == nil {
		return
	}
	e.ArchivedAt = nil
	e.UpdatedAt = time.Now().UTC()
}
