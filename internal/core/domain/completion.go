package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidCompletion = errors.New("invalid completion record data")

// CompletionRecord is one row per (entity, calendar day, category). The
// category is a prayer name for prayer-set entities and empty for plain
// habits; storage enforces uniqueness on the triple via upsert, so marking
// the same slot twice updates in place instead of inserting.
type CompletionRecord struct {
	ID       string `json:"id" db:"id"`
	EntityID string `json:"entity_id" db:"entity_id"`
	UserID   string `json:"user_id" db:"user_id"`

	// Date is the calendar day the completion belongs to, normalized to
	// midnight UTC. Time of day is never significant.
	Date      time.Time `json:"date" db:"completion_date"`
	Completed bool      `json:"completed" db:"completed"`
	OnTime    *bool     `json:"on_time,omitempty" db:"on_time"`
	Category  Prayer    `json:"category,omitempty" db:"category"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// DayKey truncates a timestamp to its calendar day in loc. It is the single
// normalization point for completion dates; callers must not truncate with
// an ambient server-local zone.
func DayKey(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func NewCompletionRecord(entityID, userID string, date time.Time, completed bool) *CompletionRecord {
	now := time.Now().UTC()

	return &CompletionRecord{
		EntityID:  entityID,
		UserID:    userID,
		Date:      DayKey(date, time.UTC),
		Completed: completed,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *CompletionRecord) Validate() error {
	if strings.TrimSpace(r.EntityID) == "" {
		return errors.New("entity_id is required")
	}
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	if r.Date.IsZero() {
		return errors.New("date is required")
	}
	if r.Category != PrayerNone && !r.Category.Valid() {
		return ErrInvalidPrayer
	}
	return nil
}
