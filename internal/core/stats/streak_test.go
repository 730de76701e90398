package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
)

var testRef = time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC) // a Sunday

func daysAgo(n int) time.Time {
	return testRef.AddDate(0, 0, -n)
}

func completedOn(days ...int) []*domain.CompletionRecord {
	var records []*domain.CompletionRecord
	for _, d := range days {
		records = append(records, &domain.CompletionRecord{
			EntityID:  "e1",
			Date:      daysAgo(d),
			Completed: true,
		})
	}
	return records
}

func TestStreaks_Daily(t *testing.T) {
	b := NewBucketer(time.UTC)

	tests := []struct {
		name        string
		records     []*domain.CompletionRecord
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "Empty history",
			records:     nil,
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "Single completion today",
			records:     completedOn(0),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "Five consecutive days ending today",
			records:     completedOn(4, 3, 2, 1, 0),
			wantCurrent: 5,
			wantLongest: 5,
		},
		{
			name:        "Gap three days ago splits the run",
			records:     completedOn(5, 4, 2, 1, 0),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "Today open keeps yesterday's run alive",
			records:     completedOn(3, 2, 1),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "Two day gap breaks the current streak",
			records:     completedOn(4, 3, 2),
			wantCurrent: 0,
			wantLongest: 3,
		},
		{
			name:        "Longest run sits in the past",
			records:     completedOn(12, 11, 10, 9, 0),
			wantCurrent: 1,
			wantLongest: 4,
		},
		{
			name:        "Duplicate records on one day count once",
			records:     append(completedOn(1, 0), completedOn(0)...),
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name: "Uncompleted records do not mark the day present",
			records: []*domain.CompletionRecord{
				{EntityID: "e1", Date: daysAgo(0), Completed: false},
				{EntityID: "e1", Date: daysAgo(1), Completed: true},
			},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name: "Zero dates are excluded, not fatal",
			records: []*domain.CompletionRecord{
				{EntityID: "e1", Completed: true},
				{EntityID: "e1", Date: daysAgo(0), Completed: true},
			},
			wantCurrent: 1,
			wantLongest: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := Streaks(b.DayBuckets(tt.records, testRef, 30, 1))
			assert.Equal(t, tt.wantCurrent, current, "current streak mismatch")
			assert.Equal(t, tt.wantLongest, longest, "longest streak mismatch")
			assert.GreaterOrEqual(t, longest, current)
		})
	}
}

func TestStreaks_Weekly(t *testing.T) {
	b := NewBucketer(time.UTC)

	t.Run("Three consecutive weeks with one record each", func(t *testing.T) {
		records := completedOn(2, 9, 16)
		current, longest := Streaks(b.WeekBuckets(records, testRef, 5))
		assert.Equal(t, 3, current)
		assert.Equal(t, 3, longest)
	})

	t.Run("This week open keeps last week's run", func(t *testing.T) {
		// testRef is a Sunday, so 7 and 14 days back land in the two
		// preceding Monday-start weeks.
		records := completedOn(7, 14)
		current, longest := Streaks(b.WeekBuckets(records, testRef, 5))
		assert.Equal(t, 2, current)
		assert.Equal(t, 2, longest)
	})

	t.Run("Gap week zeroes the current streak", func(t *testing.T) {
		records := completedOn(14, 21)
		current, longest := Streaks(b.WeekBuckets(records, testRef, 6))
		assert.Equal(t, 0, current)
		assert.Equal(t, 2, longest)
	})
}

func TestEntityStreaks(t *testing.T) {
	habit := func(freq string, target, cachedLongest int) *domain.TrackedEntity {
		return &domain.TrackedEntity{
			ID:            "e1",
			Kind:          domain.KindHabit,
			Frequency:     freq,
			TargetPerWeek: target,
			LongestStreak: cachedLongest,
		}
	}

	t.Run("Cached longest wins over window longest", func(t *testing.T) {
		current, longest := EntityStreaks(habit(domain.FreqDaily, 0, 12), completedOn(1, 0), testRef, time.UTC, 30)
		assert.Equal(t, 2, current)
		assert.Equal(t, 12, longest)
	})

	t.Run("Single present reference bucket with no cache", func(t *testing.T) {
		current, longest := EntityStreaks(habit(domain.FreqDaily, 0, 0), completedOn(0), testRef, time.UTC, 30)
		assert.Equal(t, 1, current)
		assert.Equal(t, 1, longest)
	})

	t.Run("Custom target met collapses to flag 1", func(t *testing.T) {
		current, longest := EntityStreaks(habit(domain.FreqCustom, 3, 0), completedOn(6, 4, 2, 0), testRef, time.UTC, 30)
		assert.Equal(t, 1, current)
		assert.Equal(t, 1, longest)
	})

	t.Run("Custom target missed collapses to flag 0", func(t *testing.T) {
		current, longest := EntityStreaks(habit(domain.FreqCustom, 3, 2), completedOn(6, 0), testRef, time.UTC, 30)
		assert.Equal(t, 0, current)
		assert.Equal(t, 2, longest)
	})

	t.Run("Completions older than the 7-day custom window do not count", func(t *testing.T) {
		current, _ := EntityStreaks(habit(domain.FreqCustom, 3, 0), completedOn(10, 9, 8), testRef, time.UTC, 30)
		assert.Equal(t, 0, current)
	})

	t.Run("Prayer set needs all five prayers for a present day", func(t *testing.T) {
		set := &domain.TrackedEntity{ID: "p1", Kind: domain.KindPrayerSet, Frequency: domain.FreqDaily}

		var records []*domain.CompletionRecord
		for _, p := range domain.AllPrayers {
			records = append(records, &domain.CompletionRecord{
				EntityID: "p1", Date: daysAgo(1), Completed: true, Category: p,
			})
		}
		// Today only has fajr logged, so the present run ends yesterday.
		records = append(records, &domain.CompletionRecord{
			EntityID: "p1", Date: daysAgo(0), Completed: true, Category: domain.PrayerFajr,
		})

		current, longest := EntityStreaks(set, records, testRef, time.UTC, 30)
		assert.Equal(t, 1, current)
		assert.Equal(t, 1, longest)
	})
}
