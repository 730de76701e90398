package stats

import (
	"time"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
)

// Streaks derives the current and longest streak from a descending bucket
// sequence, where buckets[0] is the reference bucket (today or this week).
//
// The current streak walks backward from the reference bucket while
// consecutive buckets are present. If the reference bucket itself is absent
// the walk starts at the immediately preceding bucket instead, so an
// in-progress day does not zero out yesterday's streak.
//
// The longest streak is the maximum maximal run of present buckets anywhere
// in the supplied history, not just the trailing run.
func Streaks(buckets []Bucket) (current, longest int) {
	if len(buckets) == 0 {
		return 0, 0
	}

	start := 0
	if !buckets[0].Present {
		start = 1
	}
	for i := start; i < len(buckets); i++ {
		if !buckets[i].Present {
			break
		}
		current++
	}

	run := 0
	for _, b := range buckets {
		if b.Present {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	return current, longest
}

// EntityStreaks computes the streak pair for a tracked entity over its
// bounded record window. Both the report facade and the background
// recompute worker go through here so the two can never disagree.
//
// Custom-frequency entities collapse to a met/not-met flag over the
// trailing 7 days rather than a true consecutive-window count; the flag is
// reported as a streak of 1 or 0.
func EntityStreaks(entity *domain.TrackedEntity, records []*domain.CompletionRecord, ref time.Time, loc *time.Location, windowDays int) (current, longest int) {
	if entity == nil || windowDays <= 0 {
		return 0, 0
	}

	b := NewBucketer(loc)

	minPerDay := 1
	if entity.Kind == domain.KindPrayerSet {
		minPerDay = domain.PrayersPerDay
	}

	switch entity.Frequency {
	case domain.FreqWeekly:
		weeks := windowDays / 7
		if weeks < 1 {
			weeks = 1
		}
		current, longest = Streaks(b.WeekBuckets(records, ref, weeks))
	case domain.FreqCustom:
		if b.CustomMet(records, ref, entity.TargetPerWeek) {
			current, longest = 1, 1
		}
	default:
		current, longest = Streaks(b.DayBuckets(records, ref, windowDays, minPerDay))
	}

	// The bounded window can hide a longer historical run; the persisted
	// cache wins when it is larger, and the report must never show a
	// longest below the current.
	if entity.LongestStreak > longest {
		longest = entity.LongestStreak
	}
	if current > longest {
		longest = current
	}

	return current, longest
}
