// Package stats is the temporal completion and streak analytics engine.
// Every function here is a pure computation over its inputs: no I/O, no
// clocks, no shared state. Callers supply the reference time and timezone
// explicitly, so concurrent invocations for different entities need no
// coordination.
package stats

import (
	"time"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
)

// Bucket is one discrete calendar period in the streak accounting, a day or
// a week depending on the entity's frequency. Present means at least the
// required number of completions fell inside it.
type Bucket struct {
	Key     time.Time
	Present bool
}

// Bucketer normalizes event timestamps into bucket keys for one reference
// timezone. The zero value is not usable; construct with NewBucketer.
type Bucketer struct {
	loc       *time.Location
	weekStart time.Weekday
}

func NewBucketer(loc *time.Location) Bucketer {
	if loc == nil {
		loc = time.UTC
	}
	return Bucketer{loc: loc, weekStart: time.Monday}
}

// DayKey truncates t to midnight of its calendar day in the reference zone.
func (b Bucketer) DayKey(t time.Time) time.Time {
	return domain.DayKey(t, b.loc)
}

// WeekKey truncates t to the start of the week containing it.
func (b Bucketer) WeekKey(t time.Time) time.Time {
	day := b.DayKey(t)
	offset := (int(day.Weekday()) - int(b.weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// completedPerDay counts completed records per day key, skipping records
// with unusable dates. A record that fails to normalize contributes
// nothing; it never aborts the computation.
func (b Bucketer) completedPerDay(records []*domain.CompletionRecord) map[time.Time]int {
	counts := make(map[time.Time]int)
	for _, r := range records {
		if r == nil || r.Date.IsZero() || !r.Completed {
			continue
		}
		counts[b.DayKey(r.Date)]++
	}
	return counts
}

// DayBuckets builds the descending day-bucket sequence for the trailing
// window ending at ref. The first element is the reference day itself. A
// day is present when at least minPerDay completions were logged on it
// (1 for habits, 5 for a perfect prayer day).
func (b Bucketer) DayBuckets(records []*domain.CompletionRecord, ref time.Time, windowDays, minPerDay int) []Bucket {
	if windowDays <= 0 || ref.IsZero() {
		return nil
	}
	if minPerDay < 1 {
		minPerDay = 1
	}

	counts := b.completedPerDay(records)

	buckets := make([]Bucket, 0, windowDays)
	day := b.DayKey(ref)
	for i := 0; i < windowDays; i++ {
		buckets = append(buckets, Bucket{Key: day, Present: counts[day] >= minPerDay})
		day = day.AddDate(0, 0, -1)
	}
	return buckets
}

// WeekBuckets builds the descending week-bucket sequence for the trailing
// weeks ending at the week containing ref. A week is present when at least
// one completion falls inside it.
func (b Bucketer) WeekBuckets(records []*domain.CompletionRecord, ref time.Time, weeks int) []Bucket {
	if weeks <= 0 || ref.IsZero() {
		return nil
	}

	present := make(map[time.Time]bool)
	for _, r := range records {
		if r == nil || r.Date.IsZero() || !r.Completed {
			continue
		}
		present[b.WeekKey(r.Date)] = true
	}

	buckets := make([]Bucket, 0, weeks)
	week := b.WeekKey(ref)
	for i := 0; i < weeks; i++ {
		buckets = append(buckets, Bucket{Key: week, Present: present[week]})
		week = week.AddDate(0, 0, -7)
	}
	return buckets
}

// CustomMet reports whether the trailing 7-calendar-day window ending at
// ref contains at least target completions.
func (b Bucketer) CustomMet(records []*domain.CompletionRecord, ref time.Time, target int) bool {
	if target < 1 || ref.IsZero() {
		return false
	}

	end := b.DayKey(ref)
	start := end.AddDate(0, 0, -6)

	count := 0
	for day, n := range b.completedPerDay(records) {
		if !day.Before(start) && !day.After(end) {
			count += n
		}
	}
	return count >= target
}
