package stats

import (
	"math"
	"time"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
)

// Round rounds a percentage to the nearest whole point, half up. Display
// aggregates use this; intermediate values keep two decimals via Precise.
func Round(pct float64) float64 {
	return math.Floor(pct + 0.5)
}

// Precise keeps two decimal places, half up.
func Precise(pct float64) float64 {
	return math.Floor(pct*100+0.5) / 100
}

func (b Bucketer) inWindow(r *domain.CompletionRecord, from, to time.Time) bool {
	if r == nil || r.Date.IsZero() {
		return false
	}
	day := b.DayKey(r.Date)
	return !day.Before(from) && !day.After(to)
}

// CompletionRate computes 100 * completed / loggedSlots over [from, to],
// where loggedSlots counts slotsPerDay for each day that has at least one
// record. A day with nothing logged contributes to neither side of the
// ratio: unlogged days are unknowns, not failures. Returns a two-decimal
// percentage; an empty window yields 0.
func (b Bucketer) CompletionRate(records []*domain.CompletionRecord, from, to time.Time, slotsPerDay int) float64 {
	if slotsPerDay < 1 {
		slotsPerDay = 1
	}
	from = b.DayKey(from)
	to = b.DayKey(to)

	loggedDays := make(map[time.Time]bool)
	completed := 0
	for _, r := range records {
		if !b.inWindow(r, from, to) {
			continue
		}
		loggedDays[b.DayKey(r.Date)] = true
		if r.Completed {
			completed++
		}
	}

	slots := len(loggedDays) * slotsPerDay
	if slots == 0 {
		return 0
	}
	return Precise(100 * float64(completed) / float64(slots))
}

// OnTimeRate computes 100 * onTime / completed over [from, to]. Records
// without an on-time flag count as completed but never on time. Zero
// completions yield 0, never NaN.
func (b Bucketer) OnTimeRate(records []*domain.CompletionRecord, from, to time.Time) float64 {
	from = b.DayKey(from)
	to = b.DayKey(to)

	completed, onTime := 0, 0
	for _, r := range records {
		if !b.inWindow(r, from, to) || !r.Completed {
			continue
		}
		completed++
		if r.OnTime != nil && *r.OnTime {
			onTime++
		}
	}

	if completed == 0 {
		return 0
	}
	return Precise(100 * float64(onTime) / float64(completed))
}

// PerCategory breaks logged prayer records down by prayer name over
// [from, to]. Every prayer of the closed five-prayer set appears in the
// result, including ones with nothing logged, so consumers can render an
// exhaustive row per prayer.
func (b Bucketer) PerCategory(records []*domain.CompletionRecord, from, to time.Time) map[domain.Prayer]domain.CategoryStat {
	from = b.DayKey(from)
	to = b.DayKey(to)

	out := make(map[domain.Prayer]domain.CategoryStat, len(domain.AllPrayers))
	for _, p := range domain.AllPrayers {
		out[p] = domain.CategoryStat{}
	}

	for _, r := range records {
		if !b.inWindow(r, from, to) || !r.Category.Valid() {
			continue
		}
		stat := out[r.Category]
		stat.Total++
		if r.Completed {
			stat.Completed++
			if r.OnTime != nil && *r.OnTime {
				stat.OnTime++
			}
		}
		out[r.Category] = stat
	}

	return out
}
