package services

import (
	"context"
	"log"
	"time"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/stats"
)

// DefaultWindowDays bounds the trailing history a report is computed from.
const DefaultWindowDays = 30

// StatsService is the report facade: it pulls the bounded completion
// window from storage, runs the pure stats engine over it, and assembles
// one consolidated report. Its only side effect is proposing the
// longest-streak cache update through the repository CAS.
type StatsService struct {
	entityRepo     domain.EntityRepository
	completionRepo domain.CompletionRepository
	windowDays     int
}

func NewStatsService(entityRepo domain.EntityRepository, completionRepo domain.CompletionRepository) *StatsService {
	return &StatsService{
		entityRepo:     entityRepo,
		completionRepo: completionRepo,
		windowDays:     DefaultWindowDays,
	}
}

// Report computes the statistics report for one tracked entity.
func (s *StatsService) Report(ctx context.Context, entityID string, input domain.ReportInput) (*domain.StatisticsReport, error) {
	entity, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if entity.UserID != input.UserID {
		return nil, domain.ErrUnauthorized
	}

	return s.build(ctx, entity, input)
}

// PrayerReport computes the report for the user's five-prayer set. A user
// who has never logged a prayer gets a zeroed report rather than an error.
func (s *StatsService) PrayerReport(ctx context.Context, input domain.ReportInput) (*domain.StatisticsReport, error) {
	entity, err := s.entityRepo.GetPrayerSet(ctx, input.UserID)
	if err != nil {
		if err == domain.ErrEntityNotFound {
			return emptyPrayerReport(input), nil
		}
		return nil, err
	}

	return s.build(ctx, entity, input)
}

func (s *StatsService) build(ctx context.Context, entity *domain.TrackedEntity, input domain.ReportInput) (*domain.StatisticsReport, error) {
	loc := input.Location
	if loc == nil {
		loc = time.UTC
	}
	ref := input.Reference
	if ref.IsZero() {
		ref = time.Now().UTC()
	}
	windowDays := input.WindowDays
	if windowDays <= 0 {
		windowDays = s.windowDays
	}

	// The caller's zone decides which calendar day "now" falls on; after
	// that, everything runs in the UTC label space completion dates are
	// stored in.
	localDay := domain.DayKey(ref, loc)
	y, m, d := localDay.Date()
	refDay := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	b := stats.NewBucketer(time.UTC)
	from := refDay.AddDate(0, 0, -(windowDays - 1))

	records, err := s.completionRepo.ListByEntity(ctx, entity.ID, from, refDay)
	if err != nil {
		return nil, err
	}

	current, longest := stats.EntityStreaks(entity, records, refDay, time.UTC, windowDays)

	slotsPerDay := 1
	if entity.Kind == domain.KindPrayerSet {
		slotsPerDay = domain.PrayersPerDay
	}

	report := &domain.StatisticsReport{
		EntityID:      entity.ID,
		CurrentStreak: current,
		LongestStreak: longest,
		Completion: domain.RateWindows{
			Day:   stats.Round(b.CompletionRate(records, refDay, refDay, slotsPerDay)),
			Week:  stats.Round(b.CompletionRate(records, refDay.AddDate(0, 0, -6), refDay, slotsPerDay)),
			Month: stats.Round(b.CompletionRate(records, from, refDay, slotsPerDay)),
		},
		Milestones:  stats.Milestones(longest),
		GeneratedAt: time.Now().UTC(),
	}

	if entity.Kind == domain.KindPrayerSet {
		onTime := stats.Round(b.OnTimeRate(records, from, refDay))
		report.OnTimeRate = &onTime
		report.PerCategory = b.PerCategory(records, from, refDay)
	}

	s.proposeStreaks(ctx, entity, current, longest)

	return report, nil
}

// proposeStreaks pushes the freshly computed pair at the storage cache.
// The repository applies the longest monotonically, so a concurrent report
// that computed a larger value can never be regressed by this one. A cache
// write failure degrades the cache, not the report.
func (s *StatsService) proposeStreaks(ctx context.Context, entity *domain.TrackedEntity, current, longest int) {
	if entity.CurrentStreak == current && entity.LongestStreak >= longest {
		return
	}

	if err := s.entityRepo.RaiseLongestStreak(ctx, entity.ID, current, longest); err != nil {
		log.Printf("stats: failed to persist streaks for %s: %v", entity.ID, err)
	}
}

func emptyPrayerReport(input domain.ReportInput) *domain.StatisticsReport {
	zero := 0.0
	perCategory := make(map[domain.Prayer]domain.CategoryStat, len(domain.AllPrayers))
	for _, p := range domain.AllPrayers {
		perCategory[p] = domain.CategoryStat{}
	}

	return &domain.StatisticsReport{
		OnTimeRate:  &zero,
		PerCategory: perCategory,
		Milestones:  stats.Milestones(0),
		GeneratedAt: time.Now().UTC(),
	}
}
