package workers

import (
	"context"
	"log"
	"time"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/stats"
)

type EntityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.TrackedEntity, error)
	RaiseLongestStreak(ctx context.Context, id string, current, longest int) error
}

type CompletionRepository interface {
	ListByEntity(ctx context.Context, entityID string, from, to time.Time) ([]*domain.CompletionRecord, error)
}

type StreakJob struct {
	EntityID string
}

// StreakWorker recomputes streak caches in the background. Completion
// writes enqueue the touched entity; the worker reruns the stats engine
// over the bounded window and persists the result through the monotonic
// CAS, so a job carrying stale data can never lower a fresher longest
// streak.
type StreakWorker struct {
	entityRepo     EntityRepository
	completionRepo CompletionRepository
	windowDays     int
	jobs           chan StreakJob
}

func NewStreakWorker(entityRepo EntityRepository, completionRepo CompletionRepository, windowDays int) *StreakWorker {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &StreakWorker{
		entityRepo:     entityRepo,
		completionRepo: completionRepo,
		windowDays:     windowDays,
		jobs:           make(chan StreakJob, 100),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Streak worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Streak worker shutting down...")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(entityID string) {
	select {
	case w.jobs <- StreakJob{EntityID: entityID}:
	default:
		log.Printf("Streak worker queue full! Dropping job for entity %s", entityID)
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	entity, err := w.entityRepo.GetByID(ctx, job.EntityID)
	if err != nil {
		log.Printf("Worker error fetching entity %s: %v", job.EntityID, err)
		return
	}

	now := time.Now().UTC()
	from := domain.DayKey(now, time.UTC).AddDate(0, 0, -(w.windowDays - 1))

	records, err := w.completionRepo.ListByEntity(ctx, job.EntityID, from, now)
	if err != nil {
		log.Printf("Worker error fetching completions for %s: %v", job.EntityID, err)
		return
	}

	current, longest := stats.EntityStreaks(entity, records, now, time.UTC, w.windowDays)

	if entity.CurrentStreak == current && entity.LongestStreak >= longest {
		return
	}

	if err := w.entityRepo.RaiseLongestStreak(ctx, job.EntityID, current, longest); err != nil {
		log.Printf("Worker failed to update streaks for %s: %v", job.EntityID, err)
		return
	}

	log.Printf("Streaks updated for %s: current=%d, longest=%d", entity.Title, current, longest)
}
