package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/Bahtiyorjon05/Daily-priority-sub003/internal/adapters/handler/http"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/adapters/repository"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/services"
)

type statsFixture struct {
	router         *gin.Engine
	entityRepo     *repository.InMemoryEntityRepository
	completionRepo *repository.InMemoryCompletionRepository
}

func setupStatsRouter() statsFixture {
	gin.SetMode(gin.TestMode)

	entityRepo := repository.NewInMemoryEntityRepository()
	completionRepo := repository.NewInMemoryCompletionRepository()
	svc := services.NewStatsService(entityRepo, completionRepo)
	handler := adapterHTTP.NewStatsHandler(svc)

	r := gin.New()
	r.Use(injectUserID())
	handler.RegisterRoutes(r.Group("/api/v1"))

	return statsFixture{
		router:         r,
		entityRepo:     entityRepo,
		completionRepo: completionRepo,
	}
}

func markDays(t *testing.T, f statsFixture, entityID, userID string, days ...time.Time) {
	t.Helper()
	for _, day := range days {
		record := domain.NewCompletionRecord(entityID, userID, day, true)
		require.NoError(t, f.completionRepo.Upsert(context.Background(), record))
	}
}

func TestGetHabitStats(t *testing.T) {
	reference := "2025-06-15"
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Success: 200 with a consecutive streak", func(t *testing.T) {
		f := setupStatsRouter()
		habit := seedHabit(t, f.entityRepo, "user-1")
		markDays(t, f, habit.ID, "user-1",
			day, day.AddDate(0, 0, -1), day.AddDate(0, 0, -2))

		w := authedRequest(f.router, "GET", "/api/v1/stats/habits/"+habit.ID+"?date="+reference, "", "user-1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"current_streak":3`)
		assert.Contains(t, w.Body.String(), `"longest_streak":3`)
		assert.Contains(t, w.Body.String(), `"milestones":`)
	})

	t.Run("Success: a gap resets the current streak only", func(t *testing.T) {
		f := setupStatsRouter()
		habit := seedHabit(t, f.entityRepo, "user-1")
		// Five day run, then a gap, then two recent days.
		for i := 7; i <= 11; i++ {
			markDays(t, f, habit.ID, "user-1", day.AddDate(0, 0, -i))
		}
		markDays(t, f, habit.ID, "user-1", day, day.AddDate(0, 0, -1))

		w := authedRequest(f.router, "GET", "/api/v1/stats/habits/"+habit.ID+"?date="+reference, "", "user-1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"current_streak":2`)
		assert.Contains(t, w.Body.String(), `"longest_streak":5`)
	})

	t.Run("Success: report persists the streak cache", func(t *testing.T) {
		f := setupStatsRouter()
		habit := seedHabit(t, f.entityRepo, "user-1")
		markDays(t, f, habit.ID, "user-1", day, day.AddDate(0, 0, -1))

		w := authedRequest(f.router, "GET", "/api/v1/stats/habits/"+habit.ID+"?date="+reference, "", "user-1")
		require.Equal(t, http.StatusOK, w.Code)

		got, err := f.entityRepo.GetByID(context.Background(), habit.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.CurrentStreak)
		assert.Equal(t, 2, got.LongestStreak)
	})

	t.Run("Fail: 400 on bad tz", func(t *testing.T) {
		f := setupStatsRouter()
		habit := seedHabit(t, f.entityRepo, "user-1")

		w := authedRequest(f.router, "GET", "/api/v1/stats/habits/"+habit.ID+"?tz=Mars%2FOlympus", "", "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "IANA")
	})

	t.Run("Fail: 400 on absurd window", func(t *testing.T) {
		f := setupStatsRouter()
		habit := seedHabit(t, f.entityRepo, "user-1")

		w := authedRequest(f.router, "GET", "/api/v1/stats/habits/"+habit.ID+"?window_days=4000", "", "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 403 for non-owner", func(t *testing.T) {
		f := setupStatsRouter()
		habit := seedHabit(t, f.entityRepo, "user-1")

		w := authedRequest(f.router, "GET", "/api/v1/stats/habits/"+habit.ID, "", "intruder")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Fail: 404 on unknown habit", func(t *testing.T) {
		f := setupStatsRouter()

		w := authedRequest(f.router, "GET", "/api/v1/stats/habits/missing", "", "user-1")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetPrayerStats(t *testing.T) {
	reference := "2025-06-15"
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Success: zeroed report for a fresh user", func(t *testing.T) {
		f := setupStatsRouter()

		w := authedRequest(f.router, "GET", "/api/v1/stats/prayers?date="+reference, "", "user-1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"current_streak":0`)
		assert.Contains(t, w.Body.String(), `"on_time_rate":0`)
		assert.Contains(t, w.Body.String(), `"fajr"`)
	})

	t.Run("Success: per prayer breakdown with on-time rate", func(t *testing.T) {
		f := setupStatsRouter()

		set, err := domain.NewPrayerSet("user-1")
		require.NoError(t, err)
		require.NoError(t, f.entityRepo.Create(context.Background(), set))

		onTime := true
		late := false
		for i, p := range domain.AllPrayers {
			record := domain.NewCompletionRecord(set.ID, "user-1", day, true)
			record.Category = p
			if i < 3 {
				record.OnTime = &onTime
			} else {
				record.OnTime = &late
			}
			require.NoError(t, f.completionRepo.Upsert(context.Background(), record))
		}

		w := authedRequest(f.router, "GET", "/api/v1/stats/prayers?date="+reference, "", "user-1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"on_time_rate":60`)
		assert.Contains(t, w.Body.String(), `"current_streak":1`)
		assert.Contains(t, w.Body.String(), `"per_category"`)
	})

	t.Run("Timezone: a late night mark lands on the local day", func(t *testing.T) {
		f := setupStatsRouter()

		set, err := domain.NewPrayerSet("user-1")
		require.NoError(t, err)
		require.NoError(t, f.entityRepo.Create(context.Background(), set))

		// 23:30 in Karachi on June 15 is already June 15 18:30 UTC; with
		// tz=Asia/Karachi the whole day must count as one bucket.
		karachi, err := time.LoadLocation("Asia/Karachi")
		require.NoError(t, err)
		for _, p := range domain.AllPrayers {
			record := domain.NewCompletionRecord(set.ID, "user-1",
				time.Date(2025, 6, 15, 23, 30, 0, 0, karachi), true)
			record.Category = p
			require.NoError(t, f.completionRepo.Upsert(context.Background(), record))
		}

		w := authedRequest(f.router, "GET", "/api/v1/stats/prayers?date="+reference+"&tz=Asia/Karachi", "", "user-1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"current_streak":1`)
	})
}
