package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/adapters/handler/http/middleware"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/habits/:id", h.GetHabitStats)
	r.GET("/stats/prayers", h.GetPrayerStats)
}

// reportInput builds the shared report parameters from query params. Day
// boundaries follow the caller's tz, never the server's local zone, so a
// completion logged late at night in Jakarta lands on the right day.
func reportInput(c *gin.Context, userID string) (domain.ReportInput, bool) {
	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tz, expected an IANA timezone name"})
			return domain.ReportInput{}, false
		}
		loc = parsed
	}

	var reference time.Time
	if d := c.Query("date"); d != "" {
		parsed, err := time.ParseInLocation(dateLayout, d, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
			return domain.ReportInput{}, false
		}
		reference = parsed
	}

	windowDays := 0
	if w := c.Query("window_days"); w != "" {
		parsed, err := strconv.Atoi(w)
		if err != nil || parsed < 1 || parsed > 366 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "window_days must be between 1 and 366"})
			return domain.ReportInput{}, false
		}
		windowDays = parsed
	}

	return domain.ReportInput{
		UserID:     userID,
		Reference:  reference,
		WindowDays: windowDays,
		Location:   loc,
	}, true
}

func (h *StatsHandler) GetHabitStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	input, ok := reportInput(c, userID)
	if !ok {
		return
	}

	report, err := h.svc.Report(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *StatsHandler) GetPrayerStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	input, ok := reportInput(c, userID)
	if !ok {
		return
	}

	report, err := h.svc.PrayerReport(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
