package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/adapters/handler/http/middleware"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/services"
)

const dateLayout = "2006-01-02"

type CompletionHandler struct {
	svc *services.CompletionService
}

func NewCompletionHandler(svc *services.CompletionService) *CompletionHandler {
	return &CompletionHandler{
		svc: svc,
	}
}

type markHabitRequest struct {
	Date      string `json:"date" binding:"required"`
	Completed *bool  `json:"completed"`
}

type markPrayerRequest struct {
	Date   string `json:"date" binding:"required"`
	Prayer string `json:"prayer" binding:"required"`
	OnTime *bool  `json:"on_time"`
}

func (h *CompletionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.PUT("/habits/:id/completions", h.MarkHabit)
	router.DELETE("/habits/:id/completions", h.UnmarkHabit)
	router.GET("/habits/:id/completions", h.ListByHabit)

	router.PUT("/prayers", h.MarkPrayer)
	router.DELETE("/prayers", h.UnmarkPrayer)
}

func (h *CompletionHandler) MarkHabit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req markHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	input := services.MarkHabitInput{
		EntityID:  c.Param("id"),
		UserID:    userID,
		Date:      date,
		Completed: completed,
	}

	record, err := h.svc.MarkHabit(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *CompletionHandler) UnmarkHabit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing date, expected YYYY-MM-DD"})
		return
	}

	if err := h.svc.UnmarkHabit(c.Request.Context(), c.Param("id"), userID, date); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CompletionHandler) ListByHabit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if q := c.Query("to"); q != "" {
		if parsed, err := time.Parse(dateLayout, q); err == nil {
			to = parsed
		}
	}
	if q := c.Query("from"); q != "" {
		if parsed, err := time.Parse(dateLayout, q); err == nil {
			from = parsed
		}
	}

	list, err := h.svc.ListByEntity(c.Request.Context(), c.Param("id"), userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *CompletionHandler) MarkPrayer(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req markPrayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	prayer, err := domain.ParsePrayer(req.Prayer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.MarkPrayerInput{
		UserID: userID,
		Date:   date,
		Prayer: prayer,
		OnTime: req.OnTime,
	}

	record, err := h.svc.MarkPrayer(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *CompletionHandler) UnmarkPrayer(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing date, expected YYYY-MM-DD"})
		return
	}

	prayer, err := domain.ParsePrayer(c.Query("prayer"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.UnmarkPrayer(c.Request.Context(), userID, date, prayer); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized access"})

	case errors.Is(err, domain.ErrEntityNotFound) || errors.Is(err, domain.ErrCompletionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrEntityConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "version conflict",
			"message": "data has been modified elsewhere, please refresh",
		})

	case errors.Is(err, domain.ErrInvalidPrayer) || errors.Is(err, domain.ErrInvalidCompletion):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
