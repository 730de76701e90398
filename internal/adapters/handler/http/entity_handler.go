package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/adapters/handler/http/middleware"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/services"
)

type HabitHandler struct {
	svc *services.EntityService
}

func NewHabitHandler(svc *services.EntityService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Title         string `json:"title" binding:"required"`
	Frequency     string `json:"frequency" binding:"required"`
	TargetPerWeek int    `json:"target_per_week"`
}

type updateHabitRequest struct {
	Title         string `json:"title"`
	Frequency     string `json:"frequency"`
	TargetPerWeek int    `json:"target_per_week"`
	Version       int    `json:"version"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.POST("/:id/archive", h.Archive)
		habits.DELETE("/:id", h.Delete)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateHabitInput{
		UserID:        userID,
		Title:         req.Title,
		Frequency:     req.Frequency,
		TargetPerWeek: req.TargetPerWeek,
	}

	habit, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habit, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.UpdateHabitInput{
		ID:            c.Param("id"),
		UserID:        userID,
		Title:         req.Title,
		Frequency:     req.Frequency,
		TargetPerWeek: req.TargetPerWeek,
		Version:       req.Version,
	}

	habit, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Archive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Archive(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrEntityTitleEmpty) ||
		errors.Is(err, domain.ErrEntityTitleTooLong) ||
		errors.Is(err, domain.ErrInvalidFrequency) ||
		errors.Is(err, domain.ErrInvalidTarget) ||
		errors.Is(err, domain.ErrEntityArchived)
}
