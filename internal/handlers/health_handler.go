package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pace/internal/models"
	"pace/internal/services"
)

type HealthHandler struct {
	service services.HealthService
}

func NewHealthHandler(service services.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// GET /api/health-metrics?date=YYYY-MM-DD
func (h *HealthHandler) Get(c *gin.Context) {
	userID := getUserID(c)
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	m, err := h.service.Get(c.Request.Context(), userID, date)
	if err != nil {
		log.Printf("[health][get][err] user=%s date=%s: %v", userID, date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch health metrics"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// POST /api/health-metrics
func (h *HealthHandler) Log(c *gin.Context) {
	var req struct {
		Date         string  `json:"date" binding:"required"`
		PainLevel    int     `json:"pain_level"`
		FatigueLevel int     `json:"fatigue_level"`
		Mood         *string `json:"mood"`
		Notes        *string `json:"notes"`
	}
	userID := getUserID(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := &models.HealthMetric{
		UserID:       userID,
		Date:         req.Date,
		PainLevel:    req.PainLevel,
		FatigueLevel: req.FatigueLevel,
		Mood:         req.Mood,
		Notes:        req.Notes,
	}
	saved, err := h.service.Log(c.Request.Context(), m)
	if err != nil {
		log.Printf("[health][log][err] user=%s date=%s: %v", userID, req.Date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save health metrics"})
		return
	}
	c.JSON(http.StatusOK, saved)
}
