package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pace/internal/models"
	"pace/internal/services"
)

type DailyLogHandler struct {
	service services.DailyLogService
}

func NewDailyLogHandler(service services.DailyLogService) *DailyLogHandler {
	return &DailyLogHandler{service: service}
}

// GET /api/daily-logs?date=YYYY-MM-DD
func (h *DailyLogHandler) Get(c *gin.Context) {
	userID := getUserID(c)
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	entry, err := h.service.Get(c.Request.Context(), userID, date)
	if err != nil {
		log.Printf("[daily-log][get][err] user=%s date=%s: %v", userID, date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch daily log"})
		return
	}
	// отсутствие записи — это null, не 404
	c.JSON(http.StatusOK, entry)
}

// POST /api/daily-logs
func (h *DailyLogHandler) Upsert(c *gin.Context) {
	var req struct {
		Date    string          `json:"date" binding:"required"`
		DayType *models.DayType `json:"day_type"`
		Mood    *string         `json:"mood"`
	}
	userID := getUserID(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &models.DailyLog{
		UserID:  userID,
		Date:    req.Date,
		DayType: req.DayType,
		Mood:    req.Mood,
	}
	saved, err := h.service.Upsert(c.Request.Context(), entry)
	if err != nil {
		log.Printf("[daily-log][upsert][err] user=%s date=%s: %v", userID, req.Date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save daily log"})
		return
	}
	c.JSON(http.StatusOK, saved)
}
