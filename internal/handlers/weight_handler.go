package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pace/internal/models"
	"pace/internal/services"
)

type WeightHandler struct {
	service services.WeightService
}

func NewWeightHandler(service services.WeightService) *WeightHandler {
	return &WeightHandler{service: service}
}

// POST /api/weight
func (h *WeightHandler) Log(c *gin.Context) {
	var req struct {
		Date   string  `json:"date" binding:"required"`
		Weight float64 `json:"weight" binding:"required"`
	}
	userID := getUserID(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &models.WeightLog{UserID: userID, Date: req.Date, Weight: req.Weight}
	saved, err := h.service.Log(c.Request.Context(), entry)
	if err != nil {
		log.Printf("[weight][log][err] user=%s date=%s: %v", userID, req.Date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log weight"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GET /api/weight?start_date=&end_date=
func (h *WeightHandler) History(c *gin.Context) {
	userID := getUserID(c)
	from := c.Query("start_date")
	to := c.Query("end_date")

	history, err := h.service.History(c.Request.Context(), userID, from, to)
	if err != nil {
		log.Printf("[weight][history][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch weight history"})
		return
	}
	if history.History == nil {
		history.History = []models.WeightLog{}
	}
	c.JSON(http.StatusOK, history)
}
