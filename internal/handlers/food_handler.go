package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pace/internal/models"
	"pace/internal/services"
)

type FoodHandler struct {
	service services.FoodService
}

func NewFoodHandler(service services.FoodService) *FoodHandler {
	return &FoodHandler{service: service}
}

// POST /api/food
func (h *FoodHandler) Log(c *gin.Context) {
	var req struct {
		Date     string  `json:"date" binding:"required"`
		Name     string  `json:"name" binding:"required"`
		Quantity string  `json:"quantity"`
		Calories int     `json:"calories"`
		Time     *string `json:"time"`
		Notes    *string `json:"notes"`
	}
	userID := getUserID(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &models.FoodLog{
		UserID:   userID,
		Date:     req.Date,
		Name:     req.Name,
		Quantity: req.Quantity,
		Calories: req.Calories,
		Time:     req.Time,
		Notes:    req.Notes,
	}
	saved, err := h.service.Log(c.Request.Context(), entry)
	if err != nil {
		log.Printf("[food][log][err] user=%s date=%s: %v", userID, req.Date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log food"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GET /api/food?date=YYYY-MM-DD
func (h *FoodHandler) ListByDate(c *gin.Context) {
	userID := getUserID(c)
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	entries, err := h.service.ListByDate(c.Request.Context(), userID, date)
	if err != nil {
		log.Printf("[food][list][err] user=%s date=%s: %v", userID, date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food log"})
		return
	}
	if entries == nil {
		entries = []models.FoodLog{}
	}
	c.JSON(http.StatusOK, entries)
}

// DELETE /api/food/:id
func (h *FoodHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		log.Printf("[food][delete][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted successfully"})
}
