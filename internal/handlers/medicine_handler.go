package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pace/internal/models"
	"pace/internal/services"
)

type MedicineHandler struct {
	service services.MedicineService
}

func NewMedicineHandler(service services.MedicineService) *MedicineHandler {
	return &MedicineHandler{service: service}
}

// POST /api/medicines
func (h *MedicineHandler) Add(c *gin.Context) {
	var req struct {
		Name      string   `json:"name" binding:"required"`
		Dosage    string   `json:"dosage"`
		Frequency string   `json:"frequency"`
		Times     []string `json:"times"`
	}
	userID := getUserID(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := &models.Medicine{
		UserID:    userID,
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Times:     req.Times,
	}
	saved, err := h.service.Add(c.Request.Context(), m)
	if err != nil {
		log.Printf("[medicine][add][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add medicine"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GET /api/medicines
func (h *MedicineHandler) List(c *gin.Context) {
	userID := getUserID(c)
	meds, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[medicine][list][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch medicines"})
		return
	}
	if meds == nil {
		meds = []models.Medicine{}
	}
	c.JSON(http.StatusOK, meds)
}

// PUT /api/medicines/:id
func (h *MedicineHandler) Update(c *gin.Context) {
	var req struct {
		Name      string   `json:"name" binding:"required"`
		Dosage    string   `json:"dosage"`
		Frequency string   `json:"frequency"`
		Times     []string `json:"times"`
	}
	userID := getUserID(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := &models.Medicine{
		ID:        c.Param("id"),
		UserID:    userID,
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Times:     req.Times,
	}
	saved, err := h.service.Update(c.Request.Context(), m)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
			return
		}
		log.Printf("[medicine][update][err] id=%s user=%s: %v", m.ID, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update medicine"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DELETE /api/medicines/:id
func (h *MedicineHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		log.Printf("[medicine][delete][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete medicine"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "medicine deleted"})
}

// POST /api/medicines/intake
func (h *MedicineHandler) LogIntake(c *gin.Context) {
	var req struct {
		MedicineID string              `json:"medicine_id" binding:"required"`
		Date       string              `json:"date" binding:"required"`
		Time       string              `json:"time" binding:"required"`
		Status     models.IntakeStatus `json:"status"`
	}
	userID := getUserID(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &models.MedicineLog{
		UserID:     userID,
		MedicineID: req.MedicineID,
		Date:       req.Date,
		Time:       req.Time,
		Status:     req.Status,
	}
	saved, err := h.service.LogIntake(c.Request.Context(), entry)
	if err != nil {
		log.Printf("[medicine][intake][err] user=%s med=%s: %v", userID, req.MedicineID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log intake"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DELETE /api/medicines/intake?medicine_id=&date=&time=
func (h *MedicineHandler) DeleteIntake(c *gin.Context) {
	userID := getUserID(c)
	medicineID := c.Query("medicine_id")
	date := c.Query("date")
	timeOfDay := c.Query("time")
	if medicineID == "" || date == "" || timeOfDay == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required parameters"})
		return
	}

	if err := h.service.DeleteIntake(c.Request.Context(), userID, medicineID, date, timeOfDay); err != nil {
		log.Printf("[medicine][intake][delete][err] user=%s med=%s: %v", userID, medicineID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete intake"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "intake deleted"})
}

// GET /api/medicines/intake?date=YYYY-MM-DD
func (h *MedicineHandler) IntakeHistory(c *gin.Context) {
	userID := getUserID(c)
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	history, err := h.service.IntakeHistory(c.Request.Context(), userID, date)
	if err != nil {
		log.Printf("[medicine][history][err] user=%s date=%s: %v", userID, date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch intake history"})
		return
	}
	if history == nil {
		history = []models.MedicineLog{}
	}
	c.JSON(http.StatusOK, history)
}
