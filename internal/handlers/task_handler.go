package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pace/internal/models"
	"pace/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// POST /api/todos
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		Title       string             `json:"title" binding:"required"`
		DueDate     string             `json:"due_date"` // YYYY-MM-DD
		Recurrence  models.Recurrence  `json:"recurrence"`
		EnergyLevel models.EnergyLevel `json:"energy_level"`
		Progress    int                `json:"progress"`
	}

	userID := getUserID(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[todo][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var due *time.Time
	if req.DueDate != "" {
		t, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date (YYYY-MM-DD)"})
			return
		}
		due = &t
	}
	if req.EnergyLevel == "" {
		req.EnergyLevel = models.EnergyMedium
	}

	task := &models.Task{
		UserID:      userID,
		Title:       req.Title,
		DueDate:     due,
		Recurrence:  req.Recurrence,
		EnergyLevel: req.EnergyLevel,
		Progress:    req.Progress,
	}

	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		log.Printf("[todo][create][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create todo"})
		return
	}
	log.Printf("[todo][create][ok] id=%d user=%s title=%q recurrence=%s", created.ID, userID, created.Title, created.Recurrence)
	c.JSON(http.StatusCreated, created)
}

// GET /api/todos?date=YYYY-MM-DD&status=active|completed
func (h *TaskHandler) List(c *gin.Context) {
	userID := getUserID(c)

	var filter services.TaskListFilter
	if d := c.Query("date"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date (YYYY-MM-DD)"})
			return
		}
		filter.Date = &t
	}
	switch c.Query("status") {
	case "active":
		f := false
		filter.Completed = &f
	case "completed":
		tr := true
		filter.Completed = &tr
	}

	tasks, err := h.service.List(c.Request.Context(), userID, filter)
	if err != nil {
		log.Printf("[todo][list][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list todos"})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// PUT /api/todos/:id
func (h *TaskHandler) Update(c *gin.Context) {
	userID := getUserID(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req models.TaskUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[todo][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		log.Printf("[todo][update][err] id=%d user=%s: %v", id, userID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/todos/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		log.Printf("[todo][delete][err] id=%d user=%s: %v", id, userID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "todo deleted"})
}
