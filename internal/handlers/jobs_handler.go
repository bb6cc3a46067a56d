package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pace/internal/jobs"
)

type JobsHandler struct {
	dispatcher *jobs.SummaryDispatcher
}

func NewJobsHandler(dispatcher *jobs.SummaryDispatcher) *JobsHandler {
	return &JobsHandler{dispatcher: dispatcher}
}

// POST /api/jobs/trigger-summary — ручной запуск рассылки для отладки
func (h *JobsHandler) TriggerSummary(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.dispatcher.Enqueue(req.UserID) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queue is full"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job added to queue"})
}
