package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pace/internal/services"
)

type PaymentHandler struct {
	service services.PaymentService
}

func NewPaymentHandler(service services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// POST /api/payments/create-order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req struct {
		Amount int `json:"amount"`
	}
	// тело опционально, сумма по умолчанию задаётся в сервисе
	_ = c.ShouldBindJSON(&req)

	userID := getUserID(c)
	order, err := h.service.CreateOrder(c.Request.Context(), userID, req.Amount)
	if err != nil {
		log.Printf("[payment][order][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// POST /api/payments/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req struct {
		OrderID   string `json:"order_id" binding:"required"`
		PaymentID string `json:"payment_id"`
		Signature string `json:"signature"`
	}
	userID := getUserID(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Verify(c.Request.Context(), userID, req.OrderID, req.PaymentID); err != nil {
		log.Printf("[payment][verify][err] user=%s order=%s: %v", userID, req.OrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "subscription activated"})
}

// GET /api/payments/status
func (h *PaymentHandler) Status(c *gin.Context) {
	userID := getUserID(c)
	status, err := h.service.Status(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[payment][status][err] user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, status)
}
