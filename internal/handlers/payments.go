package handlers

import (
	"net/http"

	"skybook/internal/models"

	"github.com/gin-gonic/gin"
)

// Payments handlers

// CreatePayment - POST /api/payments
// Записать платеж по бронированию. Не более одного платежа на бронирование.
func (h *Handlers) CreatePayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.services.Payments.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create payment")
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayment - GET /api/payments/:id
// Получить платеж
func (h *Handlers) GetPayment(c *gin.Context) {
	payment, err := h.services.Payments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get payment")
		return
	}

	c.JSON(http.StatusOK, payment)
}

// UpdatePaymentStatus - PATCH /api/payments/:id/status
// Сменить статус платежа. Подтвержденное бронирование не понижается.
func (h *Handlers) UpdatePaymentStatus(c *gin.Context) {
	var req models.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.services.Payments.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update payment status")
		return
	}

	c.JSON(http.StatusOK, payment)
}
