package handlers

import (
	"net/http"

	"skybook/internal/middleware"
	"skybook/internal/models"

	"github.com/gin-gonic/gin"
)

// Discounts handlers

// CreateDiscount - POST /api/discounts
// Создать код скидки (админ)
func (h *Handlers) CreateDiscount(c *gin.Context) {
	var req models.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	discount, err := h.services.Discounts.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create discount")
		return
	}

	c.JSON(http.StatusCreated, discount)
}

// GetDiscount - GET /api/discounts/:id
// Получить скидку
func (h *Handlers) GetDiscount(c *gin.Context) {
	discount, err := h.services.Discounts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get discount")
		return
	}

	c.JSON(http.StatusOK, discount)
}

// ListAvailableDiscounts - GET /api/discounts/available
// Скидки, доступные текущему пользователю по его баллам
func (h *Handlers) ListAvailableDiscounts(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	discounts, err := h.services.Discounts.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list discounts")
		return
	}

	c.JSON(http.StatusOK, discounts)
}

// RedeemDiscount - POST /api/discounts/:id/redeem
// Обменять баллы лояльности на скидку
func (h *Handlers) RedeemDiscount(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	discount, err := h.services.Discounts.Redeem(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to redeem discount")
		return
	}

	c.JSON(http.StatusOK, discount)
}
