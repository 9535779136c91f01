package handlers

import (
	"net/http"

	"skybook/internal/middleware"
	"skybook/internal/models"

	"github.com/gin-gonic/gin"
)

// Loyalty handlers

// GetLoyaltyBalance - GET /api/loyalty/balance
// Баланс баллов текущего пользователя
func (h *Handlers) GetLoyaltyBalance(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balance, err := h.services.Loyalty.Balance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get loyalty balance")
		return
	}

	c.JSON(http.StatusOK, balance)
}

// GetLoyaltyHistory - GET /api/loyalty/history
// История начислений и списаний
func (h *Handlers) GetLoyaltyHistory(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	history, err := h.services.Loyalty.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get loyalty history")
		return
	}

	c.JSON(http.StatusOK, history)
}

// AccruePoints - POST /api/loyalty/:userId/accrue
// Начислить баллы вручную (админ)
func (h *Handlers) AccruePoints(c *gin.Context) {
	var req models.AccruePointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.services.Loyalty.Accrue(c.Request.Context(), c.Param("userId"), &req)
	if err != nil {
		respondError(c, err, "Failed to accrue points")
		return
	}

	c.JSON(http.StatusOK, account)
}

// RedeemPoints - POST /api/loyalty/redeem
// Списать баллы текущего пользователя
func (h *Handlers) RedeemPoints(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.RedeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.services.Loyalty.RedeemPoints(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "Failed to redeem points")
		return
	}

	c.JSON(http.StatusOK, account)
}
