package handlers

import (
	"net/http"

	"skybook/internal/middleware"
	"skybook/internal/models"

	"github.com/gin-gonic/gin"
)

// Bookings handlers

// CreateBooking - POST /api/bookings
// Создать бронирование
func (h *Handlers) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.services.Bookings.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBooking - GET /api/bookings/:id
// Получить бронирование с пассажирами и скидками
func (h *Handlers) GetBooking(c *gin.Context) {
	booking, err := h.services.Bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ListBookings - GET /api/bookings
// Получить бронирования текущего пользователя
func (h *Handlers) ListBookings(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookings, err := h.services.Bookings.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// UpdateBooking - PATCH /api/bookings/:id
// Обновить контактные данные бронирования
func (h *Handlers) UpdateBooking(c *gin.Context) {
	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.services.Bookings.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBookingStatus - PATCH /api/bookings/:id/status
// Сменить статус бронирования
func (h *Handlers) UpdateBookingStatus(c *gin.Context) {
	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.services.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update booking status")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CancelBooking - PATCH /api/bookings/:id/cancel
// Отменить бронирование и освободить места
func (h *Handlers) CancelBooking(c *gin.Context) {
	booking, err := h.services.Bookings.Cancel(c.Request.Context(), c.Param("id"), "Cancelled by user")
	if err != nil {
		respondError(c, err, "Failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ApplyDiscount - POST /api/bookings/:id/discounts
// Применить скидку к бронированию
func (h *Handlers) ApplyDiscount(c *gin.Context) {
	var req models.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.services.Bookings.ApplyDiscount(c.Request.Context(), c.Param("id"), req.DiscountID)
	if err != nil {
		respondError(c, err, "Failed to apply discount")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// AddPassenger - POST /api/bookings/:id/passengers
// Добавить пассажира в бронирование
func (h *Handlers) AddPassenger(c *gin.Context) {
	var req models.AddPassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.services.Bookings.AddPassenger(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to add passenger")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// RemovePassenger - DELETE /api/bookings/:id/passengers/:passengerId
// Убрать пассажира из бронирования
func (h *Handlers) RemovePassenger(c *gin.Context) {
	booking, err := h.services.Bookings.RemovePassenger(c.Request.Context(), c.Param("id"), c.Param("passengerId"))
	if err != nil {
		respondError(c, err, "Failed to remove passenger")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetBookingPaymentStatus - GET /api/bookings/:id/payment-status
// Сверка оплаты с текущей ценой бронирования
func (h *Handlers) GetBookingPaymentStatus(c *gin.Context) {
	status, err := h.services.Bookings.GetPaymentStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get payment status")
		return
	}

	c.JSON(http.StatusOK, status)
}
