package handlers

import (
	"net/http"

	"skybook/internal/models"

	"github.com/gin-gonic/gin"
)

// Seats handlers

// ListSeats - GET /api/flights/:id/seats
// Карта мест рейса с фильтрами по статусу и классу
func (h *Handlers) ListSeats(c *gin.Context) {
	var status *models.SeatStatus
	var class *string

	if statusParam := c.Query("status"); statusParam != "" {
		s := models.SeatStatus(statusParam)
		status = &s
	}
	if classParam := c.Query("class"); classParam != "" {
		class = &classParam
	}

	seats, err := h.services.Seats.ListByFlight(c.Request.Context(), c.Param("id"), status, class)
	if err != nil {
		respondError(c, err, "Failed to list seats")
		return
	}

	c.JSON(http.StatusOK, seats)
}

// GetSeat - GET /api/seats/:id
// Получить место
func (h *Handlers) GetSeat(c *gin.Context) {
	seat, err := h.services.Seats.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get seat")
		return
	}

	c.JSON(http.StatusOK, seat)
}

// ReserveSeat - PATCH /api/seats/:id/reserve
// Занять свободное место вне бронирования
func (h *Handlers) ReserveSeat(c *gin.Context) {
	seat, err := h.services.Seats.Reserve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to reserve seat")
		return
	}

	c.JSON(http.StatusOK, seat)
}

// ReleaseSeat - PATCH /api/seats/:id/release
// Освободить место (операционный инструмент)
func (h *Handlers) ReleaseSeat(c *gin.Context) {
	seat, err := h.services.Seats.Release(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to release seat")
		return
	}

	c.JSON(http.StatusOK, seat)
}

// MarkSeatUnavailable - PATCH /api/seats/:id/unavailable
// Снять место с продажи
func (h *Handlers) MarkSeatUnavailable(c *gin.Context) {
	seat, err := h.services.Seats.MarkUnavailable(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to mark seat unavailable")
		return
	}

	c.JSON(http.StatusOK, seat)
}
