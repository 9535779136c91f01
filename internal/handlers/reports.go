package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Reports handlers

// GetDashboard - GET /api/reports/dashboard
// Сводные показатели по бронированиям, выручке и местам
func (h *Handlers) GetDashboard(c *gin.Context) {
	report, err := h.services.Reports.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetFlightOccupancy - GET /api/reports/occupancy
// Занятость мест по каждому рейсу
func (h *Handlers) GetFlightOccupancy(c *gin.Context) {
	occupancy, err := h.services.Reports.FlightOccupancy(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get flight occupancy")
		return
	}

	c.JSON(http.StatusOK, occupancy)
}
