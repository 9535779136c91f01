package handlers

import (
	"net/http"
	"strconv"

	"skybook/internal/models"

	"github.com/gin-gonic/gin"
)

// Flights handlers

// CreateFlight - POST /api/flights
// Создать рейс с инвентарем мест (админ)
func (h *Handlers) CreateFlight(c *gin.Context) {
	var req models.CreateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.services.Flights.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create flight")
		return
	}

	c.JSON(http.StatusCreated, flight)
}

// GetFlight - GET /api/flights/:id
// Получить рейс
func (h *Handlers) GetFlight(c *gin.Context) {
	flight, err := h.services.Flights.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get flight")
		return
	}

	c.JSON(http.StatusOK, flight)
}

// ListFlights - GET /api/flights
// Список рейсов (через кеш)
func (h *Handlers) ListFlights(c *gin.Context) {
	flights, err := h.services.Flights.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list flights")
		return
	}

	c.JSON(http.StatusOK, flights)
}

// SearchFlights - GET /api/flights/search
// Поиск рейсов по маршруту и дате
func (h *Handlers) SearchFlights(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	date := c.Query("date")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return
	}
	if pageSize < 1 || pageSize > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and 50"})
		return
	}

	flights, err := h.services.Flights.Search(c.Request.Context(), origin, destination, date, page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to search flights")
		return
	}

	c.JSON(http.StatusOK, flights)
}
