package api

import (
	"fmt"
	"net/http"

	"skybook/internal/cache"
	"skybook/internal/config"
	"skybook/internal/database"
	"skybook/internal/handlers"
	"skybook/internal/logger"
	"skybook/internal/messaging"
	"skybook/internal/metrics"
	"skybook/internal/middleware"
	"skybook/internal/repository"
	"skybook/internal/search"
	"skybook/internal/service"

	"github.com/gin-gonic/gin"
)

// Server представляет HTTP сервер API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	redis    *cache.Client
	nats     *messaging.NATSClient
	services *service.Services
	repos    *repository.Repositories
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	redisClient, err := cache.NewClient(cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	flightIndex, err := search.NewFlightIndex(cfg.Search)
	if err != nil {
		logger.Fatal("Failed to connect to Elasticsearch", "error", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(cfg, repos, redisClient, natsClient, flightIndex)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(metrics.HTTPMiddleware())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		redis:    redisClient,
		nats:     natsClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

// setupRoutes настраивает все API роуты
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services)

	api := s.router.Group("/api")
	// Обязательная Basic Auth для всех API роутов
	api.Use(middleware.BasicAuth(s.repos.Users, s.redis, s.config))
	{
		flights := api.Group("/flights")
		{
			flights.POST("", h.CreateFlight)
			flights.GET("", h.ListFlights)
			flights.GET("/search", h.SearchFlights)
			flights.GET("/:id", h.GetFlight)
			flights.GET("/:id/seats", h.ListSeats)
		}

		seats := api.Group("/seats")
		{
			seats.GET("/:id", h.GetSeat)
			seats.PATCH("/:id/reserve", h.ReserveSeat)
			seats.PATCH("/:id/release", h.ReleaseSeat)
			seats.PATCH("/:id/unavailable", h.MarkSeatUnavailable)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("", h.ListBookings)
			bookings.GET("/:id", h.GetBooking)
			bookings.PATCH("/:id", h.UpdateBooking)
			bookings.PATCH("/:id/status", h.UpdateBookingStatus)
			bookings.PATCH("/:id/cancel", h.CancelBooking)
			bookings.POST("/:id/discounts", h.ApplyDiscount)
			bookings.POST("/:id/passengers", h.AddPassenger)
			bookings.DELETE("/:id/passengers/:passengerId", h.RemovePassenger)
			bookings.GET("/:id/payment-status", h.GetBookingPaymentStatus)
		}

		payments := api.Group("/payments")
		{
			payments.POST("", h.CreatePayment)
			payments.GET("/:id", h.GetPayment)
			payments.PATCH("/:id/status", h.UpdatePaymentStatus)
		}

		discounts := api.Group("/discounts")
		{
			discounts.POST("", h.CreateDiscount)
			discounts.GET("/available", h.ListAvailableDiscounts)
			discounts.GET("/:id", h.GetDiscount)
			discounts.POST("/:id/redeem", h.RedeemDiscount)
		}

		loyalty := api.Group("/loyalty")
		{
			loyalty.GET("/balance", h.GetLoyaltyBalance)
			loyalty.GET("/history", h.GetLoyaltyHistory)
			loyalty.POST("/redeem", h.RedeemPoints)
			loyalty.POST("/:userId/accrue", h.AccruePoints)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/dashboard", h.GetDashboard)
			reports.GET("/occupancy", h.GetFlightOccupancy)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", metrics.Handler())
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "skybook-api",
		"version": "1.0.0",
	})
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Services возвращает сервисы (для фоновых задач)
func (s *Server) Services() *service.Services {
	return s.services
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			logger.Get().Error("Error closing Redis connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
