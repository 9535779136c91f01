package consumers

import (
	"context"
	"log/slog"

	"skybook/internal/cache"
	"skybook/internal/config"
	"skybook/internal/database"
	"skybook/internal/messaging"
	"skybook/internal/models"
	"skybook/internal/repository"
	"skybook/internal/service"

	"github.com/nats-io/stan.go"
)

type ConsumerService struct {
	db       *database.DB
	redis    *cache.Client
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	bookings *service.BookingService
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	redisClient, err := cache.NewClient(cfg.Redis)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	repos := repository.NewRepositories(db)

	discountService := service.NewDiscountService(repos.Discounts, repos.Loyalty)
	bookingService := service.NewBookingService(repos.Bookings, repos.Flights, repos.Payments, repos.Users, discountService, redisClient, natsClient, cfg.BookingDedupWindow)

	handlers := NewHandlers(repos)

	return &ConsumerService{
		db:       db,
		redis:    redisClient,
		nats:     natsClient,
		repos:    repos,
		bookings: bookingService,
		handlers: handlers,
	}, nil
}

// Bookings exposes the booking service for background jobs sharing this
// process.
func (cs *ConsumerService) Bookings() *service.BookingService {
	return cs.bookings
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	subscriptions := []struct {
		subject string
		handler stan.MsgHandler
	}{
		{models.EventBookingCreated, cs.handlers.HandleBookingCreated},
		{models.EventBookingConfirmed, cs.handlers.HandleBookingConfirmed},
		{models.EventBookingCancelled, cs.handlers.HandleBookingCancelled},
		{models.EventBookingExpired, cs.handlers.HandleBookingExpired},
		{models.EventPaymentRecorded, cs.handlers.HandlePaymentRecorded},
		{models.EventPaymentFailed, cs.handlers.HandlePaymentFailed},
		{models.EventLoyaltyAccrued, cs.handlers.HandleLoyaltyAccrued},
	}

	for _, sub := range subscriptions {
		if _, err := cs.nats.SubscribeQueue(sub.subject, "consumers", sub.handler); err != nil {
			return err
		}
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.redis != nil {
		if err := cs.redis.Close(); err != nil {
			slog.Error("Error closing Redis connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
