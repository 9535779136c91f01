package main

import (
	"context"
	"crypto/sha256"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"skybook/internal/config"
	"skybook/internal/database"
	apperrors "skybook/internal/errors"
	"skybook/internal/logger"
	"skybook/internal/models"
	"skybook/internal/repository"
)

var (
	flightCount = flag.Int("flights", 5, "Number of demo flights to create")
	dryRun      = flag.Bool("dry-run", false, "Show what would be seeded without making changes")
)

// Seeder populates demo users, flights with seat inventory, and discount
// codes for local development and load testing.
type Seeder struct {
	repos *repository.Repositories
}

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "text")

	slog.Info("Starting seeder...")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	if *dryRun {
		slog.Info("Dry run: would seed demo data", "flights", *flightCount)
		return
	}

	seeder := &Seeder{repos: repository.NewRepositories(db)}
	ctx := context.Background()

	if err := seeder.SeedUsers(ctx); err != nil {
		slog.Error("Failed to seed users", "error", err)
		os.Exit(1)
	}

	if err := seeder.SeedFlights(ctx, *flightCount); err != nil {
		slog.Error("Failed to seed flights", "error", err)
		os.Exit(1)
	}

	if err := seeder.SeedDiscounts(ctx); err != nil {
		slog.Error("Failed to seed discounts", "error", err)
		os.Exit(1)
	}

	slog.Info("Seeding completed successfully!")
}

func (s *Seeder) SeedUsers(ctx context.Context) error {
	users := []struct {
		id, email, password, firstName, surname string
	}{
		{"U-DEMO0001", "somchai@example.com", "password123", "Somchai", "Jaidee"},
		{"U-DEMO0002", "malee@example.com", "password123", "Malee", "Srisuk"},
		{"U-DEMO0003", "admin@example.com", "admin123", "Admin", "User"},
	}

	for _, u := range users {
		if _, err := s.repos.Users.GetByEmail(ctx, u.email); err == nil {
			slog.Info("User already exists, skipping", "email", u.email)
			continue
		} else if !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		hash := sha256.Sum256([]byte(u.password))
		user := &models.User{
			ID:           u.id,
			Email:        u.email,
			PasswordHash: fmt.Sprintf("%x", hash),
			FirstName:    u.firstName,
			Surname:      u.surname,
			IsActive:     true,
		}

		if err := s.repos.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.email, err)
		}
		slog.Info("Created user", "email", u.email)
	}

	return nil
}

func (s *Seeder) SeedFlights(ctx context.Context, count int) error {
	routes := []struct {
		number, origin, destination string
		basePrice                   int64
	}{
		{"SB101", "Bangkok", "Chiang Mai", 120000},
		{"SB102", "Chiang Mai", "Bangkok", 120000},
		{"SB201", "Bangkok", "Phuket", 150000},
		{"SB202", "Phuket", "Bangkok", 150000},
		{"SB301", "Bangkok", "Singapore", 450000},
		{"SB302", "Singapore", "Bangkok", 450000},
	}

	existing, err := s.repos.Flights.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		slog.Info("Flights already seeded, skipping", "count", len(existing))
		return nil
	}

	if count > len(routes) {
		count = len(routes)
	}

	departure := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	for i := 0; i < count; i++ {
		route := routes[i]
		flight := &models.Flight{
			ID:            fmt.Sprintf("FL-SEED%03d", i+1),
			FlightNumber:  route.number,
			Origin:        route.origin,
			Destination:   route.destination,
			DepartureTime: departure.Add(time.Duration(i) * 3 * time.Hour),
			ArrivalTime:   departure.Add(time.Duration(i)*3*time.Hour + 2*time.Hour),
			BasePrice:     route.basePrice,
		}

		if err := s.repos.Flights.CreateWithSeats(ctx, flight, 30, 6); err != nil {
			return fmt.Errorf("failed to create flight %s: %w", route.number, err)
		}
		slog.Info("Created flight with seats",
			"flight_id", flight.ID,
			"route", route.origin+" -> "+route.destination,
			"seats", flight.TotalSeats)
	}

	return nil
}

func (s *Seeder) SeedDiscounts(ctx context.Context) error {
	discounts := []models.Discount{
		{ID: "DISCWELCOME", PointsRequired: 0, Value: 10000, ExpiresAt: time.Now().Add(90 * 24 * time.Hour)},
		{ID: "DISCLOYAL50", PointsRequired: 500, Value: 50000, ExpiresAt: time.Now().Add(90 * 24 * time.Hour)},
		{ID: "DISCEXPIRED", PointsRequired: 0, Value: 5000, ExpiresAt: time.Now().Add(-24 * time.Hour)},
	}

	for i := range discounts {
		d := discounts[i]
		if _, err := s.repos.Discounts.GetByID(ctx, d.ID); err == nil {
			slog.Info("Discount already exists, skipping", "discount_id", d.ID)
			continue
		} else if !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		if err := s.repos.Discounts.Create(ctx, &d); err != nil {
			return fmt.Errorf("failed to create discount %s: %w", d.ID, err)
		}
		slog.Info("Created discount", "discount_id", d.ID, "value", d.Value)
	}

	return nil
}
