package service

import (
	"context"
	"time"

	"skybook/internal/logger"
	"skybook/internal/models"
)

const (
	defaultCabinRows  = 30
	defaultSeatsInRow = 6
)

// FlightService manages the flight catalog: Postgres is the source of truth,
// Redis caches the list read path, Elasticsearch serves route search. Both
// projections are refreshed on writes and never consulted by bookings.
type FlightService struct {
	flights  FlightStore
	catalog  CatalogCache
	index    FlightSearcher
	cacheTTL time.Duration
}

func NewFlightService(flights FlightStore, catalog CatalogCache, index FlightSearcher, cacheTTL time.Duration) *FlightService {
	return &FlightService{
		flights:  flights,
		catalog:  catalog,
		index:    index,
		cacheTTL: cacheTTL,
	}
}

// Create provisions a flight with its full seat map and pushes it into the
// search index.
func (s *FlightService) Create(ctx context.Context, req *models.CreateFlightRequest) (*models.Flight, error) {
	rows := req.Rows
	if rows <= 0 {
		rows = defaultCabinRows
	}
	seatsPerRow := req.SeatsPerRow
	if seatsPerRow <= 0 || seatsPerRow > 26 {
		seatsPerRow = defaultSeatsInRow
	}

	flight := &models.Flight{
		ID:            newFlightID(),
		FlightNumber:  req.FlightNumber,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		BasePrice:     req.BasePrice,
	}

	if err := s.flights.CreateWithSeats(ctx, flight, rows, seatsPerRow); err != nil {
		return nil, err
	}

	if err := s.catalog.InvalidateFlights(ctx); err != nil {
		logger.WithContext(ctx).Error("Failed to invalidate flight cache",
			"error", err, "flight_id", flight.ID)
	}

	if err := s.index.IndexFlight(ctx, flight); err != nil {
		logger.WithContext(ctx).Error("Failed to index flight for search",
			"error", err, "flight_id", flight.ID)
	}

	return flight, nil
}

func (s *FlightService) Get(ctx context.Context, id string) (*models.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

// List returns the catalog, served from the read cache when warm.
func (s *FlightService) List(ctx context.Context) ([]models.Flight, error) {
	if cached, err := s.catalog.GetFlights(ctx); err == nil {
		return cached, nil
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.catalog.SetFlights(ctx, flights, s.cacheTTL); err != nil {
		logger.WithContext(ctx).Error("Failed to populate flight cache", "error", err)
	}

	return flights, nil
}

// Search queries the search index by route and date.
func (s *FlightService) Search(ctx context.Context, origin, destination, date string, page, pageSize int) ([]models.Flight, error) {
	return s.index.Search(ctx, origin, destination, date, page, pageSize)
}
