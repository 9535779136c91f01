package service

import (
	"context"

	"skybook/internal/models"
)

// SeatService reads seat inventory and handles seat status changes outside
// a booking: standalone reservation, release, and withdrawal from sale.
type SeatService struct {
	seats SeatStore
}

func NewSeatService(seats SeatStore) *SeatService {
	return &SeatService{seats: seats}
}

func (s *SeatService) Get(ctx context.Context, id string) (*models.Seat, error) {
	return s.seats.GetByID(ctx, id)
}

// ListByFlight returns a flight's seat map, optionally filtered by status
// and class. The listing is advisory: a seat shown Available can be taken
// by the time a booking is attempted.
func (s *SeatService) ListByFlight(ctx context.Context, flightID string, status *models.SeatStatus, class *string) ([]models.Seat, error) {
	return s.seats.ListByFlight(ctx, flightID, status, class)
}

// Reserve claims a single seat outside a booking. Losing a race for the
// seat surfaces as ErrSeatUnavailable, same as inside a booking.
func (s *SeatService) Reserve(ctx context.Context, seatID string) (*models.Seat, error) {
	return s.seats.Reserve(ctx, seatID)
}

// Release frees a seat outside a booking (ops tooling). Releasing an
// Available seat is a no-op.
func (s *SeatService) Release(ctx context.Context, seatID string) (*models.Seat, error) {
	return s.seats.Release(ctx, seatID)
}

// MarkUnavailable withdraws an Available seat from sale.
func (s *SeatService) MarkUnavailable(ctx context.Context, seatID string) (*models.Seat, error) {
	return s.seats.MarkUnavailable(ctx, seatID)
}
