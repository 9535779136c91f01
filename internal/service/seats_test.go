package service

import (
	"context"
	"fmt"
	"testing"

	apperrors "skybook/internal/errors"
	"skybook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReserveSeat_ClaimsAvailableSeat(t *testing.T) {
	seats := new(MockSeatStore)
	seats.On("Reserve", mock.Anything, "seat-1").Return(&models.Seat{
		ID: "seat-1", FlightID: "FL-1", SeatNumber: "12A", Status: models.SeatBooked, Price: 120000,
	}, nil)

	svc := NewSeatService(seats)

	seat, err := svc.Reserve(context.Background(), "seat-1")

	assert.NoError(t, err)
	assert.Equal(t, models.SeatBooked, seat.Status)
	seats.AssertExpectations(t)
}

func TestReserveSeat_TakenSeatConflicts(t *testing.T) {
	seats := new(MockSeatStore)
	seats.On("Reserve", mock.Anything, "seat-1").
		Return(nil, fmt.Errorf("seat seat-1: %w", apperrors.ErrSeatUnavailable))

	svc := NewSeatService(seats)

	_, err := svc.Reserve(context.Background(), "seat-1")

	assert.ErrorIs(t, err, apperrors.ErrSeatUnavailable)
}

func TestReserveSeat_MissingSeatIsNotFound(t *testing.T) {
	seats := new(MockSeatStore)
	seats.On("Reserve", mock.Anything, "seat-missing").
		Return(nil, fmt.Errorf("seat seat-missing: %w", apperrors.ErrNotFound))

	svc := NewSeatService(seats)

	_, err := svc.Reserve(context.Background(), "seat-missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
