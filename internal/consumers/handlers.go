package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"skybook/internal/models"
	"skybook/internal/repository"

	"github.com/nats-io/stan.go"
)

// Handlers react to domain events after the fact. Every state change has
// already been committed by the API; these are notification and bookkeeping
// side effects only, so failures here never touch bookings or seats.
type Handlers struct {
	repos *repository.Repositories
}

func NewHandlers(repos *repository.Repositories) *Handlers {
	return &Handlers{repos: repos}
}

func (h *Handlers) HandleBookingCreated(m *stan.Msg) {
	var event models.BookingCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking created event", "error", err)
		return
	}

	slog.Info("Booking created",
		"booking_id", event.BookingID,
		"flight_id", event.FlightID,
		"user_id", event.UserID,
		"seats", len(event.Seats),
		"total_price", event.TotalPrice)

	// TODO: send the booking summary email once the notification gateway
	// config lands.

	m.Ack()
}

func (h *Handlers) HandleBookingConfirmed(m *stan.Msg) {
	var event models.BookingConfirmedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking confirmed event", "error", err)
		return
	}

	ctx := context.Background()
	booking, err := h.repos.Bookings.GetByID(ctx, event.BookingID)
	if err != nil {
		slog.Error("Failed to load confirmed booking", "booking_id", event.BookingID, "error", err)
		return
	}

	slog.Info("Booking confirmed, itinerary ready",
		"booking_id", booking.ID,
		"user_id", booking.UserID,
		"contact_email", booking.ContactEmail,
		"passengers", len(booking.Passengers))

	m.Ack()
}

func (h *Handlers) HandleBookingCancelled(m *stan.Msg) {
	var event models.BookingCancelledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking cancelled event", "error", err)
		return
	}

	slog.Info("Booking cancelled",
		"booking_id", event.BookingID,
		"flight_id", event.FlightID,
		"seats_released", event.SeatsReleased,
		"reason", event.Reason)

	m.Ack()
}

func (h *Handlers) HandleBookingExpired(m *stan.Msg) {
	var event models.BookingExpiredEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking expired event", "error", err)
		return
	}

	slog.Info("Booking expired without payment",
		"booking_id", event.BookingID,
		"flight_id", event.FlightID)

	m.Ack()
}

func (h *Handlers) HandlePaymentRecorded(m *stan.Msg) {
	var event models.PaymentRecordedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal payment recorded event", "error", err)
		return
	}

	slog.Info("Payment recorded",
		"payment_id", event.PaymentID,
		"booking_id", event.BookingID,
		"amount", event.Amount,
		"status", event.Status)

	m.Ack()
}

func (h *Handlers) HandlePaymentFailed(m *stan.Msg) {
	var event models.PaymentFailedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal payment failed event", "error", err)
		return
	}

	slog.Warn("Payment failed",
		"payment_id", event.PaymentID,
		"booking_id", event.BookingID,
		"reason", event.Reason)

	m.Ack()
}

func (h *Handlers) HandleLoyaltyAccrued(m *stan.Msg) {
	var event models.LoyaltyAccruedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal loyalty accrued event", "error", err)
		return
	}

	slog.Info("Loyalty points accrued",
		"user_id", event.UserID,
		"booking_id", event.BookingID,
		"points", event.Points)

	m.Ack()
}
