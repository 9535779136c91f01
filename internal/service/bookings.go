package service

import (
	"context"
	"fmt"
	"time"

	"skybook/internal/cache"
	apperrors "skybook/internal/errors"
	"skybook/internal/logger"
	"skybook/internal/metrics"
	"skybook/internal/models"
)

// BookingService orchestrates the booking lifecycle. Everything that must be
// atomic (seat reservation, cancellation, repricing) happens inside the
// store; this layer adds dedup, validation, events, and metrics.
type BookingService struct {
	bookings    BookingStore
	flights     FlightStore
	payments    PaymentStore
	users       UserStore
	discounts   *DiscountService
	dedup       DedupCache
	nats        Publisher
	dedupWindow time.Duration
}

func NewBookingService(bookings BookingStore, flights FlightStore, payments PaymentStore, users UserStore, discounts *DiscountService, dedup DedupCache, nats Publisher, dedupWindow time.Duration) *BookingService {
	return &BookingService{
		bookings:    bookings,
		flights:     flights,
		payments:    payments,
		users:       users,
		discounts:   discounts,
		dedup:       dedup,
		nats:        nats,
		dedupWindow: dedupWindow,
	}
}

// Create books seats for all passengers or none of them. A repeated request
// for the same (user, flight) inside the dedup window returns the booking
// already made instead of creating a second one.
func (s *BookingService) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	flight, err := s.flights.GetByID(ctx, req.FlightID)
	if err != nil {
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	bookingID := newBookingID()

	claimed, err := s.dedup.ReserveDedup(ctx, req.UserID, req.FlightID, bookingID, s.dedupWindow)
	if err != nil {
		// Dedup is best effort: a Redis outage must not block bookings.
		logger.WithContext(ctx).Error("Dedup reservation failed, proceeding without it",
			"error", err, "user_id", req.UserID, "flight_id", req.FlightID)
		claimed = true
	}
	if !claimed {
		existingID, err := s.dedup.LookupDedup(ctx, req.UserID, req.FlightID)
		if err == nil {
			if existing, getErr := s.bookings.GetByID(ctx, existingID); getErr == nil {
				logger.WithContext(ctx).Info("Duplicate booking request served from dedup window",
					"booking_id", existingID, "user_id", req.UserID, "flight_id", req.FlightID)
				return existing, nil
			}
		}
		if err != nil && err != cache.ErrCacheMiss {
			return nil, fmt.Errorf("dedup lookup failed: %w", err)
		}
		// The slot holder vanished; fall through and book normally.
	}

	bookingDate := time.Now()
	if req.BookingDate != nil {
		bookingDate = *req.BookingDate
	}

	booking := &models.Booking{
		ID:           bookingID,
		UserID:       req.UserID,
		FlightID:     req.FlightID,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		BookingDate:  bookingDate,
	}

	passengers := make([]models.Passenger, len(req.Passengers))
	for i, p := range req.Passengers {
		passengers[i] = models.Passenger{
			ID:        newPassengerID(),
			FirstName: p.FirstName,
			Surname:   p.Surname,
			SeatID:    p.SeatID,
		}
	}

	if err := s.bookings.Create(ctx, booking, passengers, flight.BasePrice); err != nil {
		if clearErr := s.dedup.ClearDedup(ctx, req.UserID, req.FlightID); clearErr != nil {
			logger.WithContext(ctx).Error("Failed to clear dedup slot after booking failure",
				"error", clearErr, "booking_id", bookingID)
		}
		if apperrors.Is(err, apperrors.ErrSeatUnavailable) {
			metrics.SeatConflicts.Inc()
		}
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	booking.Passengers = passengers

	seats := make([]string, 0, len(passengers))
	for _, p := range passengers {
		if p.SeatID != "" {
			seats = append(seats, p.SeatID)
		}
	}

	event := models.BookingCreatedEvent{
		BookingID:  booking.ID,
		FlightID:   booking.FlightID,
		UserID:     booking.UserID,
		TotalPrice: booking.TotalPrice,
		Seats:      seats,
		Timestamp:  time.Now(),
	}
	if err := s.nats.Publish(models.EventBookingCreated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking created event",
			"error", err, "booking_id", booking.ID)
	}

	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// Update patches contact details and booking date. Status and price are
// only reachable through their dedicated operations.
func (s *BookingService) Update(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.Booking, error) {
	return s.bookings.UpdateContact(ctx, id, req)
}

// UpdateStatus applies an explicit status change. Only Pending -> Confirmed
// and the cancellation paths are legal; Cancelled is terminal.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	switch status {
	case models.BookingConfirmed:
		if err := s.bookings.UpdateStatusConditional(ctx, id, models.BookingPending, models.BookingConfirmed); err != nil {
			return nil, err
		}
		return s.bookings.GetByID(ctx, id)
	case models.BookingCancelled:
		return s.Cancel(ctx, id, "Cancelled by status update")
	case models.BookingPending:
		return nil, fmt.Errorf("cannot return a booking to Pending: %w", apperrors.ErrInvalidStateTransition)
	default:
		return nil, fmt.Errorf("unknown booking status %q: %w", status, apperrors.ErrInvalidStateTransition)
	}
}

// Cancel releases the booking's seats and marks it Cancelled atomically.
// Earned loyalty points are not clawed back.
func (s *BookingService) Cancel(ctx context.Context, id, reason string) (*models.Booking, error) {
	booking, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.dedup.ClearDedup(ctx, booking.UserID, booking.FlightID); err != nil {
		logger.WithContext(ctx).Error("Failed to clear dedup slot after cancellation",
			"error", err, "booking_id", id)
	}

	metrics.BookingsCancelled.Inc()

	released := 0
	for _, p := range booking.Passengers {
		if p.SeatID != "" {
			released++
		}
	}

	event := models.BookingCancelledEvent{
		BookingID:     booking.ID,
		FlightID:      booking.FlightID,
		SeatsReleased: released,
		Reason:        reason,
		Timestamp:     time.Now(),
	}
	if err := s.nats.Publish(models.EventBookingCancelled, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking cancelled event",
			"error", err, "booking_id", booking.ID)
	}

	return booking, nil
}

// ApplyDiscount validates the discount and applies it to a Pending booking.
// A discount lowers the price at most once per booking; the floor is zero.
func (s *BookingService) ApplyDiscount(ctx context.Context, bookingID, discountID string) (*models.Booking, error) {
	discount, err := s.discounts.Validate(ctx, discountID, time.Now())
	if err != nil {
		return nil, err
	}

	return s.bookings.ApplyDiscount(ctx, bookingID, discount)
}

func (s *BookingService) AddPassenger(ctx context.Context, bookingID string, req *models.AddPassengerRequest) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, booking.FlightID)
	if err != nil {
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	passenger := &models.Passenger{
		ID:        newPassengerID(),
		FirstName: req.FirstName,
		Surname:   req.Surname,
		SeatID:    req.SeatID,
	}

	return s.bookings.AddPassenger(ctx, bookingID, passenger, flight.BasePrice)
}

func (s *BookingService) RemovePassenger(ctx context.Context, bookingID, passengerID string) (*models.Booking, error) {
	return s.bookings.RemovePassenger(ctx, bookingID, passengerID)
}

// GetPaymentStatus reconciles the recorded payment against the booking's
// current price. A booking with no payment yet reports zero paid.
func (s *BookingService) GetPaymentStatus(ctx context.Context, bookingID string) (*models.PaymentStatusResponse, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := &models.PaymentStatusResponse{
		BookingID:     booking.ID,
		BookingStatus: booking.Status,
		TotalPrice:    booking.TotalPrice,
	}

	payment, err := s.payments.GetByBookingID(ctx, bookingID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return resp, nil
		}
		return nil, err
	}

	resp.Payment = payment
	if payment.Status == models.PaymentCompleted {
		resp.TotalPaid = payment.Amount
	}
	resp.IsPaid = resp.TotalPaid >= booking.TotalPrice

	return resp, nil
}

// ExpirePending cancels unpaid Pending bookings older than the cutoff and
// returns how many were expired. Bookings that got paid or cancelled between
// the listing and the cancel attempt are skipped, not failed.
func (s *BookingService) ExpirePending(ctx context.Context, maxAge time.Duration) (int, error) {
	expired, err := s.bookings.ListExpiredPending(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, booking := range expired {
		if _, err := s.Cancel(ctx, booking.ID, "Payment window expired"); err != nil {
			if apperrors.Is(err, apperrors.ErrInvalidStateTransition) || apperrors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			logger.WithContext(ctx).Error("Failed to expire booking",
				"error", err, "booking_id", booking.ID)
			continue
		}

		event := models.BookingExpiredEvent{
			BookingID: booking.ID,
			FlightID:  booking.FlightID,
			Reason:    "Payment window expired",
			Timestamp: time.Now(),
		}
		if err := s.nats.Publish(models.EventBookingExpired, event); err != nil {
			logger.WithContext(ctx).Error("Failed to publish booking expired event",
				"error", err, "booking_id", booking.ID)
		}
		count++
	}

	return count, nil
}
