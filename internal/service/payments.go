package service

import (
	"context"
	"fmt"
	"time"

	apperrors "skybook/internal/errors"
	"skybook/internal/logger"
	"skybook/internal/metrics"
	"skybook/internal/models"
)

const (
	defaultPaymentMethod = "Online Payment"

	// One point per 10 currency units paid (prices are in cents).
	loyaltyAccrualDivisor = 1000

	loyaltyExpiryTerm = 365 * 24 * time.Hour
)

// PaymentService records payments and drives the Pending -> Confirmed
// transition. Confirmation is sticky: once a booking is Confirmed, later
// payment status changes never demote it.
type PaymentService struct {
	payments PaymentStore
	bookings BookingStore
	loyalty  LoyaltyStore
	nats     Publisher
}

func NewPaymentService(payments PaymentStore, bookings BookingStore, loyalty LoyaltyStore, nats Publisher) *PaymentService {
	return &PaymentService{
		payments: payments,
		bookings: bookings,
		loyalty:  loyalty,
		nats:     nats,
	}
}

// Create records the at-most-one payment for a booking. Amount defaults to
// the booking's current total, method to "Online Payment", status to
// Completed. A Completed payment confirms the booking and accrues loyalty
// points.
func (s *PaymentService) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingCancelled {
		return nil, fmt.Errorf("booking %s is cancelled: %w", booking.ID, apperrors.ErrInvalidStateTransition)
	}

	amount := booking.TotalPrice
	if req.Amount != nil {
		amount = *req.Amount
	}

	method := req.Method
	if method == "" {
		method = defaultPaymentMethod
	}

	status := models.PaymentCompleted
	if req.Status != nil {
		status = *req.Status
	}

	payment := &models.Payment{
		ID:        newPaymentID(),
		BookingID: booking.ID,
		Amount:    amount,
		Status:    status,
		Method:    method,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues(string(payment.Status)).Inc()

	event := models.PaymentRecordedEvent{
		PaymentID: payment.ID,
		BookingID: payment.BookingID,
		Amount:    payment.Amount,
		Status:    payment.Status,
		Timestamp: time.Now(),
	}
	if err := s.nats.Publish(models.EventPaymentRecorded, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish payment recorded event",
			"error", err, "payment_id", payment.ID)
	}

	if payment.Status == models.PaymentCompleted {
		s.confirmBooking(ctx, booking, payment)
	}

	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, id string) (*models.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *PaymentService) GetByBooking(ctx context.Context, bookingID string) (*models.Payment, error) {
	return s.payments.GetByBookingID(ctx, bookingID)
}

// UpdateStatus moves a payment to a new status. Completed confirms the
// booking if it is still Pending; Failed never demotes a Confirmed booking.
func (s *PaymentService) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Payment, error) {
	payment, err := s.payments.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	switch status {
	case models.PaymentCompleted:
		booking, err := s.bookings.GetByID(ctx, payment.BookingID)
		if err != nil {
			return nil, err
		}
		s.confirmBooking(ctx, booking, payment)

	case models.PaymentFailed:
		event := models.PaymentFailedEvent{
			PaymentID: payment.ID,
			BookingID: payment.BookingID,
			Reason:    "Payment marked failed",
			Timestamp: time.Now(),
		}
		if err := s.nats.Publish(models.EventPaymentFailed, event); err != nil {
			logger.WithContext(ctx).Error("Failed to publish payment failed event",
				"error", err, "payment_id", payment.ID)
		}
	}

	return payment, nil
}

// confirmBooking flips Pending -> Confirmed and accrues points. Losing the
// conditional update means the booking is already Confirmed or Cancelled;
// neither is an error here.
func (s *PaymentService) confirmBooking(ctx context.Context, booking *models.Booking, payment *models.Payment) {
	err := s.bookings.UpdateStatusConditional(ctx, booking.ID, models.BookingPending, models.BookingConfirmed)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrInvalidStateTransition) {
			logger.WithContext(ctx).Error("Failed to confirm booking after payment",
				"error", err, "booking_id", booking.ID, "payment_id", payment.ID)
		}
		return
	}

	event := models.BookingConfirmedEvent{
		BookingID: booking.ID,
		PaymentID: payment.ID,
		UserID:    booking.UserID,
		Timestamp: time.Now(),
	}
	if err := s.nats.Publish(models.EventBookingConfirmed, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking confirmed event",
			"error", err, "booking_id", booking.ID)
	}

	points := int(payment.Amount / loyaltyAccrualDivisor)
	if points <= 0 {
		return
	}

	_, err = s.loyalty.Accrue(ctx, booking.UserID, points, time.Now().Add(loyaltyExpiryTerm), "Booking payment", booking.ID)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to accrue loyalty points",
			"error", err, "booking_id", booking.ID, "user_id", booking.UserID)
		return
	}

	accrued := models.LoyaltyAccruedEvent{
		UserID:    booking.UserID,
		BookingID: booking.ID,
		Points:    points,
		Timestamp: time.Now(),
	}
	if err := s.nats.Publish(models.EventLoyaltyAccrued, accrued); err != nil {
		logger.WithContext(ctx).Error("Failed to publish loyalty accrued event",
			"error", err, "booking_id", booking.ID)
	}
}
