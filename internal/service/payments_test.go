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

func TestCreatePayment_DefaultsToFullPriceCompleted(t *testing.T) {
	payments := new(MockPaymentStore)
	bookings := new(MockBookingStore)
	loyalty := new(MockLoyaltyStore)
	nats := new(MockPublisher)

	booking := &models.Booking{ID: "BK-1", UserID: "U-1", Status: models.BookingPending, TotalPrice: 250000}
	bookings.On("GetByID", mock.Anything, "BK-1").Return(booking, nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
		return p.BookingID == "BK-1" &&
			p.Amount == 250000 &&
			p.Status == models.PaymentCompleted &&
			p.Method == "Online Payment"
	})).Return(nil)
	bookings.On("UpdateStatusConditional", mock.Anything, "BK-1", models.BookingPending, models.BookingConfirmed).Return(nil)
	loyalty.On("Accrue", mock.Anything, "U-1", 250, mock.Anything, "Booking payment", "BK-1").
		Return(&models.LoyaltyAccount{UserID: "U-1", Balance: 250}, nil)
	nats.On("Publish", mock.Anything, mock.Anything).Return(nil)

	svc := NewPaymentService(payments, bookings, loyalty, nats)

	payment, err := svc.Create(context.Background(), &models.CreatePaymentRequest{BookingID: "BK-1"})

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	payments.AssertExpectations(t)
	bookings.AssertExpectations(t)
	loyalty.AssertExpectations(t)
}

func TestCreatePayment_CancelledBookingRejected(t *testing.T) {
	payments := new(MockPaymentStore)
	bookings := new(MockBookingStore)

	bookings.On("GetByID", mock.Anything, "BK-1").Return(&models.Booking{
		ID: "BK-1", Status: models.BookingCancelled,
	}, nil)

	svc := NewPaymentService(payments, bookings, new(MockLoyaltyStore), new(MockPublisher))

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{BookingID: "BK-1"})

	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePayment_SecondPaymentRejected(t *testing.T) {
	payments := new(MockPaymentStore)
	bookings := new(MockBookingStore)

	bookings.On("GetByID", mock.Anything, "BK-1").Return(&models.Booking{
		ID: "BK-1", Status: models.BookingPending, TotalPrice: 100000,
	}, nil)
	payments.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("booking BK-1 already has a payment: %w", apperrors.ErrPaymentExists))

	svc := NewPaymentService(payments, bookings, new(MockLoyaltyStore), new(MockPublisher))

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{BookingID: "BK-1"})

	assert.ErrorIs(t, err, apperrors.ErrPaymentExists)
	bookings.AssertNotCalled(t, "UpdateStatusConditional", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePayment_PendingPaymentDoesNotConfirm(t *testing.T) {
	payments := new(MockPaymentStore)
	bookings := new(MockBookingStore)
	nats := new(MockPublisher)

	bookings.On("GetByID", mock.Anything, "BK-1").Return(&models.Booking{
		ID: "BK-1", Status: models.BookingPending, TotalPrice: 100000,
	}, nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	nats.On("Publish", models.EventPaymentRecorded, mock.Anything).Return(nil)

	svc := NewPaymentService(payments, bookings, new(MockLoyaltyStore), nats)

	pending := models.PaymentPending
	payment, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		BookingID: "BK-1",
		Status:    &pending,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentPending, payment.Status)
	bookings.AssertNotCalled(t, "UpdateStatusConditional", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePaymentStatus_FailedNeverDemotesBooking(t *testing.T) {
	payments := new(MockPaymentStore)
	bookings := new(MockBookingStore)
	nats := new(MockPublisher)

	payments.On("UpdateStatus", mock.Anything, "PAY-1", models.PaymentFailed).Return(&models.Payment{
		ID: "PAY-1", BookingID: "BK-1", Status: models.PaymentFailed,
	}, nil)
	nats.On("Publish", models.EventPaymentFailed, mock.Anything).Return(nil)

	svc := NewPaymentService(payments, bookings, new(MockLoyaltyStore), nats)

	payment, err := svc.UpdateStatus(context.Background(), "PAY-1", models.PaymentFailed)

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, payment.Status)
	bookings.AssertNotCalled(t, "UpdateStatusConditional", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestUpdatePaymentStatus_CompletedConfirmationIsSticky(t *testing.T) {
	payments := new(MockPaymentStore)
	bookings := new(MockBookingStore)
	loyalty := new(MockLoyaltyStore)
	nats := new(MockPublisher)

	payments.On("UpdateStatus", mock.Anything, "PAY-1", models.PaymentCompleted).Return(&models.Payment{
		ID: "PAY-1", BookingID: "BK-1", Amount: 100000, Status: models.PaymentCompleted,
	}, nil)
	bookings.On("GetByID", mock.Anything, "BK-1").Return(&models.Booking{
		ID: "BK-1", UserID: "U-1", Status: models.BookingConfirmed,
	}, nil)
	// Booking already Confirmed: the conditional update loses, quietly
	bookings.On("UpdateStatusConditional", mock.Anything, "BK-1", models.BookingPending, models.BookingConfirmed).
		Return(fmt.Errorf("booking BK-1 is not Pending: %w", apperrors.ErrInvalidStateTransition))

	svc := NewPaymentService(payments, bookings, loyalty, nats)

	payment, err := svc.UpdateStatus(context.Background(), "PAY-1", models.PaymentCompleted)

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	// No double accrual, no confirmation event for an already confirmed booking
	loyalty.AssertNotCalled(t, "Accrue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	nats.AssertNotCalled(t, "Publish", models.EventBookingConfirmed, mock.Anything)
}

func TestConfirmBooking_NoAccrualBelowThreshold(t *testing.T) {
	payments := new(MockPaymentStore)
	bookings := new(MockBookingStore)
	loyalty := new(MockLoyaltyStore)
	nats := new(MockPublisher)

	booking := &models.Booking{ID: "BK-1", UserID: "U-1", Status: models.BookingPending, TotalPrice: 500}
	bookings.On("GetByID", mock.Anything, "BK-1").Return(booking, nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	bookings.On("UpdateStatusConditional", mock.Anything, "BK-1", models.BookingPending, models.BookingConfirmed).Return(nil)
	nats.On("Publish", mock.Anything, mock.Anything).Return(nil)

	svc := NewPaymentService(payments, bookings, loyalty, nats)

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{BookingID: "BK-1"})

	assert.NoError(t, err)
	loyalty.AssertNotCalled(t, "Accrue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
