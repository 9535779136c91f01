package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "skybook/internal/errors"
	"skybook/internal/models"
	"skybook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Lightweight fakes: canned responses per store, no database.

type fakeBookingStore struct {
	booking *models.Booking
	err     error
}

func (f *fakeBookingStore) Create(ctx context.Context, booking *models.Booking, passengers []models.Passenger, basePrice int64) error {
	if f.err != nil {
		return f.err
	}
	booking.Status = models.BookingPending
	booking.TotalPrice = basePrice * int64(len(passengers))
	booking.Passengers = passengers
	return nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeBookingStore) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.Booking{*f.booking}, nil
}

func (f *fakeBookingStore) UpdateContact(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeBookingStore) UpdateStatusConditional(ctx context.Context, id string, from, to models.BookingStatus) error {
	return f.err
}

func (f *fakeBookingStore) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeBookingStore) ApplyDiscount(ctx context.Context, bookingID string, discount *models.Discount) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeBookingStore) AddPassenger(ctx context.Context, bookingID string, passenger *models.Passenger, basePrice int64) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeBookingStore) RemovePassenger(ctx context.Context, bookingID, passengerID string) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeBookingStore) ListExpiredPending(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	return nil, f.err
}

type fakeUserStore struct{}

func (fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return &models.User{ID: id, IsActive: true}, nil
}

type fakeFlightStore struct {
	flight *models.Flight
}

func (f *fakeFlightStore) GetByID(ctx context.Context, id string) (*models.Flight, error) {
	if f.flight == nil {
		return nil, fmt.Errorf("flight %s: %w", id, apperrors.ErrNotFound)
	}
	return f.flight, nil
}

func (f *fakeFlightStore) List(ctx context.Context) ([]models.Flight, error) {
	return nil, nil
}

func (f *fakeFlightStore) CreateWithSeats(ctx context.Context, flight *models.Flight, rows, seatsPerRow int) error {
	return nil
}

type fakePaymentStore struct {
	payment *models.Payment
	err     error
}

func (f *fakePaymentStore) Create(ctx context.Context, payment *models.Payment) error { return f.err }

func (f *fakePaymentStore) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	return f.payment, f.err
}

func (f *fakePaymentStore) GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	if f.payment == nil {
		return nil, fmt.Errorf("payment for booking %s: %w", bookingID, apperrors.ErrNotFound)
	}
	return f.payment, f.err
}

func (f *fakePaymentStore) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Payment, error) {
	return f.payment, f.err
}

type noopDedup struct{}

func (noopDedup) ReserveDedup(ctx context.Context, userID, flightID, bookingID string, window time.Duration) (bool, error) {
	return true, nil
}

func (noopDedup) LookupDedup(ctx context.Context, userID, flightID string) (string, error) {
	return "", nil
}

func (noopDedup) ClearDedup(ctx context.Context, userID, flightID string) error { return nil }

type noopPublisher struct{}

func (noopPublisher) Publish(subject string, data interface{}) error { return nil }

type fakeDiscountStore struct{}

func (fakeDiscountStore) Create(ctx context.Context, discount *models.Discount) error { return nil }

func (fakeDiscountStore) GetByID(ctx context.Context, id string) (*models.Discount, error) {
	return nil, fmt.Errorf("discount %s: %w", id, apperrors.ErrNotFound)
}

func (fakeDiscountStore) ListAvailableForPoints(ctx context.Context, points int) ([]models.Discount, error) {
	return nil, nil
}

type fakeLoyaltyStore struct{}

func (fakeLoyaltyStore) GetAccount(ctx context.Context, userID string) (*models.LoyaltyAccount, error) {
	return nil, fmt.Errorf("loyalty account for user %s: %w", userID, apperrors.ErrNotFound)
}

func (fakeLoyaltyStore) Accrue(ctx context.Context, userID string, points int, expiresAt time.Time, reason, bookingID string) (*models.LoyaltyAccount, error) {
	return &models.LoyaltyAccount{UserID: userID, Balance: points}, nil
}

func (fakeLoyaltyStore) Redeem(ctx context.Context, userID string, points int, reason, bookingID string) (*models.LoyaltyAccount, error) {
	return &models.LoyaltyAccount{UserID: userID}, nil
}

func (fakeLoyaltyStore) History(ctx context.Context, userID string) ([]models.LoyaltyEntry, error) {
	return nil, nil
}

func setupRouter(bookings service.BookingStore, flights service.FlightStore, payments service.PaymentStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	discounts := service.NewDiscountService(fakeDiscountStore{}, fakeLoyaltyStore{})
	bookingService := service.NewBookingService(bookings, flights, payments, fakeUserStore{}, discounts, noopDedup{}, noopPublisher{}, 5*time.Minute)

	h := NewHandlers(&service.Services{
		Bookings: bookingService,
	})

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/bookings", h.CreateBooking)
		api.GET("/bookings/:id", h.GetBooking)
		api.PATCH("/bookings/:id/cancel", h.CancelBooking)
		api.GET("/bookings/:id/payment-status", h.GetBookingPaymentStatus)
	}

	return r
}

func TestCreateBooking_Returns201(t *testing.T) {
	flight := &models.Flight{ID: "FL-1", BasePrice: 120000}
	r := setupRouter(&fakeBookingStore{}, &fakeFlightStore{flight: flight}, &fakePaymentStore{})

	reqBody := models.CreateBookingRequest{
		UserID:   "U-1",
		FlightID: "FL-1",
		Passengers: []models.PassengerRequest{
			{FirstName: "Somchai", Surname: "Jaidee"},
		},
	}

	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response models.Booking
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingPending, response.Status)
	assert.Contains(t, response.ID, "BK-")
}

func TestCreateBooking_MissingPassengersReturns400(t *testing.T) {
	r := setupRouter(&fakeBookingStore{}, &fakeFlightStore{}, &fakePaymentStore{})

	jsonBody, _ := json.Marshal(map[string]interface{}{
		"user_id":   "U-1",
		"flight_id": "FL-1",
	})
	req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBooking_UnknownReturns404(t *testing.T) {
	store := &fakeBookingStore{err: fmt.Errorf("booking BK-MISSING: %w", apperrors.ErrNotFound)}
	r := setupRouter(store, &fakeFlightStore{}, &fakePaymentStore{})

	req, _ := http.NewRequest("GET", "/api/bookings/BK-MISSING", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelBooking_AlreadyCancelledReturns409(t *testing.T) {
	store := &fakeBookingStore{err: fmt.Errorf("booking BK-1 is already cancelled: %w", apperrors.ErrInvalidStateTransition)}
	r := setupRouter(store, &fakeFlightStore{}, &fakePaymentStore{})

	req, _ := http.NewRequest("PATCH", "/api/bookings/BK-1/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetBookingPaymentStatus_Unpaid(t *testing.T) {
	store := &fakeBookingStore{booking: &models.Booking{
		ID: "BK-1", Status: models.BookingPending, TotalPrice: 200000,
	}}
	r := setupRouter(store, &fakeFlightStore{}, &fakePaymentStore{})

	req, _ := http.NewRequest("GET", "/api/bookings/BK-1/payment-status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.PaymentStatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.False(t, response.IsPaid)
	assert.Equal(t, int64(200000), response.TotalPrice)
	assert.Nil(t, response.Payment)
}
