package service

import (
	"context"
	"time"

	"skybook/internal/models"

	"github.com/stretchr/testify/mock"
)

// Mock структуры

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Create(ctx context.Context, booking *models.Booking, passengers []models.Passenger, basePrice int64) error {
	args := m.Called(ctx, booking, passengers, basePrice)
	return args.Error(0)
}

func (m *MockBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingStore) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingStore) UpdateContact(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.Booking, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingStore) UpdateStatusConditional(ctx context.Context, id string, from, to models.BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockBookingStore) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingStore) ApplyDiscount(ctx context.Context, bookingID string, discount *models.Discount) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, discount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingStore) AddPassenger(ctx context.Context, bookingID string, passenger *models.Passenger, basePrice int64) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, passenger, basePrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingStore) RemovePassenger(ctx context.Context, bookingID, passengerID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingStore) ListExpiredPending(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockSeatStore struct {
	mock.Mock
}

func (m *MockSeatStore) GetByID(ctx context.Context, id string) (*models.Seat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seat), args.Error(1)
}

func (m *MockSeatStore) ListByFlight(ctx context.Context, flightID string, status *models.SeatStatus, class *string) ([]models.Seat, error) {
	args := m.Called(ctx, flightID, status, class)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Seat), args.Error(1)
}

func (m *MockSeatStore) Reserve(ctx context.Context, seatID string) (*models.Seat, error) {
	args := m.Called(ctx, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seat), args.Error(1)
}

func (m *MockSeatStore) Release(ctx context.Context, seatID string) (*models.Seat, error) {
	args := m.Called(ctx, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seat), args.Error(1)
}

func (m *MockSeatStore) MarkUnavailable(ctx context.Context, seatID string) (*models.Seat, error) {
	args := m.Called(ctx, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seat), args.Error(1)
}

type MockFlightStore struct {
	mock.Mock
}

func (m *MockFlightStore) GetByID(ctx context.Context, id string) (*models.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightStore) List(ctx context.Context) ([]models.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightStore) CreateWithSeats(ctx context.Context, flight *models.Flight, rows, seatsPerRow int) error {
	args := m.Called(ctx, flight, rows, seatsPerRow)
	return args.Error(0)
}

type MockPaymentStore struct {
	mock.Mock
}

func (m *MockPaymentStore) Create(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentStore) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentStore) GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentStore) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Payment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

type MockDiscountStore struct {
	mock.Mock
}

func (m *MockDiscountStore) Create(ctx context.Context, discount *models.Discount) error {
	args := m.Called(ctx, discount)
	return args.Error(0)
}

func (m *MockDiscountStore) GetByID(ctx context.Context, id string) (*models.Discount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Discount), args.Error(1)
}

func (m *MockDiscountStore) ListAvailableForPoints(ctx context.Context, points int) ([]models.Discount, error) {
	args := m.Called(ctx, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Discount), args.Error(1)
}

type MockLoyaltyStore struct {
	mock.Mock
}

func (m *MockLoyaltyStore) GetAccount(ctx context.Context, userID string) (*models.LoyaltyAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoyaltyAccount), args.Error(1)
}

func (m *MockLoyaltyStore) Accrue(ctx context.Context, userID string, points int, expiresAt time.Time, reason, bookingID string) (*models.LoyaltyAccount, error) {
	args := m.Called(ctx, userID, points, expiresAt, reason, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoyaltyAccount), args.Error(1)
}

func (m *MockLoyaltyStore) Redeem(ctx context.Context, userID string, points int, reason, bookingID string) (*models.LoyaltyAccount, error) {
	args := m.Called(ctx, userID, points, reason, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoyaltyAccount), args.Error(1)
}

func (m *MockLoyaltyStore) History(ctx context.Context, userID string) ([]models.LoyaltyEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LoyaltyEntry), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(subject string, data interface{}) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) GetFlights(ctx context.Context) ([]models.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockCatalogCache) SetFlights(ctx context.Context, flights []models.Flight, ttl time.Duration) error {
	args := m.Called(ctx, flights, ttl)
	return args.Error(0)
}

func (m *MockCatalogCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockFlightSearcher struct {
	mock.Mock
}

func (m *MockFlightSearcher) Search(ctx context.Context, origin, destination, date string, page, pageSize int) ([]models.Flight, error) {
	args := m.Called(ctx, origin, destination, date, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightSearcher) IndexFlight(ctx context.Context, flight *models.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightSearcher) DeleteFlight(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDedupCache struct {
	mock.Mock
}

func (m *MockDedupCache) ReserveDedup(ctx context.Context, userID, flightID, bookingID string, window time.Duration) (bool, error) {
	args := m.Called(ctx, userID, flightID, bookingID, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockDedupCache) LookupDedup(ctx context.Context, userID, flightID string) (string, error) {
	args := m.Called(ctx, userID, flightID)
	return args.String(0), args.Error(1)
}

func (m *MockDedupCache) ClearDedup(ctx context.Context, userID, flightID string) error {
	args := m.Called(ctx, userID, flightID)
	return args.Error(0)
}
