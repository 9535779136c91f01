package service

import (
	"context"
	"time"

	"skybook/internal/cache"
	"skybook/internal/config"
	"skybook/internal/messaging"
	"skybook/internal/models"
	"skybook/internal/repository"
	"skybook/internal/search"
)

// Store interfaces kept in this package so the services can be tested
// against mocks without a database.

type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking, passengers []models.Passenger, basePrice int64) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	UpdateContact(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.Booking, error)
	UpdateStatusConditional(ctx context.Context, id string, from, to models.BookingStatus) error
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	ApplyDiscount(ctx context.Context, bookingID string, discount *models.Discount) (*models.Booking, error)
	AddPassenger(ctx context.Context, bookingID string, passenger *models.Passenger, basePrice int64) (*models.Booking, error)
	RemovePassenger(ctx context.Context, bookingID, passengerID string) (*models.Booking, error)
	ListExpiredPending(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type FlightStore interface {
	GetByID(ctx context.Context, id string) (*models.Flight, error)
	List(ctx context.Context) ([]models.Flight, error)
	CreateWithSeats(ctx context.Context, flight *models.Flight, rows, seatsPerRow int) error
}

type SeatStore interface {
	GetByID(ctx context.Context, id string) (*models.Seat, error)
	ListByFlight(ctx context.Context, flightID string, status *models.SeatStatus, class *string) ([]models.Seat, error)
	Reserve(ctx context.Context, seatID string) (*models.Seat, error)
	Release(ctx context.Context, seatID string) (*models.Seat, error)
	MarkUnavailable(ctx context.Context, seatID string) (*models.Seat, error)
}

type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Payment, error)
}

type DiscountStore interface {
	Create(ctx context.Context, discount *models.Discount) error
	GetByID(ctx context.Context, id string) (*models.Discount, error)
	ListAvailableForPoints(ctx context.Context, points int) ([]models.Discount, error)
}

type LoyaltyStore interface {
	GetAccount(ctx context.Context, userID string) (*models.LoyaltyAccount, error)
	Accrue(ctx context.Context, userID string, points int, expiresAt time.Time, reason, bookingID string) (*models.LoyaltyAccount, error)
	Redeem(ctx context.Context, userID string, points int, reason, bookingID string) (*models.LoyaltyAccount, error)
	History(ctx context.Context, userID string) ([]models.LoyaltyEntry, error)
}

type ReportStore interface {
	Dashboard(ctx context.Context) (*models.DashboardResponse, error)
	FlightOccupancy(ctx context.Context) ([]models.FlightOccupancy, error)
}

// Publisher emits domain events; publish failures are logged, never fatal.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// DedupCache backs the duplicate-booking window.
type DedupCache interface {
	ReserveDedup(ctx context.Context, userID, flightID, bookingID string, window time.Duration) (bool, error)
	LookupDedup(ctx context.Context, userID, flightID string) (string, error)
	ClearDedup(ctx context.Context, userID, flightID string) error
}

// CatalogCache backs the flight list read cache.
type CatalogCache interface {
	GetFlights(ctx context.Context) ([]models.Flight, error)
	SetFlights(ctx context.Context, flights []models.Flight, ttl time.Duration) error
	InvalidateFlights(ctx context.Context) error
}

// FlightSearcher is the search-side projection of the flight catalog.
type FlightSearcher interface {
	Search(ctx context.Context, origin, destination, date string, page, pageSize int) ([]models.Flight, error)
	IndexFlight(ctx context.Context, flight *models.Flight) error
	DeleteFlight(ctx context.Context, id string) error
}

type Services struct {
	Bookings  *BookingService
	Payments  *PaymentService
	Discounts *DiscountService
	Loyalty   *LoyaltyService
	Flights   *FlightService
	Seats     *SeatService
	Reports   *ReportService
}

func NewServices(cfg *config.Config, repos *repository.Repositories, redisClient *cache.Client, natsClient *messaging.NATSClient, flightIndex *search.FlightIndex) *Services {
	discountService := NewDiscountService(repos.Discounts, repos.Loyalty)
	bookingService := NewBookingService(repos.Bookings, repos.Flights, repos.Payments, repos.Users, discountService, redisClient, natsClient, cfg.BookingDedupWindow)
	paymentService := NewPaymentService(repos.Payments, repos.Bookings, repos.Loyalty, natsClient)
	loyaltyService := NewLoyaltyService(repos.Loyalty)
	flightService := NewFlightService(repos.Flights, redisClient, flightIndex, cfg.FlightCacheTTL)
	seatService := NewSeatService(repos.Seats)
	reportService := NewReportService(repos.Reports)

	return &Services{
		Bookings:  bookingService,
		Payments:  paymentService,
		Discounts: discountService,
		Loyalty:   loyaltyService,
		Flights:   flightService,
		Seats:     seatService,
		Reports:   reportService,
	}
}
