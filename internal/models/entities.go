package models

import (
	"time"
)

// BookingStatus is the lifecycle state of a booking.
// Pending -> Confirmed and Pending/Confirmed -> Cancelled are the only
// legal transitions; Cancelled is terminal.
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

// SeatStatus is the availability state of a single seat.
type SeatStatus string

const (
	SeatAvailable   SeatStatus = "Available"
	SeatReserved    SeatStatus = "Reserved"
	SeatBooked      SeatStatus = "Booked"
	SeatUnavailable SeatStatus = "Unavailable"
)

// PaymentStatus is the state of a recorded payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

// User represents a registered customer. Read-only reference data for the
// booking core; only the auth middleware and seeding touch it.
type User struct {
	ID           string    `json:"user_id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	Surname      string    `json:"surname" db:"surname"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

// Flight represents one scheduled flight. Read-only reference data for the
// booking core; provisioning happens through the admin catalog endpoints.
type Flight struct {
	ID            string    `json:"flight_id" db:"id"`
	FlightNumber  string    `json:"flight_number" db:"flight_number"`
	Origin        string    `json:"origin" db:"origin"`
	Destination   string    `json:"destination" db:"destination"`
	DepartureTime time.Time `json:"departure_time" db:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time" db:"arrival_time"`
	BasePrice     int64     `json:"base_price" db:"base_price"`
	TotalSeats    int       `json:"total_seats" db:"total_seats"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Seat represents one sellable seat on one flight. All prices are in cents.
type Seat struct {
	ID         string     `json:"id" db:"id"`
	FlightID   string     `json:"flight_id" db:"flight_id"`
	SeatNumber string     `json:"seat_number" db:"seat_number"`
	Class      string     `json:"class" db:"class"`
	Status     SeatStatus `json:"status" db:"status"`
	Price      int64      `json:"price" db:"price"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// Booking represents one reservation for passengers on one flight.
// TotalPrice always equals the allocated seat prices minus the sum of
// applied discount values, floored at zero.
type Booking struct {
	ID           string        `json:"booking_id" db:"id"`
	UserID       string        `json:"user_id" db:"user_id"`
	FlightID     string        `json:"flight_id" db:"flight_id"`
	Status       BookingStatus `json:"status" db:"status"`
	TotalPrice   int64         `json:"total_price" db:"total_price"`
	ContactEmail string        `json:"contact_email" db:"contact_email"`
	ContactPhone string        `json:"contact_phone" db:"contact_phone"`
	BookingDate  time.Time     `json:"booking_date" db:"booking_date"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
	Passengers   []Passenger   `json:"passengers,omitempty"` // Not from the bookings table, filled separately
	Discounts    []Discount    `json:"discounts,omitempty"`  // Not from the bookings table, filled separately
}

// Passenger is one traveler within a booking. SeatID is empty when the
// passenger has no seat assignment.
type Passenger struct {
	ID        string    `json:"passenger_id" db:"id"`
	BookingID string    `json:"booking_id" db:"booking_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	Surname   string    `json:"surname" db:"surname"`
	SeatID    string    `json:"seat_id,omitempty" db:"seat_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Payment is the at-most-one payment recorded against a booking.
type Payment struct {
	ID        string        `json:"payment_id" db:"id"`
	BookingID string        `json:"booking_id" db:"booking_id"`
	Amount    int64         `json:"amount" db:"amount"`
	Status    PaymentStatus `json:"status" db:"status"`
	Method    string        `json:"method" db:"method"`
	PaidAt    time.Time     `json:"payment_date" db:"paid_at"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

// Discount is a redeemable price reduction. Shared across bookings through
// the booking_discounts join table; linked to a given booking at most once.
type Discount struct {
	ID             string    `json:"discount_id" db:"id"`
	PointsRequired int       `json:"points_required" db:"points_required"`
	Value          int64     `json:"value" db:"value"`
	ExpiresAt      time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Expired reports whether the discount can no longer be applied.
func (d *Discount) Expired(now time.Time) bool {
	return d.ExpiresAt.Before(now.Truncate(24 * time.Hour))
}

// LoyaltyAccount is a user's point balance. Balance never goes negative.
type LoyaltyAccount struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Balance   int       `json:"balance" db:"balance"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// LoyaltyEntry is one accrual or redemption in the loyalty ledger.
// Kept forever for audit, even when the booking that earned the points
// is later cancelled.
type LoyaltyEntry struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Delta     int       `json:"delta" db:"delta"`
	Reason    string    `json:"reason" db:"reason"`
	BookingID string    `json:"booking_id,omitempty" db:"booking_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
