package models

import "time"

// NATS Event Types
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingExpired   = "booking.expired"
	EventPaymentRecorded  = "payment.recorded"
	EventPaymentFailed    = "payment.failed"
	EventLoyaltyAccrued   = "loyalty.accrued"
)

// BookingCreatedEvent represents a booking creation event
type BookingCreatedEvent struct {
	BookingID  string    `json:"booking_id"`
	FlightID   string    `json:"flight_id"`
	UserID     string    `json:"user_id"`
	TotalPrice int64     `json:"total_price"`
	Seats      []string  `json:"seats"`
	Timestamp  time.Time `json:"timestamp"`
}

// BookingConfirmedEvent represents a booking reaching Confirmed after payment
type BookingConfirmedEvent struct {
	BookingID string    `json:"booking_id"`
	PaymentID string    `json:"payment_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingCancelledEvent represents a booking cancellation event
type BookingCancelledEvent struct {
	BookingID     string    `json:"booking_id"`
	FlightID      string    `json:"flight_id"`
	SeatsReleased int       `json:"seats_released"`
	Reason        string    `json:"reason"`
	Timestamp     time.Time `json:"timestamp"`
}

// BookingExpiredEvent represents an unpaid booking cancelled by the expiration job
type BookingExpiredEvent struct {
	BookingID string    `json:"booking_id"`
	FlightID  string    `json:"flight_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// PaymentRecordedEvent represents a payment recorded against a booking
type PaymentRecordedEvent struct {
	PaymentID string        `json:"payment_id"`
	BookingID string        `json:"booking_id"`
	Amount    int64         `json:"amount"`
	Status    PaymentStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}

// PaymentFailedEvent represents a payment moving to Failed
type PaymentFailedEvent struct {
	PaymentID string    `json:"payment_id"`
	BookingID string    `json:"booking_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// LoyaltyAccruedEvent represents points credited after a confirmed booking
type LoyaltyAccruedEvent struct {
	UserID    string    `json:"user_id"`
	BookingID string    `json:"booking_id"`
	Points    int       `json:"points"`
	Timestamp time.Time `json:"timestamp"`
}
