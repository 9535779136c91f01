package repository

import (
	"skybook/internal/database"
)

type Repositories struct {
	Users     *UserRepository
	Flights   *FlightRepository
	Seats     *SeatRepository
	Bookings  *BookingRepository
	Payments  *PaymentRepository
	Discounts *DiscountRepository
	Loyalty   *LoyaltyRepository
	Reports   *ReportRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db),
		Flights:   NewFlightRepository(db),
		Seats:     NewSeatRepository(db),
		Bookings:  NewBookingRepository(db),
		Payments:  NewPaymentRepository(db),
		Discounts: NewDiscountRepository(db),
		Loyalty:   NewLoyaltyRepository(db),
		Reports:   NewReportRepository(db),
	}
}
