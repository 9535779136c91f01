package integration

import (
	"testing"

	"skybook/internal/models"
)

const (
	APIBaseURL = "http://localhost:8081"

	// Credentials of the users created by cmd/seed
	TestUserEmail    = "somchai@example.com"
	TestUserPassword = "password123"
	TestUserID       = "U-DEMO0001"

	SecondUserEmail = "malee@example.com"
	SecondUserID    = "U-DEMO0002"
)

// FlightForTest returns the i-th seeded flight. Each test books on its own
// flight so the dedup window never hands one test another test's booking.
func FlightForTest(t *testing.T, flights []models.Flight, i int) models.Flight {
	if len(flights) <= i {
		t.Skipf("Need at least %d seeded flights, have %d", i+1, len(flights))
	}
	return flights[i]
}

// FindAvailableSeat finds an available seat from the list
func FindAvailableSeat(seats []models.Seat) *models.Seat {
	for _, seat := range seats {
		if seat.Status == models.SeatAvailable {
			return &seat
		}
	}
	return nil
}

// AssertSeatStatus verifies that a seat has the expected status
func AssertSeatStatus(t *testing.T, seats []models.Seat, seatID string, expected models.SeatStatus) {
	for _, seat := range seats {
		if seat.ID == seatID {
			if seat.Status != expected {
				t.Fatalf("Seat %s has status '%s', expected '%s'", seatID, seat.Status, expected)
			}
			return
		}
	}
	t.Fatalf("Seat with ID %s not found in seats list", seatID)
}

// AssertBookingExists checks if a booking exists in the list
func AssertBookingExists(t *testing.T, bookings []models.Booking, bookingID string) {
	for _, booking := range bookings {
		if booking.ID == bookingID {
			return
		}
	}
	t.Fatalf("Booking with ID %s not found in bookings list", bookingID)
}

// LogTestStep logs a test step for better debugging
func LogTestStep(t *testing.T, step string, args ...interface{}) {
	t.Logf("🔹 "+step, args...)
}

// LogTestResult logs a test result
func LogTestResult(t *testing.T, result string, args ...interface{}) {
	t.Logf("✅ "+result, args...)
}
