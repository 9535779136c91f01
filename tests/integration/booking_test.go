package integration

import (
	"net/http"
	"testing"

	"skybook/internal/models"
)

// Requires a running API plus seeded data: `go run ./cmd/seed` against a
// fresh database, then `go run ./cmd/api`.

// TestBooking_FullLifecycle walks a booking from creation through payment
// to confirmation
func TestBooking_FullLifecycle(t *testing.T) {
	client := NewTestClient(APIBaseURL)

	LogTestStep(t, "Testing full booking lifecycle: create -> pay -> confirm")

	flight := FlightForTest(t, client.ListFlights(t), 0)

	seats := client.ListSeats(t, flight.ID, "Available")
	seat := FindAvailableSeat(seats)
	if seat == nil {
		t.Skip("No available seats for lifecycle test")
	}

	booking := client.CreateBooking(t, models.CreateBookingRequest{
		UserID:   TestUserID,
		FlightID: flight.ID,
		Passengers: []models.PassengerRequest{
			{FirstName: "Somchai", Surname: "Jaidee", SeatID: seat.ID},
		},
	})
	LogTestResult(t, "Booking %s created with status %s", booking.ID, booking.Status)

	if booking.Status != models.BookingPending {
		t.Fatalf("New booking should be Pending, got %s", booking.Status)
	}
	if booking.TotalPrice != seat.Price {
		t.Fatalf("Expected total price %d, got %d", seat.Price, booking.TotalPrice)
	}

	LogTestStep(t, "Verifying seat %s is now Booked", seat.ID)
	AssertSeatStatus(t, client.ListSeats(t, flight.ID, ""), seat.ID, models.SeatBooked)

	LogTestStep(t, "Recording full payment for booking %s", booking.ID)
	payment := client.CreatePayment(t, models.CreatePaymentRequest{BookingID: booking.ID})

	if payment.Amount != booking.TotalPrice {
		t.Fatalf("Payment should default to full price %d, got %d", booking.TotalPrice, payment.Amount)
	}
	if payment.Status != models.PaymentCompleted {
		t.Fatalf("Payment should default to Completed, got %s", payment.Status)
	}
	LogTestResult(t, "Payment %s recorded for %d", payment.ID, payment.Amount)

	confirmed := client.GetBooking(t, booking.ID)
	if confirmed.Status != models.BookingConfirmed {
		t.Fatalf("Booking should be Confirmed after completed payment, got %s", confirmed.Status)
	}

	status := client.GetPaymentStatus(t, booking.ID)
	if !status.IsPaid {
		t.Fatalf("Payment status should report paid, got %+v", status)
	}

	LogTestResult(t, "Booking %s confirmed and fully paid", booking.ID)
}

// TestBooking_SecondPaymentRejected verifies that a booking accepts at most
// one payment
func TestBooking_SecondPaymentRejected(t *testing.T) {
	client := NewTestClient(APIBaseURL)

	flight := FlightForTest(t, client.ListFlights(t), 1)

	booking := client.CreateBooking(t, models.CreateBookingRequest{
		UserID:   TestUserID,
		FlightID: flight.ID,
		Passengers: []models.PassengerRequest{
			{FirstName: "Malee", Surname: "Srisuk"},
		},
	})

	client.CreatePayment(t, models.CreatePaymentRequest{BookingID: booking.ID})

	LogTestStep(t, "Attempting a second payment for booking %s", booking.ID)
	code := client.TryCreatePayment(t, models.CreatePaymentRequest{BookingID: booking.ID})
	if code != http.StatusConflict {
		t.Fatalf("Second payment should return 409, got %d", code)
	}
	LogTestResult(t, "Second payment rejected with 409")
}

// TestBooking_CancelReleasesSeats verifies cancellation frees the seats
func TestBooking_CancelReleasesSeats(t *testing.T) {
	client := NewTestClient(APIBaseURL)

	flight := FlightForTest(t, client.ListFlights(t), 2)

	seats := client.ListSeats(t, flight.ID, "Available")
	seat := FindAvailableSeat(seats)
	if seat == nil {
		t.Skip("No available seats for cancellation test")
	}

	booking := client.CreateBooking(t, models.CreateBookingRequest{
		UserID:   TestUserID,
		FlightID: flight.ID,
		Passengers: []models.PassengerRequest{
			{FirstName: "Somchai", Surname: "Jaidee", SeatID: seat.ID},
		},
	})
	AssertSeatStatus(t, client.ListSeats(t, flight.ID, ""), seat.ID, models.SeatBooked)

	LogTestStep(t, "Cancelling booking %s", booking.ID)
	client.CancelBooking(t, booking.ID)

	cancelled := client.GetBooking(t, booking.ID)
	if cancelled.Status != models.BookingCancelled {
		t.Fatalf("Booking should be Cancelled, got %s", cancelled.Status)
	}

	AssertSeatStatus(t, client.ListSeats(t, flight.ID, ""), seat.ID, models.SeatAvailable)
	LogTestResult(t, "Seat %s released after cancellation", seat.ID)
}

// TestBooking_ListUserBookings verifies new bookings appear in the user's list
func TestBooking_ListUserBookings(t *testing.T) {
	client := NewTestClient(APIBaseURL)

	flight := FlightForTest(t, client.ListFlights(t), 3)

	booking := client.CreateBooking(t, models.CreateBookingRequest{
		UserID:   TestUserID,
		FlightID: flight.ID,
		Passengers: []models.PassengerRequest{
			{FirstName: "Somchai", Surname: "Jaidee"},
		},
	})

	bookings := client.ListBookings(t)
	AssertBookingExists(t, bookings, booking.ID)
	LogTestResult(t, "Booking %s found in user's list", booking.ID)
}

// TestLoyalty_AccrualAfterPayment verifies points land on the balance once a
// large enough payment confirms a booking
func TestLoyalty_AccrualAfterPayment(t *testing.T) {
	client := NewTestClient(APIBaseURL)

	before := client.GetLoyaltyBalance(t)
	LogTestStep(t, "Balance before payment: %d points", before.Balance)

	flight := FlightForTest(t, client.ListFlights(t), 4)

	booking := client.CreateBooking(t, models.CreateBookingRequest{
		UserID:   TestUserID,
		FlightID: flight.ID,
		Passengers: []models.PassengerRequest{
			{FirstName: "Somchai", Surname: "Jaidee"},
		},
	})
	client.CreatePayment(t, models.CreatePaymentRequest{BookingID: booking.ID})

	expected := before.Balance + int(booking.TotalPrice/1000)
	after := client.GetLoyaltyBalance(t)
	if after.Balance != expected {
		t.Fatalf("Expected balance %d after accrual, got %d", expected, after.Balance)
	}
	LogTestResult(t, "Balance after payment: %d points", after.Balance)
}

// TestBooking_ConcurrentSeatClaim fires two parallel bookings for the same
// seat from two different users: exactly one must win
func TestBooking_ConcurrentSeatClaim(t *testing.T) {
	client1 := NewTestClient(APIBaseURL)
	client2 := NewTestClientAs(APIBaseURL, SecondUserEmail, TestUserPassword)

	flight := FlightForTest(t, client1.ListFlights(t), 5)

	seats := client1.ListSeats(t, flight.ID, "Available")
	seat := FindAvailableSeat(seats)
	if seat == nil {
		t.Skip("No available seats for concurrent claim test")
	}

	LogTestStep(t, "Two users racing for seat %s on flight %s", seat.ID, flight.ID)

	type attempt struct {
		code int
		err  error
	}
	results := make(chan attempt, 2)

	race := func(c *TestClient, userID string) {
		code, err := c.TryCreateBooking(models.CreateBookingRequest{
			UserID:   userID,
			FlightID: flight.ID,
			Passengers: []models.PassengerRequest{
				{FirstName: "Race", Surname: "Runner", SeatID: seat.ID},
			},
		})
		results <- attempt{code: code, err: err}
	}

	go race(client1, TestUserID)
	go race(client2, SecondUserID)

	first := <-results
	second := <-results
	if first.err != nil || second.err != nil {
		t.Fatalf("Request failed: %v / %v", first.err, second.err)
	}

	codes := []int{first.code, second.code}
	created, conflicted := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		}
	}

	if created != 1 || conflicted != 1 {
		t.Fatalf("Expected exactly one 201 and one 409, got %v", codes)
	}

	AssertSeatStatus(t, client1.ListSeats(t, flight.ID, ""), seat.ID, models.SeatBooked)
	LogTestResult(t, "Seat %s claimed exactly once under concurrency", seat.ID)
}
