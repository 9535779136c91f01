package service

import (
	"strings"

	"github.com/google/uuid"
)

// Public identifiers are short prefixed codes rather than raw UUIDs, so they
// survive being read over the phone at a check-in desk.

func newBookingID() string {
	return "BK-" + shortCode(8)
}

func newPassengerID() string {
	return "P-" + shortCode(8)
}

func newPaymentID() string {
	return "PAY-" + shortCode(8)
}

func newDiscountID() string {
	return "DISC" + shortCode(6)
}

func newFlightID() string {
	return "FL-" + shortCode(8)
}

func shortCode(n int) string {
	code := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return code[:n]
}
