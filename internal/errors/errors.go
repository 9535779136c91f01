package errors

import "errors"

// Domain error kinds. Services wrap these with fmt.Errorf("...: %w", err),
// handlers map them to HTTP status codes with errors.Is.

var ErrNotFound = errors.New("resource not found")
var ErrSeatUnavailable = errors.New("seat is not available")
var ErrInvalidStateTransition = errors.New("invalid state transition")
var ErrDiscountAlreadyApplied = errors.New("discount already applied to this booking")
var ErrDiscountExpired = errors.New("discount has expired")
var ErrInsufficientPoints = errors.New("insufficient loyalty points")
var ErrPaymentExists = errors.New("payment already exists for this booking")

var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")

// Is re-exports errors.Is so callers importing this package under an alias
// don't need the standard library package as well.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
