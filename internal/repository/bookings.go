package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"skybook/internal/database"
	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, flight_id, status, total_price, contact_email, contact_phone,
		       booking_date, created_at, updated_at`

func scanBooking(row interface {
	Scan(dest ...interface{}) error
}) (*models.Booking, error) {
	booking := &models.Booking{}
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.FlightID,
		&booking.Status,
		&booking.TotalPrice,
		&booking.ContactEmail,
		&booking.ContactPhone,
		&booking.BookingDate,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	return booking, err
}

// Create inserts a booking together with its passengers and reserves every
// requested seat in one transaction. Seat reservation is a conditional
// update: if any seat is no longer Available the whole transaction rolls
// back and no passenger keeps a seat. Passengers without a seat assignment
// contribute the flight base price to the total.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking, passengers []models.Passenger, basePrice int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	reserveSeat := `
		UPDATE seats
		SET status = 'Booked', updated_at = NOW()
		WHERE id = $1 AND flight_id = $2 AND status = 'Available'
		RETURNING price`

	var totalPrice int64
	for i := range passengers {
		if passengers[i].SeatID == "" {
			totalPrice += basePrice
			continue
		}

		var price int64
		err := tx.QueryRowContext(ctx, reserveSeat, passengers[i].SeatID, booking.FlightID).Scan(&price)
		if err == sql.ErrNoRows {
			return fmt.Errorf("seat %s: %w", passengers[i].SeatID, apperrors.ErrSeatUnavailable)
		}
		if err != nil {
			return err
		}
		totalPrice += price
	}

	insertBooking := `
		INSERT INTO bookings (id, user_id, flight_id, status, total_price, contact_email, contact_phone, booking_date)
		VALUES ($1, $2, $3, 'Pending', $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err = tx.QueryRowContext(ctx, insertBooking,
		booking.ID,
		booking.UserID,
		booking.FlightID,
		totalPrice,
		booking.ContactEmail,
		booking.ContactPhone,
		booking.BookingDate,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return err
	}

	insertPassenger := `
		INSERT INTO passengers (id, booking_id, first_name, surname, seat_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	for i := range passengers {
		seatID := sql.NullString{String: passengers[i].SeatID, Valid: passengers[i].SeatID != ""}
		err := tx.QueryRowContext(ctx, insertPassenger,
			passengers[i].ID,
			booking.ID,
			passengers[i].FirstName,
			passengers[i].Surname,
			seatID,
		).Scan(&passengers[i].CreatedAt)
		if err != nil {
			return err
		}
		passengers[i].BookingID = booking.ID
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	booking.Status = models.BookingPending
	booking.TotalPrice = totalPrice
	booking.Passengers = passengers
	return nil
}

// GetByID returns a booking with its passengers and applied discounts.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if booking.Passengers, err = r.GetPassengers(ctx, id); err != nil {
		return nil, err
	}
	if booking.Discounts, err = r.GetDiscounts(ctx, id); err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) GetPassengers(ctx context.Context, bookingID string) ([]models.Passenger, error) {
	query := `
		SELECT id, booking_id, first_name, surname, seat_id, created_at
		FROM passengers
		WHERE booking_id = $1
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passengers []models.Passenger
	for rows.Next() {
		var p models.Passenger
		var seatID sql.NullString
		err := rows.Scan(&p.ID, &p.BookingID, &p.FirstName, &p.Surname, &seatID, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		p.SeatID = seatID.String
		passengers = append(passengers, p)
	}

	return passengers, rows.Err()
}

func (r *BookingRepository) GetDiscounts(ctx context.Context, bookingID string) ([]models.Discount, error) {
	query := `
		SELECT d.id, d.points_required, d.value, d.expires_at, d.created_at
		FROM discounts d
		JOIN booking_discounts bd ON bd.discount_id = d.id
		WHERE bd.booking_id = $1
		ORDER BY bd.applied_at`

	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discounts []models.Discount
	for rows.Next() {
		var d models.Discount
		err := rows.Scan(&d.ID, &d.PointsRequired, &d.Value, &d.ExpiresAt, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}

	return discounts, rows.Err()
}

// UpdateContact patches mutable booking fields. Status and price are never
// touched here.
func (r *BookingRepository) UpdateContact(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET contact_email = COALESCE($2, contact_email),
		    contact_phone = COALESCE($3, contact_phone),
		    booking_date  = COALESCE($4, booking_date),
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, req.ContactEmail, req.ContactPhone, req.BookingDate)
	if err != nil {
		return nil, err
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, fmt.Errorf("booking %s: %w", id, apperrors.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// UpdateStatusConditional flips a booking from one exact status to another.
// Zero rows affected means the booking was not in the expected state, so a
// concurrent transition already won.
func (r *BookingRepository) UpdateStatusConditional(ctx context.Context, id string, from, to models.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2`

	result, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return err
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return fmt.Errorf("booking %s is not %s: %w", id, from, apperrors.ErrInvalidStateTransition)
	}

	return nil
}

// Cancel flips the booking to Cancelled and releases every seat held by its
// passengers in the same transaction, so no observer sees a cancelled booking
// still holding inventory. Cancelled is terminal.
func (r *BookingRepository) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var status models.BookingStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if status == models.BookingCancelled {
		return nil, fmt.Errorf("booking %s is already cancelled: %w", id, apperrors.ErrInvalidStateTransition)
	}

	releaseSeats := `
		UPDATE seats
		SET status = 'Available', updated_at = NOW()
		WHERE id IN (
			SELECT seat_id FROM passengers WHERE booking_id = $1 AND seat_id IS NOT NULL
		)`

	if _, err := tx.ExecContext(ctx, releaseSeats, id); err != nil {
		return nil, err
	}

	cancel := `
		UPDATE bookings
		SET status = 'Cancelled', updated_at = NOW()
		WHERE id = $1`

	if _, err := tx.ExecContext(ctx, cancel, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// ApplyDiscount links a discount to a Pending booking and lowers the total
// price, floored at zero. The link table's primary key plus ON CONFLICT DO
// NOTHING guarantees the price is reduced at most once per discount even
// under concurrent duplicate requests.
func (r *BookingRepository) ApplyDiscount(ctx context.Context, bookingID string, discount *models.Discount) (*models.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var status models.BookingStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, bookingID).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking %s: %w", bookingID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if status != models.BookingPending {
		return nil, fmt.Errorf("booking %s is %s: %w", bookingID, status, apperrors.ErrInvalidStateTransition)
	}

	link := `
		INSERT INTO booking_discounts (booking_id, discount_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	result, err := tx.ExecContext(ctx, link, bookingID, discount.ID)
	if err != nil {
		return nil, err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, fmt.Errorf("discount %s: %w", discount.ID, apperrors.ErrDiscountAlreadyApplied)
	}

	reprice := `
		UPDATE bookings
		SET total_price = GREATEST(total_price - $2, 0), updated_at = NOW()
		WHERE id = $1`

	if _, err := tx.ExecContext(ctx, reprice, bookingID, discount.Value); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, bookingID)
}

// AddPassenger appends a passenger to a Pending booking, reserving the seat
// and raising the total price in the same transaction.
func (r *BookingRepository) AddPassenger(ctx context.Context, bookingID string, passenger *models.Passenger, basePrice int64) (*models.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var status models.BookingStatus
	var flightID string
	err = tx.QueryRowContext(ctx, `SELECT status, flight_id FROM bookings WHERE id = $1 FOR UPDATE`, bookingID).Scan(&status, &flightID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking %s: %w", bookingID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if status != models.BookingPending {
		return nil, fmt.Errorf("booking %s is %s: %w", bookingID, status, apperrors.ErrInvalidStateTransition)
	}

	price := basePrice
	if passenger.SeatID != "" {
		reserveSeat := `
			UPDATE seats
			SET status = 'Booked', updated_at = NOW()
			WHERE id = $1 AND flight_id = $2 AND status = 'Available'
			RETURNING price`

		err := tx.QueryRowContext(ctx, reserveSeat, passenger.SeatID, flightID).Scan(&price)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("seat %s: %w", passenger.SeatID, apperrors.ErrSeatUnavailable)
		}
		if err != nil {
			return nil, err
		}
	}

	insert := `
		INSERT INTO passengers (id, booking_id, first_name, surname, seat_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	seatID := sql.NullString{String: passenger.SeatID, Valid: passenger.SeatID != ""}
	err = tx.QueryRowContext(ctx, insert, passenger.ID, bookingID, passenger.FirstName, passenger.Surname, seatID).Scan(&passenger.CreatedAt)
	if err != nil {
		return nil, err
	}
	passenger.BookingID = bookingID

	reprice := `
		UPDATE bookings
		SET total_price = total_price + $2, updated_at = NOW()
		WHERE id = $1`

	if _, err := tx.ExecContext(ctx, reprice, bookingID, price); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, bookingID)
}

// RemovePassenger removes a passenger from a Pending booking, releases the
// passenger's seat, and lowers the total price in the same transaction.
func (r *BookingRepository) RemovePassenger(ctx context.Context, bookingID, passengerID string) (*models.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var status models.BookingStatus
	var flightID string
	err = tx.QueryRowContext(ctx, `SELECT status, flight_id FROM bookings WHERE id = $1 FOR UPDATE`, bookingID).Scan(&status, &flightID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking %s: %w", bookingID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if status != models.BookingPending {
		return nil, fmt.Errorf("booking %s is %s: %w", bookingID, status, apperrors.ErrInvalidStateTransition)
	}

	var seatID sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT seat_id FROM passengers WHERE id = $1 AND booking_id = $2`,
		passengerID, bookingID,
	).Scan(&seatID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("passenger %s: %w", passengerID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var price int64
	if seatID.Valid {
		release := `
			UPDATE seats
			SET status = 'Available', updated_at = NOW()
			WHERE id = $1
			RETURNING price`

		if err := tx.QueryRowContext(ctx, release, seatID.String).Scan(&price); err != nil {
			return nil, err
		}
	} else {
		err = tx.QueryRowContext(ctx, `SELECT base_price FROM flights WHERE id = $1`, flightID).Scan(&price)
		if err != nil {
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM passengers WHERE id = $1`, passengerID); err != nil {
		return nil, err
	}

	reprice := `
		UPDATE bookings
		SET total_price = GREATEST(total_price - $2, 0), updated_at = NOW()
		WHERE id = $1`

	if _, err := tx.ExecContext(ctx, reprice, bookingID, price); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, bookingID)
}

// ListExpiredPending returns Pending bookings created before the cutoff with
// no completed payment. The expiration job cancels them to free inventory.
func (r *BookingRepository) ListExpiredPending(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.status = 'Pending'
		  AND b.created_at < $1
		  AND NOT EXISTS (
			SELECT 1 FROM payments p
			WHERE p.booking_id = b.id AND p.status = 'Completed'
		  )
		ORDER BY b.created_at`

	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}
