package repository

import (
	"context"
	"database/sql"
	"fmt"

	"skybook/internal/database"
	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

type SeatRepository struct {
	db *database.DB
}

func NewSeatRepository(db *database.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

const seatColumns = `id, flight_id, seat_number, class, status, price, created_at, updated_at`

func (r *SeatRepository) GetByID(ctx context.Context, id string) (*models.Seat, error) {
	seat := &models.Seat{}
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&seat.ID,
		&seat.FlightID,
		&seat.SeatNumber,
		&seat.Class,
		&seat.Status,
		&seat.Price,
		&seat.CreatedAt,
		&seat.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("seat %s: %w", id, apperrors.ErrNotFound)
	}

	return seat, err
}

func (r *SeatRepository) ListByFlight(ctx context.Context, flightID string, status *models.SeatStatus, class *string) ([]models.Seat, error) {
	var args []interface{}
	argIndex := 1

	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE flight_id = $1`
	args = append(args, flightID)
	argIndex++

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	if class != nil {
		query += fmt.Sprintf(" AND class = $%d", argIndex)
		args = append(args, *class)
		argIndex++
	}

	query += " ORDER BY seat_number"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []models.Seat
	for rows.Next() {
		var seat models.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.FlightID,
			&seat.SeatNumber,
			&seat.Class,
			&seat.Status,
			&seat.Price,
			&seat.CreatedAt,
			&seat.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

// Reserve transitions a seat Available -> Booked as a single conditional
// update. Concurrent attempts on the same seat are serialized by the store;
// the loser observes zero rows affected and gets ErrSeatUnavailable. Never
// read-then-write seat status in application code.
func (r *SeatRepository) Reserve(ctx context.Context, seatID string) (*models.Seat, error) {
	seat := &models.Seat{}
	query := `
		UPDATE seats
		SET status = 'Booked', updated_at = NOW()
		WHERE id = $1 AND status = 'Available'
		RETURNING ` + seatColumns

	err := r.db.QueryRowContext(ctx, query, seatID).Scan(
		&seat.ID,
		&seat.FlightID,
		&seat.SeatNumber,
		&seat.Class,
		&seat.Status,
		&seat.Price,
		&seat.CreatedAt,
		&seat.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		// Distinguish a missing seat from a taken one
		if _, getErr := r.GetByID(ctx, seatID); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("seat %s: %w", seatID, apperrors.ErrSeatUnavailable)
	}

	return seat, err
}

// Release transitions Booked/Reserved -> Available. Releasing a seat that is
// already Available is a no-op, not an error.
func (r *SeatRepository) Release(ctx context.Context, seatID string) (*models.Seat, error) {
	query := `
		UPDATE seats
		SET status = 'Available', updated_at = NOW()
		WHERE id = $1 AND status IN ('Booked', 'Reserved')`

	result, err := r.db.ExecContext(ctx, query, seatID)
	if err != nil {
		return nil, err
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return r.GetByID(ctx, seatID)
	}

	return r.GetByID(ctx, seatID)
}

// MarkUnavailable withdraws an Available seat from sale (maintenance,
// equipment change). Seats held by a booking cannot be withdrawn.
func (r *SeatRepository) MarkUnavailable(ctx context.Context, seatID string) (*models.Seat, error) {
	query := `
		UPDATE seats
		SET status = 'Unavailable', updated_at = NOW()
		WHERE id = $1 AND status = 'Available'`

	result, err := r.db.ExecContext(ctx, query, seatID)
	if err != nil {
		return nil, err
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		if _, getErr := r.GetByID(ctx, seatID); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("seat %s: %w", seatID, apperrors.ErrSeatUnavailable)
	}

	return r.GetByID(ctx, seatID)
}
