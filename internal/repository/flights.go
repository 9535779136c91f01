package repository

import (
	"context"
	"database/sql"
	"fmt"

	"skybook/internal/database"
	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

type FlightRepository struct {
	db *database.DB
}

func NewFlightRepository(db *database.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

const flightColumns = `id, flight_number, origin, destination, departure_time, arrival_time,
	       base_price, total_seats, created_at, updated_at`

func (r *FlightRepository) GetByID(ctx context.Context, id string) (*models.Flight, error) {
	flight := &models.Flight{}
	query := `
		SELECT ` + flightColumns + `
		FROM flights
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&flight.ID,
		&flight.FlightNumber,
		&flight.Origin,
		&flight.Destination,
		&flight.DepartureTime,
		&flight.ArrivalTime,
		&flight.BasePrice,
		&flight.TotalSeats,
		&flight.CreatedAt,
		&flight.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("flight %s: %w", id, apperrors.ErrNotFound)
	}

	return flight, err
}

func (r *FlightRepository) List(ctx context.Context) ([]models.Flight, error) {
	query := `
		SELECT ` + flightColumns + `
		FROM flights
		ORDER BY departure_time`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flights []models.Flight
	for rows.Next() {
		var flight models.Flight
		err := rows.Scan(
			&flight.ID,
			&flight.FlightNumber,
			&flight.Origin,
			&flight.Destination,
			&flight.DepartureTime,
			&flight.ArrivalTime,
			&flight.BasePrice,
			&flight.TotalSeats,
			&flight.CreatedAt,
			&flight.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		flights = append(flights, flight)
	}

	return flights, rows.Err()
}

// CreateWithSeats inserts a flight and provisions its seat inventory in one
// transaction. Rows 1-2 are Business at 2.5x base price, the rest Economy.
func (r *FlightRepository) CreateWithSeats(ctx context.Context, flight *models.Flight, rows, seatsPerRow int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertFlight := `
		INSERT INTO flights (id, flight_number, origin, destination, departure_time, arrival_time, base_price, total_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err = tx.QueryRowContext(ctx, insertFlight,
		flight.ID,
		flight.FlightNumber,
		flight.Origin,
		flight.Destination,
		flight.DepartureTime,
		flight.ArrivalTime,
		flight.BasePrice,
		rows*seatsPerRow,
	).Scan(&flight.CreatedAt, &flight.UpdatedAt)
	if err != nil {
		return err
	}
	flight.TotalSeats = rows * seatsPerRow

	insertSeat := `
		INSERT INTO seats (flight_id, seat_number, class, status, price)
		VALUES ($1, $2, $3, 'Available', $4)`

	for row := 1; row <= rows; row++ {
		for seat := 0; seat < seatsPerRow; seat++ {
			seatNumber := fmt.Sprintf("%d%c", row, 'A'+seat)
			class := "Economy"
			price := flight.BasePrice
			if row <= 2 {
				class = "Business"
				price = flight.BasePrice * 5 / 2
			}

			if _, err := tx.ExecContext(ctx, insertSeat, flight.ID, seatNumber, class, price); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
