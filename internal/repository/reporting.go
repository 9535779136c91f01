package repository

import (
	"context"

	"skybook/internal/database"
	"skybook/internal/models"
)

// ReportRepository serves read-only aggregates for the ops dashboard. None
// of these queries participate in booking transactions.
type ReportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Dashboard(ctx context.Context) (*models.DashboardResponse, error) {
	report := &models.DashboardResponse{}

	bookingCounts := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Pending'),
			COUNT(*) FILTER (WHERE status = 'Confirmed'),
			COUNT(*) FILTER (WHERE status = 'Cancelled')
		FROM bookings`

	err := r.db.QueryRowContext(ctx, bookingCounts).Scan(
		&report.PendingBookings,
		&report.ConfirmedBookings,
		&report.CancelledBookings,
	)
	if err != nil {
		return nil, err
	}

	revenue := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE status = 'Completed'`

	if err := r.db.QueryRowContext(ctx, revenue).Scan(&report.CompletedRevenue); err != nil {
		return nil, err
	}

	seatCounts := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Booked'),
			COUNT(*) FILTER (WHERE status = 'Available')
		FROM seats`

	if err := r.db.QueryRowContext(ctx, seatCounts).Scan(&report.SeatsBooked, &report.SeatsAvailable); err != nil {
		return nil, err
	}

	return report, nil
}

func (r *ReportRepository) FlightOccupancy(ctx context.Context) ([]models.FlightOccupancy, error) {
	query := `
		SELECT
			flight_id,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Booked'),
			COUNT(*) FILTER (WHERE status = 'Reserved'),
			COUNT(*) FILTER (WHERE status = 'Available')
		FROM seats
		GROUP BY flight_id
		ORDER BY flight_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var occupancy []models.FlightOccupancy
	for rows.Next() {
		var o models.FlightOccupancy
		err := rows.Scan(&o.FlightID, &o.Total, &o.Booked, &o.Reserved, &o.Available)
		if err != nil {
			return nil, err
		}
		occupancy = append(occupancy, o)
	}

	return occupancy, rows.Err()
}
