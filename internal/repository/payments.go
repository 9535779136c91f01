package repository

import (
	"context"
	"database/sql"
	"fmt"

	"skybook/internal/database"
	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

type PaymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, booking_id, amount, status, method, paid_at, created_at`

// Create records the payment for a booking. The UNIQUE constraint on
// booking_id plus ON CONFLICT DO NOTHING means exactly one of any set of
// concurrent attempts wins; the rest get ErrPaymentExists and the stored
// amount never changes.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, status, method)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (booking_id) DO NOTHING
		RETURNING paid_at, created_at`

	err := r.db.QueryRowContext(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.Amount,
		payment.Status,
		payment.Method,
	).Scan(&payment.PaidAt, &payment.CreatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("booking %s already has a payment: %w", payment.BookingID, apperrors.ErrPaymentExists)
	}

	return err
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.Status,
		&payment.Method,
		&payment.PaidAt,
		&payment.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %s: %w", id, apperrors.ErrNotFound)
	}

	return payment, err
}

// GetByBookingID returns the booking's payment, or ErrNotFound when none has
// been recorded yet.
func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE booking_id = $1`

	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.Status,
		&payment.Method,
		&payment.PaidAt,
		&payment.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment for booking %s: %w", bookingID, apperrors.ErrNotFound)
	}

	return payment, err
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Payment, error) {
	query := `
		UPDATE payments
		SET status = $2, paid_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return nil, err
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, fmt.Errorf("payment %s: %w", id, apperrors.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}
