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

type LoyaltyRepository struct {
	db *database.DB
}

func NewLoyaltyRepository(db *database.DB) *LoyaltyRepository {
	return &LoyaltyRepository{db: db}
}

func (r *LoyaltyRepository) GetAccount(ctx context.Context, userID string) (*models.LoyaltyAccount, error) {
	account := &models.LoyaltyAccount{}
	query := `
		SELECT user_id, balance, expires_at, updated_at
		FROM loyalty_accounts
		WHERE user_id = $1`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&account.UserID,
		&account.Balance,
		&account.ExpiresAt,
		&account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("loyalty account for user %s: %w", userID, apperrors.ErrNotFound)
	}

	return account, err
}

// Accrue adds points to the user's account, creating it when absent, and
// writes the ledger entry in the same transaction. The expiry only ever
// moves forward.
func (r *LoyaltyRepository) Accrue(ctx context.Context, userID string, points int, expiresAt time.Time, reason, bookingID string) (*models.LoyaltyAccount, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	account := &models.LoyaltyAccount{}
	upsert := `
		INSERT INTO loyalty_accounts (user_id, balance, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = loyalty_accounts.balance + EXCLUDED.balance,
		    expires_at = GREATEST(loyalty_accounts.expires_at, EXCLUDED.expires_at),
		    updated_at = NOW()
		RETURNING user_id, balance, expires_at, updated_at`

	err = tx.QueryRowContext(ctx, upsert, userID, points, expiresAt).Scan(
		&account.UserID,
		&account.Balance,
		&account.ExpiresAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := insertLedgerEntry(ctx, tx, userID, points, reason, bookingID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return account, nil
}

// Redeem debits points with a single conditional update: the balance >=
// points guard in the WHERE clause means two concurrent redemptions can
// never take the balance negative. The loser sees zero rows affected.
func (r *LoyaltyRepository) Redeem(ctx context.Context, userID string, points int, reason, bookingID string) (*models.LoyaltyAccount, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	account := &models.LoyaltyAccount{}
	debit := `
		UPDATE loyalty_accounts
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
		RETURNING user_id, balance, expires_at, updated_at`

	err = tx.QueryRowContext(ctx, debit, userID, points).Scan(
		&account.UserID,
		&account.Balance,
		&account.ExpiresAt,
		&account.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		if _, getErr := r.GetAccount(ctx, userID); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("user %s has fewer than %d points: %w", userID, points, apperrors.ErrInsufficientPoints)
	}
	if err != nil {
		return nil, err
	}

	if err := insertLedgerEntry(ctx, tx, userID, -points, reason, bookingID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return account, nil
}

func insertLedgerEntry(ctx context.Context, tx *sql.Tx, userID string, delta int, reason, bookingID string) error {
	query := `
		INSERT INTO loyalty_entries (user_id, delta, reason, booking_id)
		VALUES ($1, $2, $3, $4)`

	bookingRef := sql.NullString{String: bookingID, Valid: bookingID != ""}
	_, err := tx.ExecContext(ctx, query, userID, delta, reason, bookingRef)
	return err
}

// History returns the user's ledger, newest first.
func (r *LoyaltyRepository) History(ctx context.Context, userID string) ([]models.LoyaltyEntry, error) {
	query := `
		SELECT id, user_id, delta, reason, booking_id, created_at
		FROM loyalty_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LoyaltyEntry
	for rows.Next() {
		var entry models.LoyaltyEntry
		var bookingID sql.NullString
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Delta, &entry.Reason, &bookingID, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		entry.BookingID = bookingID.String
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
