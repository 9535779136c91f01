package repository

import (
	"context"
	"database/sql"
	"fmt"

	"skybook/internal/database"
	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

type DiscountRepository struct {
	db *database.DB
}

func NewDiscountRepository(db *database.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

const discountColumns = `id, points_required, value, expires_at, created_at`

func (r *DiscountRepository) Create(ctx context.Context, discount *models.Discount) error {
	query := `
		INSERT INTO discounts (id, points_required, value, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		discount.ID,
		discount.PointsRequired,
		discount.Value,
		discount.ExpiresAt,
	).Scan(&discount.CreatedAt)
}

func (r *DiscountRepository) GetByID(ctx context.Context, id string) (*models.Discount, error) {
	discount := &models.Discount{}
	query := `
		SELECT ` + discountColumns + `
		FROM discounts
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&discount.ID,
		&discount.PointsRequired,
		&discount.Value,
		&discount.ExpiresAt,
		&discount.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("discount %s: %w", id, apperrors.ErrNotFound)
	}

	return discount, err
}

// ListAvailableForPoints returns unexpired discounts a balance of the given
// points could redeem, cheapest first.
func (r *DiscountRepository) ListAvailableForPoints(ctx context.Context, points int) ([]models.Discount, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discounts
		WHERE points_required <= $1 AND expires_at >= CURRENT_DATE
		ORDER BY points_required`

	rows, err := r.db.QueryContext(ctx, query, points)
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
