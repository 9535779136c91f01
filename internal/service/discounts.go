package service

import (
	"context"
	"fmt"
	"time"

	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

const defaultDiscountTerm = 30 * 24 * time.Hour

// DiscountService manages redeemable discount codes.
type DiscountService struct {
	discounts DiscountStore
	loyalty   LoyaltyStore
}

func NewDiscountService(discounts DiscountStore, loyalty LoyaltyStore) *DiscountService {
	return &DiscountService{discounts: discounts, loyalty: loyalty}
}

// Create issues a discount code. A missing ID gets a generated code, a
// missing expiry defaults to 30 days out.
func (s *DiscountService) Create(ctx context.Context, req *models.CreateDiscountRequest) (*models.Discount, error) {
	id := req.DiscountID
	if id == "" {
		id = newDiscountID()
	}

	expiresAt := time.Now().Add(defaultDiscountTerm)
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}

	discount := &models.Discount{
		ID:             id,
		PointsRequired: req.PointsRequired,
		Value:          req.Value,
		ExpiresAt:      expiresAt,
	}

	if err := s.discounts.Create(ctx, discount); err != nil {
		return nil, err
	}

	return discount, nil
}

func (s *DiscountService) Get(ctx context.Context, id string) (*models.Discount, error) {
	return s.discounts.GetByID(ctx, id)
}

// ListForUser returns the unexpired discounts the user's point balance could
// redeem. A user without a loyalty account sees only zero-point discounts.
func (s *DiscountService) ListForUser(ctx context.Context, userID string) ([]models.Discount, error) {
	points := 0
	account, err := s.loyalty.GetAccount(ctx, userID)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if err == nil {
		points = account.Balance
	}

	return s.discounts.ListAvailableForPoints(ctx, points)
}

// Validate returns the discount if it exists and has not expired. An
// unknown code is NotFound, a stale one is DiscountExpired: callers can
// tell the two apart.
func (s *DiscountService) Validate(ctx context.Context, id string, now time.Time) (*models.Discount, error) {
	discount, err := s.discounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if discount.Expired(now) {
		return nil, fmt.Errorf("discount %s expired on %s: %w", id, discount.ExpiresAt.Format("2006-01-02"), apperrors.ErrDiscountExpired)
	}

	return discount, nil
}

// Redeem exchanges loyalty points for a discount code. The debit is
// conditional on sufficient balance, so two concurrent redemptions cannot
// overspend.
func (s *DiscountService) Redeem(ctx context.Context, userID, discountID string) (*models.Discount, error) {
	discount, err := s.Validate(ctx, discountID, time.Now())
	if err != nil {
		return nil, err
	}

	if discount.PointsRequired > 0 {
		_, err = s.loyalty.Redeem(ctx, userID, discount.PointsRequired, "Discount redemption: "+discount.ID, "")
		if err != nil {
			return nil, err
		}
	}

	return discount, nil
}
