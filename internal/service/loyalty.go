package service

import (
	"context"
	"time"

	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

// LoyaltyService exposes the point balance and the manual accrue/redeem
// operations. Automatic accrual after payment lives in PaymentService.
type LoyaltyService struct {
	loyalty LoyaltyStore
}

func NewLoyaltyService(loyalty LoyaltyStore) *LoyaltyService {
	return &LoyaltyService{loyalty: loyalty}
}

// Balance returns the user's point balance. A user who never earned a point
// has a zero balance, not a missing account.
func (s *LoyaltyService) Balance(ctx context.Context, userID string) (*models.LoyaltyBalanceResponse, error) {
	account, err := s.loyalty.GetAccount(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return &models.LoyaltyBalanceResponse{UserID: userID}, nil
		}
		return nil, err
	}

	return &models.LoyaltyBalanceResponse{
		UserID:    account.UserID,
		Balance:   account.Balance,
		ExpiresAt: account.ExpiresAt,
	}, nil
}

// Accrue credits points manually (promotions, goodwill adjustments).
func (s *LoyaltyService) Accrue(ctx context.Context, userID string, req *models.AccruePointsRequest) (*models.LoyaltyAccount, error) {
	expiresAt := time.Now().Add(loyaltyExpiryTerm)
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}

	return s.loyalty.Accrue(ctx, userID, req.Points, expiresAt, "Manual accrual", "")
}

// RedeemPoints debits points directly. Insufficient balance fails the whole
// debit; there are no partial redemptions.
func (s *LoyaltyService) RedeemPoints(ctx context.Context, userID string, req *models.RedeemPointsRequest) (*models.LoyaltyAccount, error) {
	return s.loyalty.Redeem(ctx, userID, req.Points, "Manual redemption", "")
}

// History returns the user's full ledger, newest first.
func (s *LoyaltyService) History(ctx context.Context, userID string) ([]models.LoyaltyEntry, error) {
	return s.loyalty.History(ctx, userID)
}
