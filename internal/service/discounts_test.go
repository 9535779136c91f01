package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	apperrors "skybook/internal/errors"
	"skybook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateDiscount_GeneratesCodeAndDefaultExpiry(t *testing.T) {
	discounts := new(MockDiscountStore)
	discounts.On("Create", mock.Anything, mock.MatchedBy(func(d *models.Discount) bool {
		return len(d.ID) == 10 && d.ID[:4] == "DISC" && !d.ExpiresAt.IsZero()
	})).Return(nil)

	svc := NewDiscountService(discounts, new(MockLoyaltyStore))

	discount, err := svc.Create(context.Background(), &models.CreateDiscountRequest{
		PointsRequired: 100,
		Value:          20000,
	})

	assert.NoError(t, err)
	assert.Contains(t, discount.ID, "DISC")
	assert.WithinDuration(t, time.Now().Add(defaultDiscountTerm), discount.ExpiresAt, time.Minute)
}

func TestValidateDiscount_UnknownVsExpired(t *testing.T) {
	discounts := new(MockDiscountStore)
	discounts.On("GetByID", mock.Anything, "DISCMISSING").
		Return(nil, fmt.Errorf("discount DISCMISSING: %w", apperrors.ErrNotFound))
	discounts.On("GetByID", mock.Anything, "DISCSTALE").Return(&models.Discount{
		ID:        "DISCSTALE",
		Value:     10000,
		ExpiresAt: time.Now().Add(-48 * time.Hour),
	}, nil)

	svc := NewDiscountService(discounts, new(MockLoyaltyStore))

	_, err := svc.Validate(context.Background(), "DISCMISSING", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Validate(context.Background(), "DISCSTALE", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrDiscountExpired)
}

func TestValidateDiscount_ValidOnExpiryDay(t *testing.T) {
	discounts := new(MockDiscountStore)
	today := time.Now().Truncate(24 * time.Hour)
	discounts.On("GetByID", mock.Anything, "DISCTODAY").Return(&models.Discount{
		ID:        "DISCTODAY",
		Value:     10000,
		ExpiresAt: today,
	}, nil)

	svc := NewDiscountService(discounts, new(MockLoyaltyStore))

	discount, err := svc.Validate(context.Background(), "DISCTODAY", time.Now())

	assert.NoError(t, err)
	assert.Equal(t, "DISCTODAY", discount.ID)
}

func TestRedeemDiscount_DebitsPoints(t *testing.T) {
	discounts := new(MockDiscountStore)
	loyalty := new(MockLoyaltyStore)

	discounts.On("GetByID", mock.Anything, "DISCLOYAL").Return(&models.Discount{
		ID:             "DISCLOYAL",
		PointsRequired: 500,
		Value:          50000,
		ExpiresAt:      time.Now().Add(30 * 24 * time.Hour),
	}, nil)
	loyalty.On("Redeem", mock.Anything, "U-1", 500, "Discount redemption: DISCLOYAL", "").
		Return(&models.LoyaltyAccount{UserID: "U-1", Balance: 100}, nil)

	svc := NewDiscountService(discounts, loyalty)

	discount, err := svc.Redeem(context.Background(), "U-1", "DISCLOYAL")

	assert.NoError(t, err)
	assert.Equal(t, "DISCLOYAL", discount.ID)
	loyalty.AssertExpectations(t)
}

func TestRedeemDiscount_InsufficientPoints(t *testing.T) {
	discounts := new(MockDiscountStore)
	loyalty := new(MockLoyaltyStore)

	discounts.On("GetByID", mock.Anything, "DISCLOYAL").Return(&models.Discount{
		ID:             "DISCLOYAL",
		PointsRequired: 500,
		Value:          50000,
		ExpiresAt:      time.Now().Add(30 * 24 * time.Hour),
	}, nil)
	loyalty.On("Redeem", mock.Anything, "U-1", 500, mock.Anything, "").
		Return(nil, fmt.Errorf("user U-1 has fewer than 500 points: %w", apperrors.ErrInsufficientPoints))

	svc := NewDiscountService(discounts, loyalty)

	_, err := svc.Redeem(context.Background(), "U-1", "DISCLOYAL")

	assert.ErrorIs(t, err, apperrors.ErrInsufficientPoints)
}

func TestListForUser_NoAccountSeesFreeDiscounts(t *testing.T) {
	discounts := new(MockDiscountStore)
	loyalty := new(MockLoyaltyStore)

	loyalty.On("GetAccount", mock.Anything, "U-NEW").
		Return(nil, fmt.Errorf("loyalty account for user U-NEW: %w", apperrors.ErrNotFound))
	discounts.On("ListAvailableForPoints", mock.Anything, 0).Return([]models.Discount{
		{ID: "DISCWELCOME", PointsRequired: 0, Value: 10000},
	}, nil)

	svc := NewDiscountService(discounts, loyalty)

	available, err := svc.ListForUser(context.Background(), "U-NEW")

	assert.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Equal(t, "DISCWELCOME", available[0].ID)
}
