// internal/services/coupon_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelane/storelane-backend/internal/models"
)

func TestDiscount(t *testing.T) {
	tests := []struct {
		name     string
		coupon   *models.Coupon
		subtotal float64
		want     float64
	}{
		{"nil coupon", nil, 100, 0},
		{"percentage", &models.Coupon{Type: models.DiscountTypePercentage, Value: 10}, 200, 20},
		{"fixed under subtotal", &models.Coupon{Type: models.DiscountTypeFixed, Value: 15}, 100, 15},
		{"fixed capped at subtotal", &models.Coupon{Type: models.DiscountTypeFixed, Value: 50}, 30, 30},
		{"free shipping discounts nothing", &models.Coupon{Type: models.DiscountTypeFreeShipping, Value: 99}, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Discount(tt.coupon, tt.subtotal), 0.001)
		})
	}
}

func TestCouponUsable(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	active := &models.Coupon{IsActive: true, MinPurchase: 50}
	assert.True(t, active.Usable(50, now))
	assert.False(t, active.Usable(49.99, now))

	inactive := &models.Coupon{IsActive: false}
	assert.False(t, inactive.Usable(100, now))

	expired := &models.Coupon{IsActive: true, ExpiresAt: &past}
	assert.False(t, expired.Usable(100, now))

	live := &models.Coupon{IsActive: true, ExpiresAt: &future}
	assert.True(t, live.Usable(100, now))
}

func TestCouponServiceCreate(t *testing.T) {
	db := setupTestDB(t)
	service := NewCouponService(db)

	coupon, err := service.Create(&CreateCouponRequest{
		Code:  " save10 ",
		Type:  models.DiscountTypePercentage,
		Value: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)
	assert.True(t, coupon.IsActive)

	// Codes are unique case-insensitively.
	_, err = service.Create(&CreateCouponRequest{
		Code:  "Save10",
		Type:  models.DiscountTypeFixed,
		Value: 5,
	})
	assert.ErrorIs(t, err, ErrConflict)

	// A percentage over 100 makes no sense.
	_, err = service.Create(&CreateCouponRequest{
		Code:  "TOOMUCH",
		Type:  models.DiscountTypePercentage,
		Value: 150,
	})
	assert.Error(t, err)
}

func TestCouponServiceFindUsable(t *testing.T) {
	db := setupTestDB(t)
	service := NewCouponService(db)

	_, err := service.Create(&CreateCouponRequest{
		Code:        "WELCOME",
		Type:        models.DiscountTypePercentage,
		Value:       15,
		MinPurchase: 20,
	})
	require.NoError(t, err)

	assert.NotNil(t, service.FindUsable(db, "welcome", 25))
	assert.Nil(t, service.FindUsable(db, "welcome", 10), "below minimum purchase")
	assert.Nil(t, service.FindUsable(db, "NOPE", 100), "unknown code")
	assert.Nil(t, service.FindUsable(db, "", 100), "blank code")
}

func TestCouponServiceUpdate(t *testing.T) {
	db := setupTestDB(t)
	service := NewCouponService(db)

	coupon, err := service.Create(&CreateCouponRequest{
		Code: "TWEAK", Type: models.DiscountTypeFixed, Value: 5,
	})
	require.NoError(t, err)

	_, err = service.Update(coupon.ID, &UpdateCouponRequest{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	off := false
	updated, err := service.Update(coupon.ID, &UpdateCouponRequest{IsActive: &off})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}
