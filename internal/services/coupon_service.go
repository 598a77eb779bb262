// internal/services/coupon_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/internal/models"
	"github.com/storelane/storelane-backend/internal/utils"
)

type CouponService struct {
	db *gorm.DB
}

type CreateCouponRequest struct {
	Code        string              `json:"code" validate:"required,min=3,max=50"`
	Type        models.DiscountType `json:"type" validate:"required,oneof=percentage fixed free_shipping"`
	Value       float64             `json:"value" validate:"gte=0"`
	MinPurchase float64             `json:"min_purchase,omitempty" validate:"omitempty,gte=0"`
	ExpiresAt   *time.Time          `json:"expires_at,omitempty"`
}

type UpdateCouponRequest struct {
	Value       *float64   `json:"value,omitempty" validate:"omitempty,gte=0"`
	MinPurchase *float64   `json:"min_purchase,omitempty" validate:"omitempty,gte=0"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db}
}

func (s *CouponService) Create(req *CreateCouponRequest) (*models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var count int64
	if err := s.db.Model(&models.Coupon{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check coupon code: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: coupon code %q already exists", ErrConflict, code)
	}

	if req.Type == models.DiscountTypePercentage && req.Value > 100 {
		return nil, fmt.Errorf("%w: percentage discount cannot exceed 100", ErrConflict)
	}

	coupon := &models.Coupon{
		Code:        code,
		Type:        req.Type,
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		ExpiresAt:   req.ExpiresAt,
		IsActive:    true,
	}

	if err := s.db.Create(coupon).Error; err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	return coupon, nil
}

func (s *CouponService) GetByID(id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := s.db.First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &coupon, nil
}

func (s *CouponService) List(params utils.PaginationParams) ([]models.Coupon, int64, error) {
	query := s.db.Model(&models.Coupon{})

	if params.Search != "" {
		query = query.Where("code LIKE ?", "%"+strings.ToUpper(params.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "code", "value", "redeemed_count"})
	query = utils.ApplyPagination(query, params)

	var coupons []models.Coupon
	if err := query.Find(&coupons).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch coupons: %w", err)
	}

	return coupons, total, nil
}

func (s *CouponService) Update(id uuid.UUID, req *UpdateCouponRequest) (*models.Coupon, error) {
	coupon, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if req.MinPurchase != nil {
		updates["min_purchase"] = *req.MinPurchase
	}
	if req.ExpiresAt != nil {
		updates["expires_at"] = *req.ExpiresAt
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	if err := s.db.Model(coupon).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	return coupon, nil
}

// FindUsable looks up an active, unexpired coupon meeting its minimum
// purchase against the given subtotal. A miss is not an error: checkout
// silently ignores bad codes.
func (s *CouponService) FindUsable(tx *gorm.DB, code string, subtotal float64) *models.Coupon {
	if code == "" {
		return nil
	}

	var coupon models.Coupon
	if err := tx.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&coupon).Error; err != nil {
		return nil
	}

	if !coupon.Usable(subtotal, time.Now()) {
		return nil
	}

	return &coupon
}

// Discount computes the amount taken off the subtotal for the coupon type.
// Free-shipping coupons discount nothing here; checkout zeroes the fee.
func Discount(coupon *models.Coupon, subtotal float64) float64 {
	if coupon == nil {
		return 0
	}

	switch coupon.Type {
	case models.DiscountTypePercentage:
		return subtotal * coupon.Value / 100
	case models.DiscountTypeFixed:
		if coupon.Value > subtotal {
			return subtotal
		}
		return coupon.Value
	default:
		return 0
	}
}
