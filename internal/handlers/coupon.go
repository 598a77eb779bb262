// internal/handlers/coupon.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storelane/storelane-backend/internal/i18n"
	"github.com/storelane/storelane-backend/internal/services"
	"github.com/storelane/storelane-backend/internal/utils"
)

type CouponHandler struct {
	couponService *services.CouponService
}

func NewCouponHandler(couponService *services.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// GET /coupons
func (h *CouponHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	coupons, total, err := h.couponService.List(params)
	if err != nil {
		handleServiceError(c, err, "coupon")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(coupons, total, params))
}

// GET /coupons/:id
func (h *CouponHandler) GetByID(c *gin.Context) {
	couponID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := h.couponService.GetByID(couponID)
	if err != nil {
		handleServiceError(c, err, "coupon")
		return
	}

	utils.SuccessResponse(c, gin.H{"coupon": coupon})
}

// POST /coupons
func (h *CouponHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateCouponRequest
	if !bindAndValidate(c, &req) {
		return
	}

	coupon, err := h.couponService.Create(&req)
	if err != nil {
		handleServiceError(c, err, "coupon")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCouponCreated),
		"coupon":  coupon,
	})
}

// PATCH /coupons/:id
func (h *CouponHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	couponID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCouponRequest
	if !bindAndValidate(c, &req) {
		return
	}

	coupon, err := h.couponService.Update(couponID, &req)
	if err != nil {
		handleServiceError(c, err, "coupon")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCouponUpdated),
		"coupon":  coupon,
	})
}
