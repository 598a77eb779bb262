// internal/handlers/wishlist.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storelane/storelane-backend/internal/i18n"
	"github.com/storelane/storelane-backend/internal/services"
	"github.com/storelane/storelane-backend/internal/utils"
)

type WishlistHandler struct {
	wishlistService *services.WishlistService
}

func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// GET /wishlist
func (h *WishlistHandler) ListItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	entries, total, err := h.wishlistService.ListItems(userID, params)
	if err != nil {
		handleServiceError(c, err, "wishlist")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(entries, total, params))
}

// POST /wishlist/items
func (h *WishlistHandler) AddItems(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddWishlistItemsRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.wishlistService.AddItems(userID, &req)
	if err != nil {
		handleServiceError(c, err, "wishlist")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWishlistItemAdded),
		"result":  result,
	})
}

// PATCH /wishlist/items/:product_id
func (h *WishlistHandler) UpdateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	var req services.UpdateWishlistItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.wishlistService.UpdateItem(userID, productID, &req)
	if err != nil {
		handleServiceError(c, err, "wishlist")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWishlistItemUpdated),
		"item":    item,
	})
}

// DELETE /wishlist/items/:product_id
func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	if err := h.wishlistService.RemoveItem(userID, productID); err != nil {
		handleServiceError(c, err, "wishlist")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWishlistItemRemoved),
	})
}
