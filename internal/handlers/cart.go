// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storelane/storelane-backend/internal/i18n"
	"github.com/storelane/storelane-backend/internal/services"
	"github.com/storelane/storelane-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetOrCreate(userID)
	if err != nil {
		handleServiceError(c, err, "cart")
		return
	}

	utils.SuccessResponse(c, gin.H{"cart": cart})
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	cart, err := h.cartService.AddItem(userID, &req)
	if err != nil {
		handleServiceError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemAdded),
		"cart":    cart,
	})
}

// PUT /cart/items/:product_id
func (h *CartHandler) SetItemQuantity(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	var req services.SetCartItemQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}

	cart, err := h.cartService.SetItemQuantity(userID, productID, req.Quantity)
	if err != nil {
		handleServiceError(c, err, "cart")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemUpdated),
		"cart":    cart,
	})
}

// DELETE /cart/items/:product_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(userID, productID)
	if err != nil {
		handleServiceError(c, err, "cart")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemRemoved),
		"cart":    cart,
	})
}

// DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.Clear(userID)
	if err != nil {
		handleServiceError(c, err, "cart")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
		"cart":    cart,
	})
}
