// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storelane/storelane-backend/internal/i18n"
	"github.com/storelane/storelane-backend/internal/models"
	"github.com/storelane/storelane-backend/internal/services"
	"github.com/storelane/storelane-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /orders/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.orderService.Checkout(userID, &req)
	if err != nil {
		handleServiceError(c, err, "address")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderPlaced),
		"order":   order,
	})
}

// GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := services.OrderSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if raw := c.Query("status"); raw != "" {
		status := models.OrderStatus(raw)
		if !status.Valid() {
			utils.BadRequestResponse(c, "invalid status", nil)
			return
		}
		params.Status = status
	}

	orders, total, err := h.orderService.ListForUser(userID, params)
	if err != nil {
		handleServiceError(c, err, "order")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params.PaginationParams))
}

// GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role := models.RoleUser
	if raw, exists := utils.GetUserRoleFromContext(c); exists {
		role = models.UserRole(raw)
	}

	order, err := h.orderService.GetForUser(orderID, userID, role)
	if err != nil {
		handleServiceError(c, err, "order")
		return
	}

	utils.SuccessResponse(c, gin.H{"order": order})
}

// PATCH /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(orderID, &req, actorID)
	if err != nil {
		handleServiceError(c, err, "order")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderStatusUpdated),
		"order":   order,
	})
}
