// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storelane/storelane-backend/internal/i18n"
	"github.com/storelane/storelane-backend/internal/models"
	"github.com/storelane/storelane-backend/internal/services"
	"github.com/storelane/storelane-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// PATCH /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		handleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserProfileUpdated),
		"user":    user,
	})
}

// GET /users/me/addresses
func (h *UserHandler) ListAddresses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	addresses, err := h.userService.ListAddresses(userID)
	if err != nil {
		handleServiceError(c, err, "address")
		return
	}

	utils.SuccessResponse(c, gin.H{"addresses": addresses})
}

// POST /users/me/addresses
func (h *UserHandler) CreateAddress(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddressRequest
	if !bindAndValidate(c, &req) {
		return
	}

	address, err := h.userService.CreateAddress(userID, &req)
	if err != nil {
		handleServiceError(c, err, "address")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAddressCreated),
		"address": address,
	})
}

// PATCH /users/me/addresses/:id
func (h *UserHandler) UpdateAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAddressRequest
	if !bindAndValidate(c, &req) {
		return
	}

	address, err := h.userService.UpdateAddress(userID, addressID, &req)
	if err != nil {
		handleServiceError(c, err, "address")
		return
	}

	utils.SuccessResponse(c, gin.H{"address": address})
}

// DELETE /users/me/addresses/:id
func (h *UserHandler) DeleteAddress(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteAddress(userID, addressID); err != nil {
		handleServiceError(c, err, "address")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAddressDeleted),
	})
}

// Admin routes

// GET /admin/users
func (h *UserHandler) AdminListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.List(params)
	if err != nil {
		handleServiceError(c, err, "user")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, params))
}

// GET /admin/users/:id
func (h *UserHandler) AdminGetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		handleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// PATCH /admin/users/:id
func (h *UserHandler) AdminUpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.AdminUpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.userService.AdminUpdate(userID, &req)
	if err != nil {
		handleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// PATCH /admin/users/:id/role
func (h *UserHandler) AdminChangeRole(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Role models.UserRole `json:"role" validate:"required,oneof=user staff manager admin"`
	}
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.userService.ChangeRole(userID, req.Role)
	if err != nil {
		handleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserRoleUpdated),
		"user":    user,
	})
}

// DELETE /admin/users/:id
func (h *UserHandler) AdminDeactivateUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Deactivate(userID); err != nil {
		handleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserDeactivated),
	})
}
