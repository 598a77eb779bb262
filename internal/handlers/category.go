// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storelane/storelane-backend/internal/i18n"
	"github.com/storelane/storelane-backend/internal/models"
	"github.com/storelane/storelane-backend/internal/services"
	"github.com/storelane/storelane-backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	includeInactive := false
	if c.Query("include_inactive") == "true" {
		if role, ok := utils.GetUserRoleFromContext(c); ok {
			includeInactive = models.UserRole(role).AtLeast(models.RoleStaff)
		}
	}

	categories, err := h.categoryService.List(includeInactive)
	if err != nil {
		handleServiceError(c, err, "category")
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// GET /categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(categoryID)
	if err != nil {
		handleServiceError(c, err, "category")
		return
	}

	utils.SuccessResponse(c, gin.H{"category": category})
}

// POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	category, err := h.categoryService.Create(&req)
	if err != nil {
		handleServiceError(c, err, "category")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCategoryCreated),
		"category": category,
	})
}

// PATCH /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	category, err := h.categoryService.Update(categoryID, &req)
	if err != nil {
		handleServiceError(c, err, "category")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCategoryUpdated),
		"category": category,
	})
}

// DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(categoryID); err != nil {
		handleServiceError(c, err, "category")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCategoryDeleted),
	})
}
