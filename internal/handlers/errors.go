// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/storelane/storelane-backend/internal/i18n"
	"github.com/storelane/storelane-backend/internal/services"
	"github.com/storelane/storelane-backend/internal/utils"
)

// handleServiceError maps service sentinels onto the response envelope.
// Anything unrecognized is logged and surfaced as a generic 500.
func handleServiceError(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)

	var oos *services.OutOfStockError
	if errors.As(err, &oos) {
		utils.ErrorResponse(c, 400, "OUT_OF_STOCK",
			i18n.T(lang, i18n.KeyOrderOutOfStock), oos.Items)
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrCategoryInUse):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCategoryHasChildren))
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrEmptyCart):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartEmpty), nil)
	case errors.Is(err, services.ErrCircularReference):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCategoryCircular), nil)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderBadTransition), nil)
	case errors.Is(err, services.ErrInactiveProduct),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrNothingToUpdate):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		logrus.WithError(err).Error("unhandled service error")
		utils.InternalErrorResponse(c, "")
	}
}

// currentUserID parses the authenticated user's id injected by the auth
// middleware. A miss means the route was wired without AuthRequired.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	idStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return id, true
}

// parseIDParam parses a uuid path parameter, answering 400 itself on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// bindAndValidate binds the JSON body and runs struct validation, answering
// the request itself on failure.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}

	return true
}
