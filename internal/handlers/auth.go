// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/storelane/storelane-backend/internal/config"
	"github.com/storelane/storelane-backend/internal/i18n"
	"github.com/storelane/storelane-backend/internal/services"
	"github.com/storelane/storelane-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cfg:         cfg,
	}
}

func (h *AuthHandler) secureCookies() bool {
	return h.cfg.Environment == "production"
}

func (h *AuthHandler) respondWithTokens(c *gin.Context, auth *services.AuthResponse, message string, created bool) {
	utils.SetAuthCookies(c, auth.AccessToken, auth.RefreshToken,
		h.cfg.JWT.AccessTokenTTL, h.cfg.JWT.RefreshTokenTTL, h.secureCookies())

	body := gin.H{
		"user":          auth.User,
		"token":         auth.AccessToken,
		"refresh_token": auth.RefreshToken,
		"token_type":    auth.TokenType,
		"expires_in":    auth.ExpiresIn,
	}
	if message != "" {
		body["message"] = message
	}

	if created {
		utils.CreatedResponse(c, body)
		return
	}
	utils.SuccessResponse(c, body)
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	auth, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyAuthUserExists))
			return
		}
		handleServiceError(c, err, "user")
		return
	}

	h.respondWithTokens(c, auth, i18n.T(lang, i18n.KeyAuthRegisterSuccess), true)
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	auth, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountInactive):
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAuthAccountInactive))
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
		default:
			handleServiceError(c, err, "user")
		}
		return
	}

	h.respondWithTokens(c, auth, i18n.T(lang, i18n.KeyAuthLoginSuccess), false)
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	utils.ClearAuthCookies(c, h.secureCookies())
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}

// POST /auth/refresh
//
// The refresh token comes from the body when present, otherwise from the
// http-only cookie set at login.
func (h *AuthHandler) Refresh(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	c.ShouldBindJSON(&req)

	token := req.RefreshToken
	if token == "" {
		token, _ = c.Cookie(utils.RefreshTokenCookie)
	}
	if token == "" {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
		return
	}

	auth, err := h.authService.Refresh(token)
	if err != nil {
		if errors.Is(err, services.ErrAccountInactive) {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAuthAccountInactive))
			return
		}
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
		return
	}

	h.respondWithTokens(c, auth, "", false)
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
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
