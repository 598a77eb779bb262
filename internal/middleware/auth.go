// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/internal/i18n"
	"github.com/storelane/storelane-backend/internal/models"
	"github.com/storelane/storelane-backend/internal/utils"
)

// extractToken accepts either a bearer Authorization header or the
// access-token cookie, so browser sessions and API clients share one gate.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(utils.AccessTokenCookie); err == nil {
		return cookie
	}

	return ""
}

// AuthRequired verifies the credential, loads the backing user, and rejects
// deactivated accounts before any handler runs.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthInvalidToken),
			})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Select("id", "email", "role", "status").
			Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthInvalidToken),
			})
			c.Abort()
			return
		}

		if !user.IsActive() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthAccountInactive),
			})
			c.Abort()
			return
		}

		// Set authenticated identity in context
		c.Set("user_id", user.ID.String())
		c.Set("user_email", user.Email)
		c.Set("user_role", string(user.Role))
		c.Next()
	}
}

// RoleRequired enforces the ranked role hierarchy: USER < STAFF < MANAGER < ADMIN.
func RoleRequired(min models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		roleStr, exists := utils.GetUserRoleFromContext(c)
		if !exists || !models.UserRole(roleStr).AtLeast(min) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": i18n.T(lang, i18n.KeyAccessDenied),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth sets the identity when a valid credential is present but never
// rejects the request.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := utils.ValidateAccessToken(token)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := db.Select("id", "email", "role", "status").
			Where("id = ?", claims.UserID).First(&user).Error; err != nil || !user.IsActive() {
			c.Next()
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("user_email", user.Email)
		c.Set("user_role", string(user.Role))
		c.Next()
	}
}
