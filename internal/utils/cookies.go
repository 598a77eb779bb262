// internal/utils/cookies.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// SetAuthCookies emits both tokens as same-site-strict, http-only cookies
// whose max-ages match the token TTLs. The secure flag follows the
// deployment environment.
func SetAuthCookies(c *gin.Context, accessToken, refreshToken string, accessTTLMinutes, refreshTTLHours int, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessTokenCookie, accessToken, accessTTLMinutes*60, "/", "", secure, true)
	c.SetCookie(RefreshTokenCookie, refreshToken, refreshTTLHours*3600, "/", "", secure, true)
}

func ClearAuthCookies(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", secure, true)
}
