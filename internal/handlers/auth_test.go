// internal/handlers/auth_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/storelane/storelane-backend/internal/config"
	"github.com/storelane/storelane-backend/internal/middleware"
	"github.com/storelane/storelane-backend/internal/models"
	"github.com/storelane/storelane-backend/internal/services"
	"github.com/storelane/storelane-backend/internal/utils"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&models.User{}))
	s.db = db

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "handler-test-secret",
			AccessTokenTTL:  15,
			RefreshTokenTTL: 168,
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	handler := NewAuthHandler(authService, userService, cfg)

	s.router = gin.New()
	auth := s.router.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.POST("/refresh", handler.Refresh)
		auth.GET("/me", middleware.AuthRequired(db), handler.Me)
	}
}

func (s *AuthHandlerTestSuite) postJSON(path string, body map[string]interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *AuthHandlerTestSuite) register() map[string]interface{} {
	w := s.postJSON("/auth/register", map[string]interface{}{
		"email":      "test@example.com",
		"password":   "TestPass123",
		"first_name": "Test",
		"last_name":  "Person",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	// Both tokens land as cookies.
	cookies := w.Result().Cookies()
	names := make(map[string]bool, len(cookies))
	for _, c := range cookies {
		names[c.Name] = true
		s.True(c.HttpOnly)
	}
	s.True(names[utils.AccessTokenCookie])
	s.True(names[utils.RefreshTokenCookie])

	resp := s.decode(w)
	s.True(resp["success"].(bool))
	return resp["data"].(map[string]interface{})
}

func (s *AuthHandlerTestSuite) TestRegisterAndDuplicate() {
	data := s.register()
	s.NotEmpty(data["token"])
	s.NotEmpty(data["refresh_token"])

	// Same email again conflicts.
	w := s.postJSON("/auth/register", map[string]interface{}{
		"email":      "test@example.com",
		"password":   "TestPass123",
		"first_name": "Test",
		"last_name":  "Person",
	})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *AuthHandlerTestSuite) TestRegisterWeakPasswordRejected() {
	w := s.postJSON("/auth/register", map[string]interface{}{
		"email":      "weak@example.com",
		"password":   "short",
		"first_name": "Test",
		"last_name":  "Person",
	})
	s.Equal(http.StatusBadRequest, w.Code)

	resp := s.decode(w)
	s.False(resp["success"].(bool))
	s.Equal("VALIDATION_ERROR", resp["error"].(map[string]interface{})["code"])
}

func (s *AuthHandlerTestSuite) TestLogin() {
	s.register()

	w := s.postJSON("/auth/login", map[string]interface{}{
		"email":    "test@example.com",
		"password": "TestPass123",
	})
	s.Equal(http.StatusOK, w.Code)
	s.True(s.decode(w)["success"].(bool))

	w = s.postJSON("/auth/login", map[string]interface{}{
		"email":    "test@example.com",
		"password": "WrongPass123",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerTestSuite) TestMeWithBearerToken() {
	data := s.register()
	token := data["token"].(string)

	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	user := s.decode(w)["data"].(map[string]interface{})["user"].(map[string]interface{})
	s.Equal("test@example.com", user["email"])

	// No credential at all is rejected.
	req, _ = http.NewRequest(http.MethodGet, "/auth/me", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerTestSuite) TestMeWithCookie() {
	data := s.register()
	token := data["token"].(string)

	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: utils.AccessTokenCookie, Value: token})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
}

func (s *AuthHandlerTestSuite) TestRefreshFromBody() {
	data := s.register()

	w := s.postJSON("/auth/refresh", map[string]interface{}{
		"refresh_token": data["refresh_token"],
	})
	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(s.decode(w)["data"].(map[string]interface{})["token"])
}

func (s *AuthHandlerTestSuite) TestRefreshRejectsAccessToken() {
	data := s.register()

	w := s.postJSON("/auth/refresh", map[string]interface{}{
		"refresh_token": data["token"],
	})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerTestSuite) TestLogoutClearsCookies() {
	s.register()

	w := s.postJSON("/auth/logout", nil)
	s.Equal(http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		s.True(c.MaxAge < 0, "cookie %s should be expired", c.Name)
	}
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
