// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/internal/models"
	"github.com/storelane/storelane-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	s.service = NewAuthService(s.db, cfg)
}

func (s *AuthServiceTestSuite) register() *AuthResponse {
	auth, err := s.service.Register(&RegisterRequest{
		Email:     "new@example.com",
		Password:  "Str0ngPass",
		FirstName: "New",
		LastName:  "Person",
	})
	s.Require().NoError(err)
	return auth
}

func (s *AuthServiceTestSuite) TestRegisterIssuesTokens() {
	auth := s.register()

	s.Equal("new@example.com", auth.User.Email)
	s.Equal(models.RoleUser, auth.User.Role)
	s.NotEmpty(auth.AccessToken)
	s.NotEmpty(auth.RefreshToken)
	s.Equal("Bearer", auth.TokenType)
	s.Equal(15*60, auth.ExpiresIn)

	// Password is stored hashed, never verbatim.
	s.NotEqual("Str0ngPass", auth.User.PasswordHash)
	s.NoError(auth.User.CheckPassword("Str0ngPass"))
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	s.register()

	_, err := s.service.Register(&RegisterRequest{
		Email:     "new@example.com",
		Password:  "Str0ngPass",
		FirstName: "Other",
		LastName:  "Person",
	})
	s.ErrorIs(err, ErrConflict)
}

func (s *AuthServiceTestSuite) TestLogin() {
	s.register()

	auth, err := s.service.Login(&LoginRequest{
		Email:    "new@example.com",
		Password: "Str0ngPass",
	})
	s.Require().NoError(err)
	s.NotEmpty(auth.AccessToken)
	s.NotNil(auth.User.LastLoginAt)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	s.register()

	_, err := s.service.Login(&LoginRequest{
		Email:    "new@example.com",
		Password: "WrongPass1",
	})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLoginUnknownEmail() {
	// Unknown email and wrong password are indistinguishable to the caller.
	_, err := s.service.Login(&LoginRequest{
		Email:    "ghost@example.com",
		Password: "Whatever1",
	})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLoginDeactivatedAccount() {
	auth := s.register()
	s.Require().NoError(s.db.Model(&models.User{}).
		Where("id = ?", auth.User.ID).
		Update("status", models.UserStatusInactive).Error)

	_, err := s.service.Login(&LoginRequest{
		Email:    "new@example.com",
		Password: "Str0ngPass",
	})
	s.ErrorIs(err, ErrAccountInactive)
}

func (s *AuthServiceTestSuite) TestRefreshRotatesPair() {
	auth := s.register()

	refreshed, err := s.service.Refresh(auth.RefreshToken)
	s.Require().NoError(err)
	s.NotEmpty(refreshed.AccessToken)
	s.Equal(auth.User.ID, refreshed.User.ID)
}

func (s *AuthServiceTestSuite) TestRefreshRejectsAccessToken() {
	auth := s.register()

	// An access token must not pass the refresh gate.
	_, err := s.service.Refresh(auth.AccessToken)
	s.Error(err)
}

func (s *AuthServiceTestSuite) TestRefreshPicksUpDeactivation() {
	auth := s.register()
	s.Require().NoError(s.db.Model(&models.User{}).
		Where("id = ?", auth.User.ID).
		Update("status", models.UserStatusInactive).Error)

	_, err := s.service.Refresh(auth.RefreshToken)
	s.ErrorIs(err, ErrAccountInactive)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
