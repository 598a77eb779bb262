// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("unit-test-secret")
	userID := uuid.New()

	access, err := GenerateAccessToken(userID, "a@example.com", "staff", 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, TokenKindAccess, claims.TokenKind)
}

func TestTokenKindSeparation(t *testing.T) {
	SetJWTSecret("unit-test-secret")
	userID := uuid.New()

	access, err := GenerateAccessToken(userID, "a@example.com", "user", 15)
	require.NoError(t, err)
	refresh, err := GenerateRefreshToken(userID, "a@example.com", "user", 168)
	require.NoError(t, err)

	// Each gate only accepts its own kind.
	_, err = ValidateRefreshToken(access)
	assert.Error(t, err)
	_, err = ValidateAccessToken(refresh)
	assert.Error(t, err)

	_, err = ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateAccessToken(uuid.New(), "a@example.com", "user", -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	SetJWTSecret("unit-test-secret")
	token, err := GenerateAccessToken(uuid.New(), "a@example.com", "user", 15)
	require.NoError(t, err)

	SetJWTSecret("some-other-secret")
	defer SetJWTSecret("unit-test-secret")

	_, err = ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	_, err := ValidateAccessToken("not-a-token")
	assert.Error(t, err)
	_, err = ValidateAccessToken("")
	assert.Error(t, err)
}
