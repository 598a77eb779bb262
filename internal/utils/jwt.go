// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

type JWTClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenKind string `json:"token_kind"`
	jwt.RegisteredClaims
}

var jwtSecret = []byte("your-secret-key-change-in-production")

func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func generateToken(userID uuid.UUID, email, role, kind string, ttl time.Duration) (string, error) {
	claims := JWTClaims{
		UserID:    userID.String(),
		Email:     email,
		Role:      role,
		TokenKind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "storefront",
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func GenerateAccessToken(userID uuid.UUID, email, role string, ttlMinutes int) (string, error) {
	return generateToken(userID, email, role, TokenKindAccess, time.Duration(ttlMinutes)*time.Minute)
}

func GenerateRefreshToken(userID uuid.UUID, email, role string, ttlHours int) (string, error) {
	return generateToken(userID, email, role, TokenKindRefresh, time.Duration(ttlHours)*time.Hour)
}

// validateToken fails closed: any parse, signature, expiry, or kind mismatch
// comes back as an error, never a panic.
func validateToken(tokenString, kind string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.TokenKind != kind {
		return nil, errors.New("wrong token kind")
	}

	return claims, nil
}

func ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	return validateToken(tokenString, TokenKindAccess)
}

func ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	return validateToken(tokenString, TokenKindRefresh)
}
