package services

import (
	"errors"
	"fmt"
	"time"

	"learnhub/internal/config"
	"learnhub/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed session payload
type SessionClaims struct {
	Email string      `json:"email"`
	ID    string      `json:"id"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 session tokens
type TokenManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenManager creates a token manager from auth configuration
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.TokenExpiry,
		now:    time.Now,
	}
}

// Expiry is the lifetime of issued tokens
func (m *TokenManager) Expiry() time.Duration {
	return m.expiry
}

// SignToken issues a token for the given account
func (m *TokenManager) SignToken(id, email string, role models.Role) (string, error) {
	now := m.now()
	claims := SessionClaims{
		Email: email,
		ID:    id,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the claims
func (m *TokenManager) ParseToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, NewUnauthenticatedError("Not authenticated")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewUnauthenticatedError("Session expired").WithCause(err)
		}
		return nil, NewUnauthenticatedError("Invalid token").WithCause(err)
	}
	if !token.Valid || claims.Email == "" || !claims.Role.Valid() {
		return nil, NewUnauthenticatedError("Invalid token")
	}
	return claims, nil
}
