package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

const (
	// TokenTypeAccess marks short-lived API tokens
	TokenTypeAccess = "access"
	// TokenTypeRefresh marks tokens only valid for the refresh endpoint
	TokenTypeRefresh = "refresh"
)

// Claims are custom claims extending standard jwt.RegisteredClaims
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Manager handles JWT creation and verification
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager creates a new JWT manager instance
func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GeneratePair mints an access/refresh token pair for a user
func (m *Manager) GeneratePair(user *models.User) (access string, refresh string, err error) {
	access, err = m.generate(user, TokenTypeAccess, m.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = m.generate(user, TokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// GenerateAccess mints a single access token for a user
func (m *Manager) GenerateAccess(user *models.User) (string, error) {
	return m.generate(user, TokenTypeAccess, m.accessTTL)
}

func (m *Manager) generate(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns its claims
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// VerifyRefresh validates a token and requires it to be a refresh token
func (m *Manager) VerifyRefresh(tokenString string) (*Claims, error) {
	claims, err := m.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, errors.New("token is not a refresh token")
	}
	return claims, nil
}
