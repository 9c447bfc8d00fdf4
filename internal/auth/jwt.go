// Package auth issues and validates the signed session tokens used by the
// HTTP API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/enerlink/enerlink/internal/models"
)

// ErrInvalidToken covers every token rejection: expired, malformed, bad
// signature. Callers treat them all as "not authenticated".
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload carried by a session token. It snapshots the
// actor fields so activity writes never need a user lookup per request.
type Claims struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Actor converts the claims back into an actor context.
func (c *Claims) Actor() models.ActorContext {
	return models.ActorContext{
		UserID:  c.UserID,
		Name:    c.Name,
		Surname: c.Surname,
		Email:   c.Email,
		Role:    c.Role,
	}
}

// Manager signs and validates session tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager. ttl bounds the token lifetime.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Generate issues a signed token for the given user.
func (m *Manager) Generate(u *models.User) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:  u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
		Role:    u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "enerlink",
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

// Validate parses and verifies a token, returning its claims.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}

		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
