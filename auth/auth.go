// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Principal is the authenticated identity the rest of the server consumes:
// a stable subject id, an email, and a role claim. Session mechanics beyond
// that belong to the identity provider.
type Principal struct {
	ID    string
	Email string
	Role  string
}

type claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

// IssueToken signs an HS256 bearer token for a principal. Used by the dev
// tooling and the test suite; in production tokens come from the identity
// provider, signed with the shared secret.
func IssueToken(p Principal, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: p.Email,
		Role:  p.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   p.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token and returns the principal it carries.
func VerifyToken(tokenString, secret string) (Principal, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return Principal{}, ErrExpiredToken
		}
		return Principal{}, ErrInvalidToken
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Subject == "" {
		return Principal{}, ErrInvalidToken
	}

	return Principal{ID: c.Subject, Email: c.Email, Role: c.Role}, nil
}

type contextKey struct{}

// NewContext stashes the verified principal for downstream handlers.
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal placed by the auth middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
