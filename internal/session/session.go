// Package session handles the PIN login and the remember-me token that
// lets a restart within the validity window skip the login screen.
package session

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrBadPassword = errors.New("session: wrong password")

type Manager struct {
	secret   []byte
	password string
	ttl      time.Duration
}

func NewManager(secret, adminPassword string, ttl time.Duration) *Manager {
	return &Manager{
		secret:   []byte(secret),
		password: adminPassword,
		ttl:      ttl,
	}
}

// Login checks the admin password and mints a signed session token.
func (m *Manager) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) != 1 {
		return "", ErrBadPassword
	}

	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}

	return signed, nil
}

// Valid reports whether the stored token is still usable.
func (m *Manager) Valid(token string) bool {
	if token == "" {
		return false
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return m.secret, nil
	})

	return err == nil && parsed.Valid
}
