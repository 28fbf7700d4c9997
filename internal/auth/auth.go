// Package auth guards the administrative recomputation surface. Operators log
// in with a password checked against a bcrypt hash and receive a short-lived
// HS256 token for subsequent calls.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when the provided password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a token is missing, malformed, expired
	// or signed with the wrong key.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carries the registered claims plus the role the token grants.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Auth issues and checks admin tokens.
type Auth struct {
	passwordHash []byte
	signingKey   []byte
	tokenTTL     time.Duration
}

// New creates an Auth from the bcrypt hash of the admin password, the derived
// signing key, and the token lifetime.
func New(passwordHash string, signingKey []byte, tokenTTL time.Duration) *Auth {
	return &Auth{
		passwordHash: []byte(passwordHash),
		signingKey:   signingKey,
		tokenTTL:     tokenTTL,
	}
}

// Login checks the password and, on success, returns a signed token and its
// expiry time.
func (a *Auth) Login(password string, now time.Time) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	expiresAt := now.Add(a.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: "admin",
	})
	signed, err := token.SignedString(a.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Check validates a token string and confirms it grants the admin role.
func (a *Auth) Check(tokenString string) error {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return a.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Role != "admin" {
		return ErrInvalidToken
	}
	return nil
}
