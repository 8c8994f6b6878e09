// Package auth provides signed session tokens carried in an HTTP-only
// cookie. A token asserts who the caller is and which role they act in;
// handlers derive restaurant and driver identity from it, never from the
// request body.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"foodcourt/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
)

// CookieName is the default session cookie.
const CookieName = "session"

// Roles a session can act in.
const (
	RoleCustomer   = "CUSTOMER"
	RoleRestaurant = "RESTAURANT"
	RoleDriver     = "DRIVER"
	RoleAdmin      = "ADMIN"
)

var (
	// ErrInvalidToken indicates the token failed validation.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrInvalidRole indicates the token carries an unknown role.
	ErrInvalidRole = errors.New("invalid session role")
)

// Principal represents the authenticated caller.
type Principal struct {
	ID   kernel.UUID
	Role string
	Name string
}

// IsRole reports whether the principal acts in the given role.
func (p Principal) IsRole(role string) bool {
	return p.Role == role
}

// TokenManager signs and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the given signing secret and
// session lifetime.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

type sessionClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Sign produces a session token for the principal.
func (m *TokenManager) Sign(principal Principal) (string, error) {
	if err := principal.ID.Validate(); err != nil {
		return "", err
	}
	if !validRole(principal.Role) {
		return "", ErrInvalidRole
	}

	now := time.Now()
	claims := sessionClaims{
		Role: principal.Role,
		Name: principal.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify validates a session token and returns its principal.
func (m *TokenManager) Verify(tokenStr string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return Principal{}, ErrInvalidToken
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	role := strings.ToUpper(claims.Role)
	if !validRole(role) {
		return Principal{}, ErrInvalidRole
	}

	return Principal{ID: id, Role: role, Name: claims.Name}, nil
}

// NewSessionCookie wraps a signed token in an HTTP-only cookie.
func (m *TokenManager) NewSessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie produces a cookie that removes the session.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func validRole(role string) bool {
	switch role {
	case RoleCustomer, RoleRestaurant, RoleDriver, RoleAdmin:
		return true
	}
	return false
}
