package admin

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrDisabled        = errors.New("admin console is not configured")
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator guards the admin console with a single shared password and
// hands out short-lived HS256 tokens.
type Authenticator struct {
	password []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthenticator(password, secret string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authenticator{
		password: []byte(password),
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (a *Authenticator) enabled() bool {
	return len(a.password) > 0 && len(a.secret) > 0
}

// Login checks password and returns a signed token with its expiry.
func (a *Authenticator) Login(password string) (string, time.Time, error) {
	if !a.enabled() {
		return "", time.Time{}, ErrDisabled
	}
	if subtle.ConstantTimeCompare([]byte(password), a.password) != 1 {
		return "", time.Time{}, ErrInvalidPassword
	}

	now := a.now()
	expires := now.Add(a.ttl)
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   RoleAdmin,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}
	return signed, expires, nil
}

func (a *Authenticator) Verify(token string) (*Claims, error) {
	if !a.enabled() {
		return nil, ErrDisabled
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
