// Package token issues and verifies the signed identity assertions that
// authenticate API requests.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failure classes. Callers surface all of them as the same
// unauthenticated response; the distinction exists for logging.
var (
	ErrMalformed    = errors.New("token malformed")
	ErrBadSignature = errors.New("token signature invalid")
	ErrExpired      = errors.New("token expired")
)

// Codec mints and verifies HS256-signed identity tokens. The secret and
// lifetime are fixed at construction; config validation guarantees the
// secret is non-empty before a Codec is ever built.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a codec with the given signing secret and token lifetime.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token: lifetime must be positive")
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a signed token asserting the given user's identity,
// expiring a fixed duration from now.
func (c *Codec) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iat": now.Unix(),
		"exp": now.Add(c.ttl).Unix(),
		"jti": fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks the token's signature and expiry and returns the subject
// user ID. Failures are classified as ErrMalformed, ErrBadSignature or
// ErrExpired; the subject is only trusted when every check passes.
func (c *Codec) Verify(tokenString string) (uint, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrBadSignature
		default:
			return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	if !t.Valid {
		return 0, ErrMalformed
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrMalformed
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return 0, fmt.Errorf("%w: missing sub claim", ErrMalformed)
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad sub claim", ErrMalformed)
	}

	return uint(userID), nil
}
