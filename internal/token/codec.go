// Package token issues and verifies signed session tokens. The codec is
// purely cryptographic: it never consults the credential store, so a decoded
// claim set still has to be re-checked against the current user row before it
// grants anything.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// Claims is the signed payload carried by a session token.
type Claims struct {
	UserID int64       `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a process-wide HS256 secret.
// The secret is loaded once at startup and never re-read per request.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec. A non-positive ttl falls back to 24h.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the given user and role, expiring after
// the codec's TTL.
func (c *Codec) Issue(userID int64, role domain.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenGeneration, err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of a token and returns its claims.
// Expired tokens fail with domain.ErrTokenExpired; every other verification
// failure (bad signature, wrong algorithm, malformed input) maps to
// domain.ErrTokenInvalid.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return &claims, nil
}
