package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

func TestCodec_IssueAndDecode(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	signed, err := codec.Issue(42, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Decode(signed)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", claims.Role)
	}
}

func TestCodec_DefaultTTL(t *testing.T) {
	codec := NewCodec("secret", 0)

	signed, err := codec.Issue(1, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := codec.Decode(signed)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %s", ttl)
	}
}

func TestCodec_Expired(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	now := time.Now().Add(-2 * time.Hour)
	claims := Claims{
		UserID: 7,
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := codec.Decode(signed); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	signed, err := NewCodec("secret-a", time.Hour).Issue(7, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewCodec("secret-b", time.Hour).Decode(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestCodec_RejectsUnsignedAlg(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 7,
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := codec.Decode(unsigned); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestCodec_Garbage(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	if _, err := codec.Decode("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
