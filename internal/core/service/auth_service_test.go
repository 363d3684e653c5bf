package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/token"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	repo := &stubAuthRepo{users: map[int64]*domain.User{}}
	svc := NewAuthService(repo, token.NewCodec("secret", time.Hour), nil)

	user, err := svc.Register(context.Background(), "alice", "hunter2", domain.RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "alice" || user.Role != domain.RoleUser {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "hunter2" {
		t.Fatal("password stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")) != nil {
		t.Fatal("stored hash does not verify")
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	repo := &stubAuthRepo{users: map[int64]*domain.User{}}
	svc := NewAuthService(repo, token.NewCodec("secret", time.Hour), nil)

	if _, err := svc.Register(context.Background(), "", "pw", domain.RoleUser); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "", domain.RoleUser); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "pw", domain.Role("root")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	repo := &stubAuthRepo{users: map[int64]*domain.User{
		1: {ID: 1, Username: "alice", Role: domain.RoleUser},
	}}
	svc := NewAuthService(repo, token.NewCodec("secret", time.Hour), nil)

	if _, err := svc.Register(context.Background(), "alice", "pw", domain.RoleUser); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	repo := &stubAuthRepo{users: map[int64]*domain.User{
		1: {ID: 1, Username: "alice", PasswordHash: hashOf(t, "hunter2"), Role: domain.RoleUser},
	}}
	svc := NewAuthService(repo, codec, nil)

	signed, user, err := svc.Login(context.Background(), "alice", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := codec.Decode(signed)
	if err != nil {
		t.Fatalf("decode issued token: %v", err)
	}
	if claims.UserID != 1 || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

// Unknown account and wrong password must produce the same error so the
// responses are indistinguishable to the caller.
func TestAuthService_LoginBadCredentials(t *testing.T) {
	repo := &stubAuthRepo{users: map[int64]*domain.User{
		1: {ID: 1, Username: "alice", PasswordHash: hashOf(t, "hunter2"), Role: domain.RoleUser},
	}}
	svc := NewAuthService(repo, token.NewCodec("secret", time.Hour), nil)

	if _, _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody", "hunter2"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

type blockedLimiter struct{}

func (blockedLimiter) Allow(context.Context, string) error { return domain.ErrTooManyAttempts }

func TestAuthService_LoginThrottled(t *testing.T) {
	repo := &stubAuthRepo{users: map[int64]*domain.User{
		1: {ID: 1, Username: "alice", PasswordHash: hashOf(t, "hunter2"), Role: domain.RoleUser},
	}}
	svc := NewAuthService(repo, token.NewCodec("secret", time.Hour), blockedLimiter{})

	if _, _, err := svc.Login(context.Background(), "alice", "hunter2"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_PatchProfileRehashesPassword(t *testing.T) {
	repo := &stubAuthRepo{users: map[int64]*domain.User{
		1: {ID: 1, Username: "alice", PasswordHash: hashOf(t, "old"), Role: domain.RoleUser},
	}}
	svc := NewAuthService(repo, token.NewCodec("secret", time.Hour), nil)

	pw := "new-password"
	user, err := svc.PatchProfile(context.Background(), 1, nil, &pw)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if user.PasswordHash == pw {
		t.Fatal("password stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(pw)) != nil {
		t.Fatal("new hash does not verify")
	}
}

func TestAuthService_PatchProfileEmptyValues(t *testing.T) {
	repo := &stubAuthRepo{users: map[int64]*domain.User{
		1: {ID: 1, Username: "alice", Role: domain.RoleUser},
	}}
	svc := NewAuthService(repo, token.NewCodec("secret", time.Hour), nil)

	empty := ""
	if _, err := svc.PatchProfile(context.Background(), 1, &empty, nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
	if _, err := svc.PatchProfile(context.Background(), 1, nil, &empty); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
}
