package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
	"github.com/storefrontlabs/storefront-api/internal/token"
)

// stubAuthRepo implements ports.AuthRepository with a fixed user set.
type stubAuthRepo struct {
	users map[int64]*domain.User

	created *domain.User
	deleted int64
}

func (s *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	out := *user
	out.ID = int64(len(s.users) + 1)
	s.created = &out
	return &out, nil
}

func (s *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubAuthRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubAuthRepo) FindByIDAndRole(_ context.Context, id int64, role domain.Role) (*domain.User, error) {
	if u, ok := s.users[id]; ok && u.Role == role {
		return u, nil
	}
	return nil, domain.ErrRoleMismatch
}

func (s *stubAuthRepo) Patch(_ context.Context, id int64, patch ports.UserPatch) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	return u, nil
}

func (s *stubAuthRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubAuthRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	s.deleted = id
	return nil
}

func TestSessionValidator_Valid(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	repo := &stubAuthRepo{users: map[int64]*domain.User{
		1: {ID: 1, Username: "alice", Role: domain.RoleAdmin},
	}}
	v := NewSessionValidator(codec, repo)

	signed, err := codec.Issue(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := v.Validate(context.Background(), signed, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 1 || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestSessionValidator_BadToken(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	v := NewSessionValidator(codec, &stubAuthRepo{users: map[int64]*domain.User{}})

	if _, err := v.Validate(context.Background(), "garbage", domain.RoleUser); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

// A user demoted after token issuance must be rejected even though the token
// still verifies: the store lookup matches on (id, role) and finds nothing.
func TestSessionValidator_RoleChangedSinceIssue(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	repo := &stubAuthRepo{users: map[int64]*domain.User{
		1: {ID: 1, Username: "alice", Role: domain.RoleAdmin},
	}}
	v := NewSessionValidator(codec, repo)

	signed, err := codec.Issue(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	repo.users[1].Role = domain.RoleUser

	if _, err := v.Validate(context.Background(), signed, domain.RoleAdmin); !errors.Is(err, domain.ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got %v", err)
	}
}

func TestSessionValidator_UserDeleted(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	repo := &stubAuthRepo{users: map[int64]*domain.User{}}
	v := NewSessionValidator(codec, repo)

	signed, err := codec.Issue(9, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := v.Validate(context.Background(), signed, domain.RoleUser); !errors.Is(err, domain.ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got %v", err)
	}
}

// A valid user token presented on an admin route is rejected with the same
// classification as a stale one.
func TestSessionValidator_InsufficientRole(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	repo := &stubAuthRepo{users: map[int64]*domain.User{
		2: {ID: 2, Username: "bob", Role: domain.RoleUser},
	}}
	v := NewSessionValidator(codec, repo)

	signed, err := codec.Issue(2, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := v.Validate(context.Background(), signed, domain.RoleAdmin); !errors.Is(err, domain.ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got %v", err)
	}
}

func TestSessionValidator_StoreError(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	v := NewSessionValidator(codec, errorAuthRepo{})

	signed, err := codec.Issue(1, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := v.Validate(context.Background(), signed, domain.RoleUser); err == nil {
		t.Fatal("expected store error to propagate")
	}
}

// errorAuthRepo fails every call.
type errorAuthRepo struct{}

func (errorAuthRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, fmt.Errorf("store down")
}
func (errorAuthRepo) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, fmt.Errorf("store down")
}
func (errorAuthRepo) FindByID(context.Context, int64) (*domain.User, error) {
	return nil, fmt.Errorf("store down")
}
func (errorAuthRepo) FindByIDAndRole(context.Context, int64, domain.Role) (*domain.User, error) {
	return nil, fmt.Errorf("store down")
}
func (errorAuthRepo) Patch(context.Context, int64, ports.UserPatch) (*domain.User, error) {
	return nil, fmt.Errorf("store down")
}
func (errorAuthRepo) List(context.Context) ([]*domain.User, error) {
	return nil, fmt.Errorf("store down")
}
func (errorAuthRepo) Delete(context.Context, int64) error {
	return fmt.Errorf("store down")
}
