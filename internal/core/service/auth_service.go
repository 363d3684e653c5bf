package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
	"github.com/storefrontlabs/storefront-api/internal/token"
)

// AuthService implements registration, login and profile management.
type AuthService struct {
	repo    ports.AuthRepository
	codec   *token.Codec
	limiter ports.LoginLimiter
}

// NewAuthService builds an AuthService. limiter may be nil, in which case
// login attempts are not throttled.
func NewAuthService(repo ports.AuthRepository, codec *token.Codec, limiter ports.LoginLimiter) *AuthService {
	return &AuthService{repo: repo, codec: codec, limiter: limiter}
}

func (s *AuthService) Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHashPassword, err)
	}

	return s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
}

// Login verifies credentials and issues a session token. A missing user and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, username); err != nil {
			return "", nil, err
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.codec.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return tkn, user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// PatchProfile updates the caller's own username and/or password. A changed
// username does not invalidate outstanding tokens (they carry the user id),
// but a role change by an admin does, through the per-request re-check.
func (s *AuthService) PatchProfile(ctx context.Context, userID int64, username, password *string) (*domain.User, error) {
	patch := ports.UserPatch{Username: username}
	if username != nil && *username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", domain.ErrInvalidInput)
	}
	if password != nil {
		if *password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrHashPassword, err)
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}
	return s.repo.Patch(ctx, userID, patch)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *AuthService) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
