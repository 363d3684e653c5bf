package ports

import (
	"context"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	PatchProfile(ctx context.Context, userID int64, username, password *string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// SessionValidator checks a presented bearer token end to end: signature,
// expiry, current existence of the (user, role) pair in the credential store,
// and the route's required role.
type SessionValidator interface {
	Validate(ctx context.Context, tokenString string, requiredRole domain.Role) (*domain.Claims, error)
}

// LoginLimiter bounds repeated login attempts per account. Allow returns
// domain.ErrTooManyAttempts when the account is throttled.
type LoginLimiter interface {
	Allow(ctx context.Context, username string) error
}
