package ports

import (
	"context"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

// UserPatch carries optional profile changes. Nil fields are left untouched.
type UserPatch struct {
	Username     *string
	PasswordHash *string
}

// AuthRepository is the credential store boundary. The session validator only
// ever reads from it; mutation belongs to registration, profile and admin
// user management.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// FindByIDAndRole matches on both id and role so that a role change or
	// deletion invalidates every outstanding token for that user without a
	// revocation list. Absence of a matching row is domain.ErrRoleMismatch,
	// not a generic not-found.
	FindByIDAndRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error)

	Patch(ctx context.Context, id int64, patch UserPatch) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
