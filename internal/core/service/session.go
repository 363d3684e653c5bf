package service

import (
	"context"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
	"github.com/storefrontlabs/storefront-api/internal/token"
)

// SessionValidator accepts a bearer token only when the signature verifies,
// the token is unexpired, the encoded (user, role) pair still exists in the
// credential store, and that role matches the route's required role.
//
// Tokens are stateless and unrevocable, so the store re-check on every
// request is what makes demotion or deletion take effect immediately. It must
// not be cached or skipped.
type SessionValidator struct {
	codec *token.Codec
	repo  ports.AuthRepository
}

func NewSessionValidator(codec *token.Codec, repo ports.AuthRepository) *SessionValidator {
	return &SessionValidator{codec: codec, repo: repo}
}

func (v *SessionValidator) Validate(ctx context.Context, tokenString string, requiredRole domain.Role) (*domain.Claims, error) {
	claims, err := v.codec.Decode(tokenString)
	if err != nil {
		return nil, err
	}

	// Match on id and role together. A user whose role changed since the
	// token was issued matches nothing here, which is the revocation path.
	user, err := v.repo.FindByIDAndRole(ctx, claims.UserID, claims.Role)
	if err != nil {
		return nil, err
	}

	// Two separate checks: the token verified and the pair still exists, but
	// the route may still demand a different role than the caller holds.
	if user.Role != requiredRole {
		return nil, domain.ErrRoleMismatch
	}

	return &domain.Claims{UserID: user.ID, Role: user.Role}, nil
}
