package ports

import (
	"context"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

// CartRepository persists per-user cart lines. Every mutation verifies row
// ownership against userID inside its transaction; a row belonging to a
// different user is reported as not found, never as forbidden, so that entry
// ids do not leak across accounts.
type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]*domain.CartEntry, error)

	// Add inserts a new line or, when the user already has one for the same
	// product, merges the quantity into it in the same transaction.
	Add(ctx context.Context, userID, productID int64, quantity int) (*domain.CartEntry, error)

	UpdateQuantity(ctx context.Context, userID, entryID int64, quantity int) (*domain.CartEntry, error)
	Remove(ctx context.Context, userID, entryID int64) error
}
