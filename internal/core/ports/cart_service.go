package ports

import (
	"context"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

type CartService interface {
	List(ctx context.Context, userID int64) ([]*domain.CartEntry, error)
	Add(ctx context.Context, userID, productID int64, quantity int) (*domain.CartEntry, error)
	UpdateQuantity(ctx context.Context, userID, entryID int64, quantity int) (*domain.CartEntry, error)
	Remove(ctx context.Context, userID, entryID int64) error
}
