package ports

import (
	"context"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

// CategoryPatch carries optional category changes. Nil fields are left
// untouched; a non-nil ImageID is re-validated against the images table
// inside the update transaction.
type CategoryPatch struct {
	Name        *string
	ImageID     *int64
	IsFeatured  *bool
	IsAvailable *bool
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context, availableOnly, featuredOnly bool) ([]*domain.Category, error)
	Patch(ctx context.Context, id int64, patch CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

// ProductPatch carries optional product changes. Non-nil CategoryID and
// ImageID are re-validated inside the update transaction.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Description *string
	CategoryID  *int64
	ImageID     *int64
	IsFeatured  *bool
	IsAvailable *bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64, availableOnly bool) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter, availableOnly bool) ([]*domain.Product, error)
	Patch(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
