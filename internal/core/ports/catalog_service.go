package ports

import (
	"context"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

// CreateCategoryInput mirrors the admin create payload. Optional flags fall
// back to the storefront defaults (not featured, available).
type CreateCategoryInput struct {
	Name        string
	ImageID     *int64
	IsFeatured  *bool
	IsAvailable *bool
}

type CategoryService interface {
	// Public listings only ever see available categories.
	PublicList(ctx context.Context, featuredOnly bool) ([]*domain.Category, error)
	PublicGet(ctx context.Context, id int64) (*domain.Category, error)

	Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	AdminGet(ctx context.Context, id int64) (*domain.Category, error)
	Patch(ctx context.Context, id int64, patch CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	CategoryID  int64
	ImageID     *int64
	IsFeatured  *bool
	IsAvailable *bool
}

type ProductService interface {
	PublicList(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	PublicGet(ctx context.Context, id int64) (*domain.Product, error)

	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	AdminGet(ctx context.Context, id int64) (*domain.Product, error)
	Patch(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
