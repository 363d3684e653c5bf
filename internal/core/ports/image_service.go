package ports

import (
	"context"
	"io"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

type ImageService interface {
	// Upload stores the file bytes under a random path name and records the
	// row; the original file name must be unique across uploads.
	Upload(ctx context.Context, fileName string, src io.Reader) (*domain.Image, error)

	List(ctx context.Context) ([]*domain.Image, error)

	// Open resolves an image id to its on-disk path for streaming.
	Open(ctx context.Context, id int64) (*domain.Image, string, error)

	Rename(ctx context.Context, id int64, fileName string) (*domain.Image, error)
	Delete(ctx context.Context, id int64) error
}
