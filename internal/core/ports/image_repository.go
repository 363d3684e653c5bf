package ports

import (
	"context"
	"io"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) (*domain.Image, error)
	FindByID(ctx context.Context, id int64) (*domain.Image, error)
	List(ctx context.Context) ([]*domain.Image, error)
	Rename(ctx context.Context, id int64, fileName string) (*domain.Image, error)

	// Delete removes the row and returns it so the caller can clean up the
	// file on disk after the transaction committed.
	Delete(ctx context.Context, id int64) (*domain.Image, error)
}

// FileStore is the on-disk image storage boundary.
type FileStore interface {
	Save(name string, src io.Reader) error
	Path(name string) string
	Remove(name string) error
}
