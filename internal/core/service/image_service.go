package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

// ImageService coordinates the image table and the on-disk file store. The
// database row is the source of truth: the file is written before the row is
// inserted, and removed best-effort after a delete commits, so a crash can
// leave an orphaned file but never a row pointing at nothing.
type ImageService struct {
	repo   ports.ImageRepository
	files  ports.FileStore
	logger zerolog.Logger
}

func NewImageService(repo ports.ImageRepository, files ports.FileStore, logger zerolog.Logger) *ImageService {
	return &ImageService{repo: repo, files: files, logger: logger}
}

func (s *ImageService) Upload(ctx context.Context, fileName string, src io.Reader) (*domain.Image, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: file name has no extension", domain.ErrInvalidInput)
	}

	pathName, err := randomPathName()
	if err != nil {
		return nil, fmt.Errorf("generate path name: %w", err)
	}

	if err := s.files.Save(pathName+"."+ext, src); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Image{
		FileName:  fileName,
		PathName:  pathName,
		Extension: ext,
	})
	if err != nil {
		// The row was rolled back; drop the file so the upload can be retried.
		_ = s.files.Remove(pathName + "." + ext)
		return nil, err
	}

	s.logger.Info().Int64("image_id", created.ID).Str("file_name", fileName).Msg("image uploaded")
	return created, nil
}

func (s *ImageService) List(ctx context.Context) ([]*domain.Image, error) {
	return s.repo.List(ctx)
}

func (s *ImageService) Open(ctx context.Context, id int64) (*domain.Image, string, error) {
	image, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return image, s.files.Path(image.PathName + "." + image.Extension), nil
}

func (s *ImageService) Rename(ctx context.Context, id int64, fileName string) (*domain.Image, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	return s.repo.Rename(ctx, id, fileName)
}

func (s *ImageService) Delete(ctx context.Context, id int64) error {
	image, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if err := s.files.Remove(image.PathName + "." + image.Extension); err != nil {
		s.logger.Warn().Err(err).Int64("image_id", id).Msg("image row deleted but file removal failed")
	}
	return nil
}

func randomPathName() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
