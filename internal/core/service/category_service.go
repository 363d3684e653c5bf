package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

type CategoryService struct {
	repo   ports.CategoryRepository
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) PublicList(ctx context.Context, featuredOnly bool) ([]*domain.Category, error) {
	return s.repo.List(ctx, true, featuredOnly)
}

func (s *CategoryService) PublicGet(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !category.IsAvailable {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, input ports.CreateCategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	category := &domain.Category{
		Name:        input.Name,
		ImageID:     input.ImageID,
		IsFeatured:  false,
		IsAvailable: true,
	}
	if input.IsFeatured != nil {
		category.IsFeatured = *input.IsFeatured
	}
	if input.IsAvailable != nil {
		category.IsAvailable = *input.IsAvailable
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

func (s *CategoryService) AdminGet(ctx context.Context, id int64) (*domain.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) Patch(ctx context.Context, id int64, patch ports.CategoryPatch) (*domain.Category, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
	}
	return s.repo.Patch(ctx, id, patch)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("category_id", id).Msg("category deleted")
	return nil
}
