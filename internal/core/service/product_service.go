package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) PublicList(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	return s.repo.List(ctx, filter, true)
}

func (s *ProductService) PublicGet(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id, true)
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}

	product := &domain.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		ImageID:     input.ImageID,
		IsFeatured:  false,
		IsAvailable: true,
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *ProductService) AdminGet(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id, false)
}

func (s *ProductService) Patch(ctx context.Context, id int64, patch ports.ProductPatch) (*domain.Product, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	return s.repo.Patch(ctx, id, patch)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}
