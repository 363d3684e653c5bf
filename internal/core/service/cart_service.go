package service

import (
	"context"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

type CartService struct {
	repo ports.CartRepository
}

func NewCartService(repo ports.CartRepository) *CartService {
	return &CartService{repo: repo}
}

func (s *CartService) List(ctx context.Context, userID int64) ([]*domain.CartEntry, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CartService) Add(ctx context.Context, userID, productID int64, quantity int) (*domain.CartEntry, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	return s.repo.Add(ctx, userID, productID, quantity)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, entryID int64, quantity int) (*domain.CartEntry, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	return s.repo.UpdateQuantity(ctx, userID, entryID, quantity)
}

func (s *CartService) Remove(ctx context.Context, userID, entryID int64) error {
	return s.repo.Remove(ctx, userID, entryID)
}
