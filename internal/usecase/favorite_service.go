package usecase

import (
	"context"

	"github.com/ecoscorefinder/backend/internal/domain"
)

// FavoriteService manages a user's saved products.
type FavoriteService struct {
	favorites domain.FavoriteRepository
	products  domain.ProductRepository
}

// NewFavoriteService creates a favorite service with dependencies.
func NewFavoriteService(favorites domain.FavoriteRepository, products domain.ProductRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, products: products}
}

// List returns the products a user has saved.
func (s *FavoriteService) List(ctx context.Context, userID uint) ([]domain.Product, error) {
	return s.favorites.ListProducts(ctx, userID)
}

// Add saves a product to the user's favorites. The product must exist
// locally; adding twice is idempotent.
func (s *FavoriteService) Add(ctx context.Context, userID, productID uint, notes string) (uint, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return 0, err
	}
	return s.favorites.Add(ctx, userID, productID, notes)
}

// Remove drops a product from the user's favorites.
func (s *FavoriteService) Remove(ctx context.Context, userID, productID uint) error {
	return s.favorites.Remove(ctx, userID, productID)
}

// IsFavorite reports whether the user has saved the product.
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, productID uint) (bool, error) {
	return s.favorites.Exists(ctx, userID, productID)
}
