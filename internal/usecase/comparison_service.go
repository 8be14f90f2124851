package usecase

import (
	"context"

	"github.com/ecoscorefinder/backend/internal/domain"
)

// ComparisonService manages named product comparisons.
type ComparisonService struct {
	comparisons domain.ComparisonRepository
	products    domain.ProductRepository
}

// NewComparisonService creates a comparison service with dependencies.
func NewComparisonService(comparisons domain.ComparisonRepository, products domain.ProductRepository) *ComparisonService {
	return &ComparisonService{comparisons: comparisons, products: products}
}

// List returns a user's comparisons, each enriched with its product rows.
// Products that have since disappeared are silently omitted.
func (s *ComparisonService) List(ctx context.Context, userID uint) ([]domain.ComparisonWithProducts, error) {
	comparisons, err := s.comparisons.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	enriched := make([]domain.ComparisonWithProducts, 0, len(comparisons))
	for _, comparison := range comparisons {
		products, err := s.products.GetByIDs(ctx, comparison.ProductIDs)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, domain.ComparisonWithProducts{
			Comparison: comparison,
			Products:   products,
		})
	}

	return enriched, nil
}

// Create saves a new comparison for the user.
func (s *ComparisonService) Create(ctx context.Context, userID uint, name string, productIDs []uint) (uint, error) {
	if name == "" || len(productIDs) == 0 {
		return 0, domain.ErrInvalidRequest
	}
	return s.comparisons.Create(ctx, &domain.Comparison{
		UserID:     userID,
		Name:       name,
		ProductIDs: productIDs,
	})
}

// Delete removes a comparison owned by the user.
func (s *ComparisonService) Delete(ctx context.Context, id, userID uint) error {
	return s.comparisons.Delete(ctx, id, userID)
}
