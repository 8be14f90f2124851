package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ecoscorefinder/backend/internal/domain"
)

const defaultSearchLimit = 20

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	CacheTTL time.Duration
}

// ProductService resolves products through cache, local storage, and the
// upstream source, in that order.
type ProductService struct {
	cache    domain.ProductCache
	products domain.ProductRepository
	source   domain.ProductSource
	cacheTTL time.Duration
}

// NewProductService creates a product service with dependencies.
func NewProductService(
	cache domain.ProductCache,
	products domain.ProductRepository,
	source domain.ProductSource,
	config ProductServiceConfig,
) *ProductService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &ProductService{
		cache:    cache,
		products: products,
		source:   source,
		cacheTTL: cacheTTL,
	}
}

// GetProduct resolves a barcode. Flow: cache -> local table -> upstream
// fetch -> upsert -> return. domain.ErrProductNotFound propagates when the
// barcode is unknown everywhere.
func (s *ProductService) GetProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	if cached, err := s.cache.Get(ctx, barcode); err == nil && cached != nil {
		return cached, nil
	}

	product, err := s.products.GetByBarcode(ctx, barcode)
	if err == nil {
		s.cacheProduct(ctx, product)
		return product, nil
	}
	if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, err
	}

	fetched, err := s.source.FetchProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}

	if _, err := s.products.Upsert(ctx, fetched); err != nil {
		// The caller still gets the product; only the cache write failed.
		log.Printf("[PRODUCT] Failed to persist %s: %v", barcode, err)
	}
	s.cacheProduct(ctx, fetched)

	return fetched, nil
}

// SearchProducts runs a free-text search. Local results win; on a local
// miss the upstream source is searched and its results persisted.
func (s *ProductService) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	local, err := s.products.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		return local, nil
	}

	upstream, err := s.source.SearchProducts(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	for i := range upstream {
		if _, err := s.products.Upsert(ctx, &upstream[i]); err != nil {
			log.Printf("[PRODUCT] Failed to persist %s: %v", upstream[i].Barcode, err)
		}
	}

	return upstream, nil
}

func (s *ProductService) cacheProduct(ctx context.Context, product *domain.Product) {
	if err := s.cache.Set(ctx, product.Barcode, product, s.cacheTTL); err != nil {
		log.Printf("[PRODUCT] Failed to cache %s: %v", product.Barcode, err)
	}
}
