package usecase

import (
	"context"
	"time"

	"github.com/ecoscorefinder/backend/internal/domain"
)

// fakeSource is a scripted domain.ProductSource for tests.
type fakeSource struct {
	fetchResult  *domain.Product
	fetchErr     error
	fetchCalls   []string
	searchResult []domain.Product
	searchErr    error
	searchQuery  string
	searchLimit  int
}

func (f *fakeSource) FetchProduct(_ context.Context, barcode string) (*domain.Product, error) {
	f.fetchCalls = append(f.fetchCalls, barcode)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.fetchResult, nil
}

func (f *fakeSource) SearchProducts(_ context.Context, query string, limit int) ([]domain.Product, error) {
	f.searchQuery = query
	f.searchLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResult, nil
}

// fakeProductRepo is an in-memory domain.ProductRepository keyed by barcode.
type fakeProductRepo struct {
	byBarcode    map[string]*domain.Product
	searchResult []domain.Product
	searchErr    error
	upsertErr    error
	upserted     []string
	nextID       uint
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byBarcode: make(map[string]*domain.Product)}
}

func (f *fakeProductRepo) GetByBarcode(_ context.Context, barcode string) (*domain.Product, error) {
	if p, ok := f.byBarcode[barcode]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uint) (*domain.Product, error) {
	for _, p := range f.byBarcode {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []uint) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range ids {
		if p, err := f.GetByID(context.Background(), id); err == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Search(_ context.Context, _ string, _ int) ([]domain.Product, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResult, nil
}

func (f *fakeProductRepo) Upsert(_ context.Context, product *domain.Product) (uint, error) {
	f.upserted = append(f.upserted, product.Barcode)
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	stored := *product
	if existing, ok := f.byBarcode[product.Barcode]; ok {
		stored.ID = existing.ID
	} else {
		f.nextID++
		stored.ID = f.nextID
	}
	f.byBarcode[product.Barcode] = &stored
	return stored.ID, nil
}

// fakeCache is an in-memory domain.ProductCache without TTL eviction.
type fakeCache struct {
	entries  map[string]*domain.Product
	setCalls []string
	setTTL   time.Duration
	setErr   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.Product)}
}

func (f *fakeCache) Get(_ context.Context, barcode string) (*domain.Product, error) {
	if p, ok := f.entries[barcode]; ok {
		return p, nil
	}
	return nil, domain.ErrCacheMiss
}

func (f *fakeCache) Set(_ context.Context, barcode string, product *domain.Product, ttl time.Duration) error {
	f.setCalls = append(f.setCalls, barcode)
	f.setTTL = ttl
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[barcode] = product
	return nil
}

func (f *fakeCache) Delete(_ context.Context, barcode string) error {
	delete(f.entries, barcode)
	return nil
}
