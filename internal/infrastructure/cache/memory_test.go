package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoscorefinder/backend/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	stored := &domain.Product{
		Barcode:       "4006381333931",
		Name:          "Test Chips",
		EcoScore:      intPtr(72),
		EcoScoreGrade: "B",
		Price:         "5.50",
	}

	require.NoError(t, cache.Set(ctx, stored.Barcode, stored, time.Minute))

	got, err := cache.Get(ctx, stored.Barcode)
	require.NoError(t, err)
	assert.Equal(t, stored.Name, got.Name)
	require.NotNil(t, got.EcoScore)
	assert.Equal(t, 72, *got.EcoScore)
	assert.Equal(t, "5.50", got.Price)
}

func TestMemoryCache_MissingKey(t *testing.T) {
	cache := NewMemoryCache()

	_, err := cache.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	product := &domain.Product{Barcode: "111", Name: "Short Lived"}
	require.NoError(t, cache.Set(ctx, product.Barcode, product, 10*time.Millisecond))

	_, err := cache.Get(ctx, product.Barcode)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = cache.Get(ctx, product.Barcode)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	product := &domain.Product{Barcode: "111", Name: "Doomed"}
	require.NoError(t, cache.Set(ctx, product.Barcode, product, time.Minute))
	require.NoError(t, cache.Delete(ctx, product.Barcode))

	_, err := cache.Get(ctx, product.Barcode)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Overwrite(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "111", &domain.Product{Barcode: "111", Name: "First"}, time.Minute))
	require.NoError(t, cache.Set(ctx, "111", &domain.Product{Barcode: "111", Name: "Second"}, time.Minute))

	got, err := cache.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)
	assert.Equal(t, 1, cache.Size())
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		barcode := fmt.Sprintf("%013d", i)
		require.NoError(t, cache.Set(ctx, barcode, &domain.Product{Barcode: barcode}, time.Minute))
	}
	assert.Equal(t, 5, cache.Size())

	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			barcode := fmt.Sprintf("%013d", n%10)
			_ = cache.Set(ctx, barcode, &domain.Product{Barcode: barcode}, time.Minute)
			_, _ = cache.Get(ctx, barcode)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, cache.Size())
}

func TestMemoryCache_StoredCopyIsIsolated(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	original := &domain.Product{Barcode: "111", Name: "Original"}
	require.NoError(t, cache.Set(ctx, original.Barcode, original, time.Minute))

	// Mutating the caller's struct must not reach the cached copy.
	original.Name = "Mutated"

	got, err := cache.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Name)
}
