package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ecoscorefinder/backend/internal/domain"
)

// cacheItem represents a single item in the cache with expiration
type cacheItem struct {
	Data       []byte
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory product cache with TTL support
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Start cleanup goroutine to remove expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a product from the cache
func (c *MemoryCache) Get(ctx context.Context, barcode string) (*domain.Product, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[barcode]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	var product domain.Product
	if err := json.Unmarshal(item.Data, &product); err != nil {
		return nil, domain.ErrCacheMiss
	}

	return &product, nil
}

// Set stores a product in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, barcode string, product *domain.Product, ttl time.Duration) error {
	// Serialize to JSON so memory and Redis backends behave identically.
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[barcode] = cacheItem{
		Data:       data,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a product from the cache
func (c *MemoryCache) Delete(ctx context.Context, barcode string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, barcode)
	return nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.Expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
