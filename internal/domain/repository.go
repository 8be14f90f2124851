package domain

import (
	"context"
	"time"
)

// ProductSource defines the interface for the upstream product database.
type ProductSource interface {
	// FetchProduct resolves a single product by barcode. Returns
	// ErrProductNotFound when the source has no such product; transport and
	// parse failures wrap ErrSourceUnavailable.
	FetchProduct(ctx context.Context, barcode string) (*Product, error)

	// SearchProducts runs a free-text search. An empty slice (not an error)
	// means the source found nothing.
	SearchProducts(ctx context.Context, query string, limit int) ([]Product, error)
}

// ProductCache defines the interface for the TTL product cache.
type ProductCache interface {
	Get(ctx context.Context, barcode string) (*Product, error)
	Set(ctx context.Context, barcode string, product *Product, ttl time.Duration) error
	Delete(ctx context.Context, barcode string) error
}

// ProductRepository is the persistent products table, treated purely as a
// unique-key upsert/lookup store.
type ProductRepository interface {
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetByIDs(ctx context.Context, ids []uint) ([]Product, error)
	Search(ctx context.Context, query string, limit int) ([]Product, error)
	// Upsert inserts or overwrites the row for product.Barcode. Must be
	// idempotent under concurrent calls on the same barcode (last write wins).
	Upsert(ctx context.Context, product *Product) (uint, error)
}

// FavoriteRepository persists user favorites.
type FavoriteRepository interface {
	ListProducts(ctx context.Context, userID uint) ([]Product, error)
	Add(ctx context.Context, userID, productID uint, notes string) (uint, error)
	Remove(ctx context.Context, userID, productID uint) error
	Exists(ctx context.Context, userID, productID uint) (bool, error)
}

// ComparisonRepository persists user comparisons.
type ComparisonRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]Comparison, error)
	Create(ctx context.Context, comparison *Comparison) (uint, error)
	Delete(ctx context.Context, id, userID uint) error
}

// BatchShareRepository persists shareable batch comparison snapshots.
type BatchShareRepository interface {
	Create(ctx context.Context, share *BatchShare) (uint, error)
	GetByToken(ctx context.Context, token string) (*BatchShare, error)
	ListByUser(ctx context.Context, userID uint) ([]BatchShare, error)
	Update(ctx context.Context, share *BatchShare) error
	Delete(ctx context.Context, id, userID uint) error
	IncrementViews(ctx context.Context, id uint) error
}

// PreferenceRepository persists per-user preferences.
type PreferenceRepository interface {
	GetByUser(ctx context.Context, userID uint) (*UserPreferences, error)
	Upsert(ctx context.Context, prefs *UserPreferences) error
}

// NotificationRepository persists user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) (uint, error)
	ListByUser(ctx context.Context, userID uint, unsentOnly bool) ([]Notification, error)
	MarkSent(ctx context.Context, id uint) error
}

// ChatMessage is one turn of an LLM conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMClient defines the interface for the hosted language model used for
// recommendation text.
type LLMClient interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}
