package database

import (
	"context"
	"errors"

	"github.com/ecoscorefinder/backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository is the gorm-backed products table.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByBarcode fetches a single product row by its unique barcode.
func (r *ProductRepository) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// GetByID fetches a single product row by surrogate ID.
func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// GetByIDs fetches product rows for a set of IDs; unknown IDs are skipped.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []uint) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	var products []domain.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Search runs a LIKE match over product names.
func (r *ProductRepository) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+query+"%").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Upsert inserts or overwrites the row keyed by product.Barcode. The write
// is a single ON DUPLICATE KEY statement, so concurrent upserts on the same
// barcode are idempotent with last-write-wins semantics.
func (r *ProductRepository) Upsert(ctx context.Context, product *domain.Product) (uint, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "barcode"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "brand", "category",
			"eco_score", "eco_score_grade",
			"environmental_footprint", "packaging_sustainability", "carbon_impact",
			"image_url", "price", "country",
			"last_updated",
		}),
	}).Create(product).Error
	if err != nil {
		return 0, err
	}

	if product.ID == 0 {
		// MySQL does not report the existing row's ID on duplicate-key
		// updates, so re-read it.
		existing, err := r.GetByBarcode(ctx, product.Barcode)
		if err != nil {
			return 0, err
		}
		product.ID = existing.ID
	}

	return product.ID, nil
}
