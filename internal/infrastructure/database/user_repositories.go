package database

import (
	"context"
	"errors"
	"time"

	"github.com/ecoscorefinder/backend/internal/domain"
	"gorm.io/gorm"
)

// FavoriteRepository is the gorm-backed favorites table.
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a favorite repository.
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// ListProducts returns the product rows a user has favorited.
func (r *FavoriteRepository) ListProducts(ctx context.Context, userID uint) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ?", userID).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Add saves a favorite. Adding an existing favorite returns its ID.
func (r *FavoriteRepository) Add(ctx context.Context, userID, productID uint, notes string) (uint, error) {
	var existing domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	favorite := domain.Favorite{UserID: userID, ProductID: productID, Notes: notes}
	if err := r.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		return 0, err
	}
	return favorite.ID, nil
}

// Remove deletes a favorite. Removing a non-existent favorite is a no-op.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, productID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.Favorite{}).Error
}

// Exists reports whether the user has favorited the product.
func (r *FavoriteRepository) Exists(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ComparisonRepository is the gorm-backed comparisons table.
type ComparisonRepository struct {
	db *gorm.DB
}

// NewComparisonRepository creates a comparison repository.
func NewComparisonRepository(db *gorm.DB) *ComparisonRepository {
	return &ComparisonRepository{db: db}
}

// ListByUser returns a user's comparisons.
func (r *ComparisonRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Comparison, error) {
	var comparisons []domain.Comparison
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&comparisons).Error
	if err != nil {
		return nil, err
	}
	return comparisons, nil
}

// Create saves a comparison and returns its ID.
func (r *ComparisonRepository) Create(ctx context.Context, comparison *domain.Comparison) (uint, error) {
	if err := r.db.WithContext(ctx).Create(comparison).Error; err != nil {
		return 0, err
	}
	return comparison.ID, nil
}

// Delete removes a comparison, scoped to its owner.
func (r *ComparisonRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Comparison{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotOwner
	}
	return nil
}

// BatchShareRepository is the gorm-backed batch_shares table.
type BatchShareRepository struct {
	db *gorm.DB
}

// NewBatchShareRepository creates a batch share repository.
func NewBatchShareRepository(db *gorm.DB) *BatchShareRepository {
	return &BatchShareRepository{db: db}
}

// Create saves a share and returns its ID.
func (r *BatchShareRepository) Create(ctx context.Context, share *domain.BatchShare) (uint, error) {
	if err := r.db.WithContext(ctx).Create(share).Error; err != nil {
		return 0, err
	}
	return share.ID, nil
}

// GetByToken fetches a share by its public token.
func (r *BatchShareRepository) GetByToken(ctx context.Context, token string) (*domain.BatchShare, error) {
	var share domain.BatchShare
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShareNotFound
		}
		return nil, err
	}
	return &share, nil
}

// ListByUser returns a user's shares, newest first.
func (r *BatchShareRepository) ListByUser(ctx context.Context, userID uint) ([]domain.BatchShare, error) {
	var shares []domain.BatchShare
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// Update overwrites a share's mutable fields.
func (r *BatchShareRepository) Update(ctx context.Context, share *domain.BatchShare) error {
	return r.db.WithContext(ctx).Save(share).Error
}

// Delete removes a share, scoped to its owner.
func (r *BatchShareRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.BatchShare{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotOwner
	}
	return nil
}

// IncrementViews bumps the view counter atomically in the database.
func (r *BatchShareRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&domain.BatchShare{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// PreferenceRepository is the gorm-backed user_preferences table.
type PreferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a preference repository.
func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetByUser fetches a user's preferences, or nil when none exist yet.
func (r *PreferenceRepository) GetByUser(ctx context.Context, userID uint) (*domain.UserPreferences, error) {
	var prefs domain.UserPreferences
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

// Upsert creates or overwrites a user's preference row.
func (r *PreferenceRepository) Upsert(ctx context.Context, prefs *domain.UserPreferences) error {
	existing, err := r.GetByUser(ctx, prefs.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		prefs.ID = existing.ID
		prefs.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(prefs).Error
	}
	return r.db.WithContext(ctx).Create(prefs).Error
}

// NotificationRepository is the gorm-backed notifications table.
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a notification repository.
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create saves a notification and returns its ID.
func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) (uint, error) {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return 0, err
	}
	return notification.ID, nil
}

// ListByUser returns a user's notifications, optionally only unsent ones.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint, unsentOnly bool) ([]domain.Notification, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unsentOnly {
		query = query.Where("sent = ?", false)
	}
	var notifications []domain.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkSent flags a notification as delivered.
func (r *NotificationRepository) MarkSent(ctx context.Context, id uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"sent": true, "sent_at": now}).Error
}
