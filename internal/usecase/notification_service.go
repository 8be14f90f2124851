package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/ecoscorefinder/backend/internal/domain"
)

// NotificationService records user-facing alert messages. Actual delivery
// (email, push) is a separate concern handled outside this service.
type NotificationService struct {
	notifications domain.NotificationRepository
	preferences   domain.PreferenceRepository
}

// NewNotificationService creates a notification service with dependencies.
func NewNotificationService(
	notifications domain.NotificationRepository,
	preferences domain.PreferenceRepository,
) *NotificationService {
	return &NotificationService{notifications: notifications, preferences: preferences}
}

// NotifyPriceDrop records a price-drop alert, honoring the user's opt-out.
func (s *NotificationService) NotifyPriceDrop(ctx context.Context, userID uint, product *domain.Product, oldPrice, newPrice, discountPercent float64) (bool, error) {
	prefs, err := s.preferences.GetByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if prefs != nil && !prefs.EnablePriceDropAlerts {
		return false, nil
	}
	if prefs != nil && discountPercent < prefs.PriceDropThresholdPercent {
		return false, nil
	}

	message := fmt.Sprintf("%s is now %.2f (was %.2f) - %.0f%% off!",
		product.Name, newPrice, oldPrice, discountPercent)

	_, err = s.notifications.Create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationPriceDrop,
		ProductID: &product.ID,
		Message:   message,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// NotifyNewAlternative records a new-alternative alert, honoring the user's
// opt-out.
func (s *NotificationService) NotifyNewAlternative(ctx context.Context, userID uint, original, alternative *domain.Product) (bool, error) {
	prefs, err := s.preferences.GetByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if prefs != nil && !prefs.EnableNewAlternativeAlerts {
		return false, nil
	}

	message := fmt.Sprintf("New eco-friendly alternative found! %s (Score: %d/100) is similar to %s",
		alternative.Name, alternative.EcoScoreValue(), original.Name)

	_, err = s.notifications.Create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationNewAlternative,
		ProductID: &alternative.ID,
		Message:   message,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// NotifyRecommendation records a recommendation message for the user.
func (s *NotificationService) NotifyRecommendation(ctx context.Context, userID uint, productID *uint, message string) (uint, error) {
	if message == "" {
		return 0, domain.ErrInvalidRequest
	}
	return s.notifications.Create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationRecommendation,
		ProductID: productID,
		Message:   message,
	})
}

// ProcessPending marks the user's unsent notifications as delivered and
// returns how many were processed. A notification that fails to flip stays
// pending for the next run.
func (s *NotificationService) ProcessPending(ctx context.Context, userID uint) (int, error) {
	pending, err := s.notifications.ListByUser(ctx, userID, true)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, n := range pending {
		if err := s.notifications.MarkSent(ctx, n.ID); err != nil {
			log.Printf("[NOTIFY] Failed to mark %d sent: %v", n.ID, err)
			continue
		}
		processed++
	}
	return processed, nil
}

// List returns a user's notifications, optionally restricted to unsent ones.
func (s *NotificationService) List(ctx context.Context, userID uint, unsentOnly bool) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, unsentOnly)
}

// MarkSent flags a notification as delivered.
func (s *NotificationService) MarkSent(ctx context.Context, id uint) error {
	return s.notifications.MarkSent(ctx, id)
}
