package usecase

import (
	"context"

	"github.com/ecoscorefinder/backend/internal/domain"
)

// PreferenceService manages per-user settings.
type PreferenceService struct {
	preferences domain.PreferenceRepository
}

// NewPreferenceService creates a preference service with dependencies.
func NewPreferenceService(preferences domain.PreferenceRepository) *PreferenceService {
	return &PreferenceService{preferences: preferences}
}

// Get returns the user's preferences, creating the default row on first
// access.
func (s *PreferenceService) Get(ctx context.Context, userID uint) (*domain.UserPreferences, error) {
	prefs, err := s.preferences.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs != nil {
		return prefs, nil
	}

	defaults := &domain.UserPreferences{
		UserID:                     userID,
		EnablePriceDropAlerts:      true,
		EnableNewAlternativeAlerts: true,
		PriceDropThresholdPercent:  10,
		MinEcoScore:                50,
	}
	if err := s.preferences.Upsert(ctx, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

// PreferenceUpdate carries a partial preference change; nil fields are left
// untouched.
type PreferenceUpdate struct {
	EnablePriceDropAlerts      *bool
	EnableNewAlternativeAlerts *bool
	PriceDropThresholdPercent  *float64
	PreferredCategories        []string
	MinEcoScore                *int
}

// Update applies a partial change over the stored (or default) preferences.
func (s *PreferenceService) Update(ctx context.Context, userID uint, update PreferenceUpdate) (*domain.UserPreferences, error) {
	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.EnablePriceDropAlerts != nil {
		prefs.EnablePriceDropAlerts = *update.EnablePriceDropAlerts
	}
	if update.EnableNewAlternativeAlerts != nil {
		prefs.EnableNewAlternativeAlerts = *update.EnableNewAlternativeAlerts
	}
	if update.PriceDropThresholdPercent != nil {
		prefs.PriceDropThresholdPercent = *update.PriceDropThresholdPercent
	}
	if update.PreferredCategories != nil {
		prefs.PreferredCategories = update.PreferredCategories
	}
	if update.MinEcoScore != nil {
		prefs.MinEcoScore = *update.MinEcoScore
	}

	if err := s.preferences.Upsert(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
