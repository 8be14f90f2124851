package usecase

import (
	"context"
	"log"
	"time"

	"github.com/ecoscorefinder/backend/internal/domain"
	"github.com/google/uuid"
)

// ShareService manages public, token-addressed batch comparison shares.
type ShareService struct {
	shares domain.BatchShareRepository
}

// NewShareService creates a share service with dependencies.
func NewShareService(shares domain.BatchShareRepository) *ShareService {
	return &ShareService{shares: shares}
}

// CreateShareInput carries the optional metadata for a new share.
type CreateShareInput struct {
	Title       string
	Description string
	Barcodes    []string
	ExpiresAt   *time.Time
}

// Create mints a unique token and saves the share.
func (s *ShareService) Create(ctx context.Context, userID uint, input CreateShareInput) (*domain.BatchShare, error) {
	if len(input.Barcodes) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	share := &domain.BatchShare{
		UserID:      userID,
		Token:       uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Barcodes:    input.Barcodes,
		ExpiresAt:   input.ExpiresAt,
	}

	if _, err := s.shares.Create(ctx, share); err != nil {
		return nil, err
	}
	return share, nil
}

// GetByToken resolves a public share token. Expired shares behave exactly
// like missing ones. Each successful resolution counts as a view.
func (s *ShareService) GetByToken(ctx context.Context, token string) (*domain.BatchShare, error) {
	share, err := s.shares.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if share.Expired(time.Now()) {
		return nil, domain.ErrShareNotFound
	}

	if err := s.shares.IncrementViews(ctx, share.ID); err != nil {
		log.Printf("[SHARE] Failed to count view for %s: %v", share.Token, err)
	} else {
		share.ViewCount++
	}

	return share, nil
}

// ListByUser returns the user's shares, newest first.
func (s *ShareService) ListByUser(ctx context.Context, userID uint) ([]domain.BatchShare, error) {
	return s.shares.ListByUser(ctx, userID)
}

// UpdateMetadata overwrites a share's title and description, owner-scoped.
func (s *ShareService) UpdateMetadata(ctx context.Context, id, userID uint, title, description string) error {
	shares, err := s.shares.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for i := range shares {
		if shares[i].ID == id {
			shares[i].Title = title
			shares[i].Description = description
			return s.shares.Update(ctx, &shares[i])
		}
	}
	return domain.ErrNotOwner
}

// Delete removes a share owned by the user.
func (s *ShareService) Delete(ctx context.Context, id, userID uint) error {
	return s.shares.Delete(ctx, id, userID)
}
