package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecoscorefinder/backend/internal/domain"
)

// fakeShareRepo is an in-memory domain.BatchShareRepository.
type fakeShareRepo struct {
	shares       map[uint]*domain.BatchShare
	nextID       uint
	incrementErr error
}

func newFakeShareRepo() *fakeShareRepo {
	return &fakeShareRepo{shares: make(map[uint]*domain.BatchShare)}
}

func (f *fakeShareRepo) Create(_ context.Context, share *domain.BatchShare) (uint, error) {
	f.nextID++
	share.ID = f.nextID
	stored := *share
	f.shares[share.ID] = &stored
	return share.ID, nil
}

func (f *fakeShareRepo) GetByToken(_ context.Context, token string) (*domain.BatchShare, error) {
	for _, share := range f.shares {
		if share.Token == token {
			copied := *share
			return &copied, nil
		}
	}
	return nil, domain.ErrShareNotFound
}

func (f *fakeShareRepo) ListByUser(_ context.Context, userID uint) ([]domain.BatchShare, error) {
	var out []domain.BatchShare
	for _, share := range f.shares {
		if share.UserID == userID {
			out = append(out, *share)
		}
	}
	return out, nil
}

func (f *fakeShareRepo) Update(_ context.Context, share *domain.BatchShare) error {
	stored := *share
	f.shares[share.ID] = &stored
	return nil
}

func (f *fakeShareRepo) Delete(_ context.Context, id, userID uint) error {
	share, ok := f.shares[id]
	if !ok || share.UserID != userID {
		return domain.ErrNotOwner
	}
	delete(f.shares, id)
	return nil
}

func (f *fakeShareRepo) IncrementViews(_ context.Context, id uint) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	if share, ok := f.shares[id]; ok {
		share.ViewCount++
	}
	return nil
}

func TestShareCreate_MintsUniqueTokens(t *testing.T) {
	repo := newFakeShareRepo()
	service := NewShareService(repo)

	first, err := service.Create(context.Background(), 1, CreateShareInput{Barcodes: []string{"111"}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := service.Create(context.Background(), 1, CreateShareInput{Barcodes: []string{"222"}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if first.Token == "" || second.Token == "" {
		t.Fatal("expected non-empty tokens")
	}
	if first.Token == second.Token {
		t.Errorf("both shares got token %s, want unique tokens", first.Token)
	}
}

func TestShareCreate_RequiresBarcodes(t *testing.T) {
	service := NewShareService(newFakeShareRepo())

	_, err := service.Create(context.Background(), 1, CreateShareInput{Title: "Empty"})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("got error %v, want ErrInvalidRequest", err)
	}
}

func TestShareGetByToken_CountsViews(t *testing.T) {
	repo := newFakeShareRepo()
	service := NewShareService(repo)

	created, err := service.Create(context.Background(), 1, CreateShareInput{Barcodes: []string{"111"}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	for want := 1; want <= 3; want++ {
		got, err := service.GetByToken(context.Background(), created.Token)
		if err != nil {
			t.Fatalf("GetByToken returned error: %v", err)
		}
		if got.ViewCount != want {
			t.Errorf("view count = %d, want %d", got.ViewCount, want)
		}
	}
}

func TestShareGetByToken_ExpiredBehavesLikeMissing(t *testing.T) {
	repo := newFakeShareRepo()
	service := NewShareService(repo)

	expired := time.Now().Add(-time.Minute)
	created, err := service.Create(context.Background(), 1, CreateShareInput{Barcodes: []string{"111"}, ExpiresAt: &expired})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err = service.GetByToken(context.Background(), created.Token)
	if !errors.Is(err, domain.ErrShareNotFound) {
		t.Errorf("got error %v, want ErrShareNotFound", err)
	}
}

func TestShareGetByToken_ViewCountFailureStillResolves(t *testing.T) {
	repo := newFakeShareRepo()
	service := NewShareService(repo)

	created, err := service.Create(context.Background(), 1, CreateShareInput{Barcodes: []string{"111"}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	repo.incrementErr = errors.New("table locked")

	got, err := service.GetByToken(context.Background(), created.Token)
	if err != nil {
		t.Fatalf("GetByToken returned error: %v", err)
	}
	if got.ViewCount != 0 {
		t.Errorf("view count = %d, want 0 when counting fails", got.ViewCount)
	}
}

func TestShareUpdateMetadata(t *testing.T) {
	repo := newFakeShareRepo()
	service := NewShareService(repo)

	created, err := service.Create(context.Background(), 1, CreateShareInput{Title: "Old", Barcodes: []string{"111"}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	t.Run("owner can update", func(t *testing.T) {
		if err := service.UpdateMetadata(context.Background(), created.ID, 1, "New", "Updated"); err != nil {
			t.Fatalf("UpdateMetadata returned error: %v", err)
		}
		got, err := service.GetByToken(context.Background(), created.Token)
		if err != nil {
			t.Fatalf("GetByToken returned error: %v", err)
		}
		if got.Title != "New" || got.Description != "Updated" {
			t.Errorf("got title %q description %q, want the updated metadata", got.Title, got.Description)
		}
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		err := service.UpdateMetadata(context.Background(), created.ID, 2, "Hijacked", "")
		if !errors.Is(err, domain.ErrNotOwner) {
			t.Errorf("got error %v, want ErrNotOwner", err)
		}
	})
}

func TestShareDelete_OwnerScoped(t *testing.T) {
	repo := newFakeShareRepo()
	service := NewShareService(repo)

	created, err := service.Create(context.Background(), 1, CreateShareInput{Barcodes: []string{"111"}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := service.Delete(context.Background(), created.ID, 2); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("got error %v, want ErrNotOwner for a non-owner delete", err)
	}
	if err := service.Delete(context.Background(), created.ID, 1); err != nil {
		t.Errorf("owner delete returned error: %v", err)
	}
}
