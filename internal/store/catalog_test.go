package store

import (
	"testing"
	"time"

	"github.com/hollyoak/starjar/internal/model"
)

func TestCatalogCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	s := NewCatalogStore(db)

	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	item, err := s.Create(model.RewardItem{
		Title:      "Lego rocket",
		AgeGroup:   model.AgeTween,
		Interests:  []string{"lego", "space"},
		Category:   "toys",
		PricePence: intPtr(1299),
		Popularity: 0.7,
		CreatedAt:  created,
	})
	if err != nil {
		t.Fatalf("create reward: %v", err)
	}
	if item.PricePence == nil || *item.PricePence != 1299 {
		t.Errorf("price = %v, want 1299", item.PricePence)
	}
	if !item.CreatedAt.Equal(created) {
		t.Errorf("created_at = %s, want %s", item.CreatedAt, created)
	}
	if item.Blocked {
		t.Error("new item should not be blocked")
	}
}

func TestCatalogZeroCreatedAtDefaultsToNow(t *testing.T) {
	db := setupTestDB(t)
	s := NewCatalogStore(db)

	item, err := s.Create(model.RewardItem{Title: "Sticker pack", AgeGroup: model.AgeAll})
	if err != nil {
		t.Fatalf("create reward: %v", err)
	}
	if item.CreatedAt.IsZero() {
		t.Error("created_at should default to now")
	}
	if item.PricePence != nil {
		t.Errorf("expected nil price, got %v", item.PricePence)
	}
}

func TestCatalogListOrderedByID(t *testing.T) {
	db := setupTestDB(t)
	s := NewCatalogStore(db)

	for _, title := range []string{"first", "second", "third"} {
		if _, err := s.Create(model.RewardItem{Title: title, AgeGroup: model.AgeAll}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	items, err := s.List()
	if err != nil {
		t.Fatalf("list rewards: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].ID <= items[i-1].ID {
			t.Errorf("list not in id order at %d: %d then %d", i, items[i-1].ID, items[i].ID)
		}
	}
}
