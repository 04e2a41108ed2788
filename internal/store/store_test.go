package store

import (
	"context"
	"errors"
	"testing"
)

func TestSeedCatalogOrder(t *testing.T) {
	seed := SeedCatalog()
	expected := []int64{1, 2, 9, 10, 3, 5, 7}
	if len(seed) != len(expected) {
		t.Fatalf("expected %d seed items, got %d", len(expected), len(seed))
	}
	for i, id := range expected {
		if seed[i].ID != id {
			t.Errorf("position %d: expected id %d, got %d", i, id, seed[i].ID)
		}
	}
}

func TestSeedCatalogScoresInRange(t *testing.T) {
	for _, it := range SeedCatalog() {
		for name, v := range map[string]float64{
			"performance": it.Scores.Performance, "battery": it.Scores.Battery,
			"portability": it.Scores.Portability, "display": it.Scores.Display,
			"features": it.Scores.Features,
		} {
			if v < 0 || v > 10 {
				t.Errorf("%s: %s score %f out of range", it.Name, name, v)
			}
		}
		if it.Price < 0 {
			t.Errorf("%s: negative price", it.Name)
		}
	}
}

func TestMemoryStoreListPreservesOrder(t *testing.T) {
	s := NewMemoryStore(SeedCatalog())
	items, err := s.ListItems(context.Background())
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if items[0].Name != "MacBook Air M3" || items[len(items)-1].Name != "TUF Gaming F15" {
		t.Errorf("unexpected order: first=%s last=%s", items[0].Name, items[len(items)-1].Name)
	}
	for _, it := range items {
		if it.Source != SourceCatalog {
			t.Errorf("expected source %q, got %q", SourceCatalog, it.Source)
		}
	}
}

func TestMemoryStoreAppend(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(SeedCatalog())

	item := &Item{ID: 1700000000000, Brand: "AI Found", Name: "rtx (AI Result)", Price: 30000, Category: "Imported Laptop"}
	if err := s.AppendItem(ctx, item); err != nil {
		t.Fatalf("AppendItem failed: %v", err)
	}
	items, _ := s.ListItems(ctx)
	if len(items) != 8 {
		t.Fatalf("expected 8 items, got %d", len(items))
	}
	if items[7].ID != 1700000000000 {
		t.Errorf("expected appended item last, got id %d", items[7].ID)
	}
}

func TestMemoryStoreAppendCollidingID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(SeedCatalog())

	item := &Item{ID: 2, Brand: "Dup", Name: "Dup"}
	if err := s.AppendItem(ctx, item); err != nil {
		t.Fatalf("AppendItem failed: %v", err)
	}
	if item.ID != 11 {
		t.Errorf("expected reassigned id 11, got %d", item.ID)
	}
	got, err := s.GetItem(ctx, 2)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Name != "Legion Pro 5" {
		t.Errorf("original item was overwritten: %s", got.Name)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore(nil)
	_, err := s.GetItem(context.Background(), 42)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(SeedCatalog())
	items, _ := s.ListItems(ctx)
	items[0].Specs["cpu"] = "tampered"
	items[0].Name = "tampered"

	got, _ := s.GetItem(ctx, 1)
	if got.Name != "MacBook Air M3" || got.Specs["cpu"] != "Apple M3 Chip (8-core)" {
		t.Error("store item mutated through returned copy")
	}
}

func TestSpecLabelsSorted(t *testing.T) {
	it := Item{Specs: map[string]string{"ram": "8GB", "cpu": "A17", "weight": "1kg"}}
	labels := it.SpecLabels()
	expected := []string{"cpu", "ram", "weight"}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, labels)
			break
		}
	}
}

func TestItemValidate(t *testing.T) {
	for _, it := range SeedCatalog() {
		if err := it.Validate(); err != nil {
			t.Errorf("seed item %d: %v", it.ID, err)
		}
	}

	bad := []Item{
		{Name: " ", Price: 100},
		{Name: "x", Price: -1},
		{Name: "x", Scores: Scores{Performance: 10.5}},
		{Name: "x", Scores: Scores{Features: -0.1}},
	}
	for i, it := range bad {
		if err := it.Validate(); !errors.Is(err, ErrInvalidItem) {
			t.Errorf("case %d: expected ErrInvalidItem, got %v", i, err)
		}
	}
}
