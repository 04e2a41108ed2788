//go:build integration

package store

import (
	"context"
	"errors"
	"os"
	"testing"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	_, _ = s.pool.Exec(ctx, "TRUNCATE catalog_items")

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE catalog_items")
		s.Close()
	})

	return s
}

func TestSeedAndList(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if err := s.Seed(ctx, SeedCatalog()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	// seeding twice is a no-op
	if err := s.Seed(ctx, SeedCatalog()); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	items, err := s.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 7 {
		t.Fatalf("expected 7 items, got %d", len(items))
	}
	if items[2].Name != "ROG Strix G16CH" {
		t.Errorf("expected seed order preserved, got %s at position 2", items[2].Name)
	}
	if items[1].Specs["cpu"] != "Intel Core i7-13700HX" {
		t.Errorf("expected specs round-trip, got %v", items[1].Specs)
	}
	if items[1].Scores.Performance != 9.8 {
		t.Errorf("expected scores round-trip, got %+v", items[1].Scores)
	}
}

func TestAppendAndGet(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	if err := s.Seed(ctx, SeedCatalog()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	item := &Item{
		ID: 1700000000123, Brand: "AI Found", Name: "samsung (AI Result)", Price: 31000,
		Category: "Flagship Phone", Source: SourceDiscovery,
		Scores: Scores{Performance: 8.5, Battery: 7.5, Portability: 6, Display: 8, Features: 9},
	}
	if err := s.AppendItem(ctx, item); err != nil {
		t.Fatalf("AppendItem failed: %v", err)
	}

	got, err := s.GetItem(ctx, 1700000000123)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Source != SourceDiscovery {
		t.Errorf("expected source discovery, got %s", got.Source)
	}

	dup := &Item{ID: 2, Brand: "Dup", Name: "Dup", Source: SourceManual}
	if err := s.AppendItem(ctx, dup); err != nil {
		t.Fatalf("AppendItem dup failed: %v", err)
	}
	if dup.ID != 1700000000124 {
		t.Errorf("expected reassigned id 1700000000124, got %d", dup.ID)
	}

	items, _ := s.ListItems(ctx)
	if items[len(items)-1].ID != dup.ID {
		t.Error("expected appended items at the end")
	}
}

func TestGetMissingItem(t *testing.T) {
	s := setupTestDB(t)
	_, err := s.GetItem(context.Background(), 999)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}
