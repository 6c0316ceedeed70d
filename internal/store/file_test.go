package store

import (
	"context"
	"testing"

	"github.com/footycentral/predict-api/internal/models"
)

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	var missing []models.Pattern
	if err := s.Load(ctx, KeyPatterns, &missing); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for fresh store, got %v", err)
	}

	in := []models.Pattern{
		{Name: "Triangle", Status: "miss", MissRate: 38.9, Count: 110},
	}
	if err := s.Save(ctx, KeyPatterns, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var out []models.Pattern
	if err := s.Load(ctx, KeyPatterns, &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Triangle" || out[0].Count != 110 {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := SeedIfEmpty(ctx, s, "2026-01-01T00:00:00"); err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}

	var patterns []models.Pattern
	if err := s.Load(ctx, KeyPatterns, &patterns); err != nil {
		t.Fatalf("Load after seed: %v", err)
	}
	if len(patterns) != len(SeedPatterns()) {
		t.Fatalf("expected %d seeded patterns, got %d", len(SeedPatterns()), len(patterns))
	}

	// Seeding must not clobber existing data
	custom := []models.Pattern{{Name: "Custom", Status: "success", SuccessRate: 50, Count: 1}}
	if err := s.Save(ctx, KeyPatterns, custom); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := SeedIfEmpty(ctx, s, "2026-01-02T00:00:00"); err != nil {
		t.Fatalf("second SeedIfEmpty: %v", err)
	}
	if err := s.Load(ctx, KeyPatterns, &patterns); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(patterns) != 1 || patterns[0].Name != "Custom" {
		t.Errorf("seed overwrote existing data: %+v", patterns)
	}
}
