package store

import (
	"context"

	"github.com/footycentral/predict-api/internal/models"
)

// SeedVersion is the model version recorded with freshly seeded data.
const SeedVersion = "1.0.0"

// SeedPatterns returns the built-in pattern set used for first boot and
// /api/reset. Rates come from the historical backtest that shipped with the
// original extension.
func SeedPatterns() []models.Pattern {
	return []models.Pattern{
		{Name: "Ascending Trend", Status: "miss", MissRate: 65.5, Count: 120},
		{Name: "Descending Trend", Status: "miss", MissRate: 42.3, Count: 95},
		{Name: "W Bottom", Status: "miss", MissRate: 58.8, Count: 76},
		{Name: "Head and Shoulders", Status: "miss", MissRate: 72.1, Count: 50},
		{Name: "Triangle", Status: "miss", MissRate: 38.9, Count: 110},
		{Name: "Golden Ratio Retrace", Status: "success", SuccessRate: 78.5, Count: 200},
		{Name: "Bollinger Band Break", Status: "success", SuccessRate: 82.3, Count: 175},
		{Name: "RSI Extremes", Status: "success", SuccessRate: 71.2, Count: 150},
		{Name: "MACD Cross", Status: "success", SuccessRate: 65.8, Count: 128},
		{Name: "Moving Average Cross", Status: "success", SuccessRate: 88.4, Count: 220},
	}
}

// SeedIfEmpty writes the seed data when the pattern list has never been
// stored. Called once at startup.
func SeedIfEmpty(ctx context.Context, s Store, timestamp string) error {
	var existing []models.Pattern
	err := s.Load(ctx, KeyPatterns, &existing)
	if err == nil {
		return nil
	}
	if err != ErrNotFound {
		return err
	}
	if err := s.Save(ctx, KeyPatterns, SeedPatterns()); err != nil {
		return err
	}
	return s.Save(ctx, KeyVersion, models.VersionInfo{Version: SeedVersion, Timestamp: timestamp})
}
