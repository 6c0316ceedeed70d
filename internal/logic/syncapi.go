package logic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/footycentral/predict-api/internal/models"
	"github.com/footycentral/predict-api/internal/store"
)

type syncService struct {
	store  store.Store
	logger *zap.SugaredLogger
}

func NewSyncService(st store.Store, logger *zap.Logger) SyncService {
	return &syncService{store: st, logger: logger.Sugar()}
}

func (s *syncService) patterns(ctx context.Context) ([]models.Pattern, error) {
	var patterns []models.Pattern
	err := s.store.Load(ctx, store.KeyPatterns, &patterns)
	if err == store.ErrNotFound {
		return store.SeedPatterns(), nil
	}
	return patterns, err
}

func (s *syncService) version(ctx context.Context) models.VersionInfo {
	v := models.VersionInfo{Version: store.SeedVersion, Timestamp: isoNow()}
	if err := s.store.Load(ctx, store.KeyVersion, &v); err != nil && err != store.ErrNotFound {
		s.logger.Errorw("Failed to load version info", "error", err)
	}
	return v
}

func (s *syncService) Status(ctx context.Context) (models.VersionInfo, int, int, int, error) {
	patterns, err := s.patterns(ctx)
	if err != nil {
		return models.VersionInfo{}, 0, 0, 0, err
	}
	var success, miss int
	for _, p := range patterns {
		switch p.Status {
		case "success":
			success++
		case "miss":
			miss++
		}
	}
	return s.version(ctx), len(patterns), success, miss, nil
}

func (s *syncService) Download(ctx context.Context) ([]models.Pattern, models.VersionInfo, error) {
	patterns, err := s.patterns(ctx)
	if err != nil {
		return nil, models.VersionInfo{}, err
	}
	return patterns, s.version(ctx), nil
}

// Upload replaces the stored pattern list and version wholesale.
func (s *syncService) Upload(ctx context.Context, up models.PatternUpload) (int, error) {
	if err := s.store.Save(ctx, store.KeyPatterns, up.Patterns); err != nil {
		return 0, err
	}
	version := up.Version
	if version == "" {
		version = store.SeedVersion
	}
	timestamp := up.Timestamp
	if timestamp == "" {
		timestamp = isoNow()
	}
	if err := s.store.Save(ctx, store.KeyVersion, models.VersionInfo{Version: version, Timestamp: timestamp}); err != nil {
		return 0, err
	}
	s.logger.Infow("Stored uploaded patterns", "count", len(up.Patterns), "version", version)
	return len(up.Patterns), nil
}

func (s *syncService) All(ctx context.Context) ([]models.Pattern, error) {
	return s.patterns(ctx)
}

func (s *syncService) ByIndex(ctx context.Context, idx int) (models.Pattern, error) {
	patterns, err := s.patterns(ctx)
	if err != nil {
		return models.Pattern{}, err
	}
	if idx < 0 || idx >= len(patterns) {
		return models.Pattern{}, &BadRequest{Msg: fmt.Sprintf("pattern %d not found", idx)}
	}
	return patterns[idx], nil
}

// Insights lists the top-5 miss and success patterns. Rates in the flat list
// are already percentages, unlike the synced tables.
func (s *syncService) Insights(ctx context.Context) (*models.ModelInsights, error) {
	patterns, err := s.patterns(ctx)
	if err != nil {
		return nil, err
	}

	var miss, success []models.Pattern
	for _, p := range patterns {
		switch p.Status {
		case "miss":
			miss = append(miss, p)
		case "success":
			success = append(success, p)
		}
	}
	sort.Slice(miss, func(i, j int) bool { return miss[i].MissRate > miss[j].MissRate })
	sort.Slice(success, func(i, j int) bool { return success[i].SuccessRate > success[j].SuccessRate })

	out := &models.ModelInsights{
		ModelVersion:         s.version(ctx).Version,
		TotalWarningPatterns: len(miss),
		TotalSuccessPatterns: len(success),
		TS:                   time.Now().Format("2006-01-02 15:04:05"),
	}
	for _, p := range top5(miss) {
		out.TopMissPatterns = append(out.TopMissPatterns, models.InsightEntry{
			Name: p.Name, MissRate: fmt.Sprintf("%.1f%%", p.MissRate), Total: p.Count,
		})
	}
	for _, p := range top5(success) {
		out.TopSuccessPatterns = append(out.TopSuccessPatterns, models.InsightEntry{
			Name: p.Name, SuccessRate: fmt.Sprintf("%.1f%%", p.SuccessRate), Total: p.Count,
		})
	}
	return out, nil
}

func (s *syncService) Reset(ctx context.Context) error {
	if err := s.store.Save(ctx, store.KeyPatterns, store.SeedPatterns()); err != nil {
		return err
	}
	return s.store.Save(ctx, store.KeyVersion, models.VersionInfo{Version: store.SeedVersion, Timestamp: isoNow()})
}

func top5(patterns []models.Pattern) []models.Pattern {
	if len(patterns) > 5 {
		return patterns[:5]
	}
	return patterns
}

func isoNow() string {
	return time.Now().Format("2006-01-02T15:04:05")
}
