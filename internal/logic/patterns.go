package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/footycentral/predict-api/internal/feature"
	"github.com/footycentral/predict-api/internal/models"
	"github.com/footycentral/predict-api/internal/store"
)

type patternService struct {
	mu      sync.RWMutex
	miss    models.PatternTable
	success models.PatternTable
	store   store.Store
	logger  *zap.SugaredLogger
}

// NewPatternService restores any persisted tables and returns the service
// owning the in-memory copies.
func NewPatternService(ctx context.Context, st store.Store, logger *zap.Logger) PatternService {
	s := &patternService{
		miss:    models.PatternTable{},
		success: models.PatternTable{},
		store:   st,
		logger:  logger.Sugar(),
	}
	if err := st.Load(ctx, store.KeyMissDB, &s.miss); err != nil && err != store.ErrNotFound {
		s.logger.Errorw("Failed to restore miss pattern table", "error", err)
	}
	if err := st.Load(ctx, store.KeySuccessDB, &s.success); err != nil && err != store.ErrNotFound {
		s.logger.Errorw("Failed to restore success pattern table", "error", err)
	}
	return s
}

func (s *patternService) SyncMiss(ctx context.Context, payload map[string]json.RawMessage) (*models.SyncResponse, error) {
	return s.sync(ctx, payload, "warningRules", store.KeyMissDB, &s.miss)
}

func (s *patternService) SyncSuccess(ctx context.Context, payload map[string]json.RawMessage) (*models.SyncResponse, error) {
	return s.sync(ctx, payload, "successRules", store.KeySuccessDB, &s.success)
}

// sync replaces a table wholesale. An empty object is acknowledged but does
// not overwrite: clients occasionally flush empty state on startup and losing
// the previous table to that is worse than skipping the write.
func (s *patternService) sync(ctx context.Context, payload map[string]json.RawMessage, field, key string, table *models.PatternTable) (*models.SyncResponse, error) {
	raw, ok := feature.NormalizeRaw(payload, feature.FieldMapping[field])
	if !ok {
		return nil, &BadRequest{Msg: fmt.Sprintf("Missing %s in request body", field)}
	}

	incoming := models.PatternTable{}
	if err := json.Unmarshal(raw, &incoming); err != nil {
		return nil, &BadRequest{Msg: fmt.Sprintf("%s must be an object", field)}
	}

	if len(incoming) == 0 {
		s.logger.Warnw("Received empty pattern table, keeping previous state", "field", field)
		return &models.SyncResponse{OK: true, Warning: "Empty " + field, StoredPatterns: 0}, nil
	}

	s.mu.Lock()
	*table = incoming
	s.mu.Unlock()

	if err := s.store.Save(ctx, key, incoming); err != nil {
		s.logger.Errorw("Failed to persist pattern table", "error", err, "key", key)
	}
	s.logger.Infow("Synced pattern table", "field", field, "patterns", len(incoming))

	return &models.SyncResponse{OK: true, StoredPatterns: len(incoming), Timestamp: Timestamp()}, nil
}

func (s *patternService) Tables() (models.PatternTable, models.PatternTable) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.miss, s.success
}

func (s *patternService) Counts() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.miss), len(s.success)
}

// Insights lists the top-5 patterns of each table by rate. Rates in the
// synced tables are fractions; they render as percentages here.
func (s *patternService) Insights(modelVersion string) *models.ModelInsights {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topMiss := topByRate(s.miss, func(ps models.PatternStats) float64 { return ps.MissRate })
	topSuccess := topByRate(s.success, func(ps models.PatternStats) float64 { return ps.SuccessRate })

	out := &models.ModelInsights{
		OK:                   true,
		ModelVersion:         modelVersion,
		TotalWarningPatterns: len(s.miss),
		TotalSuccessPatterns: len(s.success),
		TS:                   Timestamp(),
	}
	for _, e := range topMiss {
		out.TopMissPatterns = append(out.TopMissPatterns, models.InsightEntry{
			Name: e.name, MissRate: fmt.Sprintf("%.1f%%", e.rate*100), Total: e.total,
		})
	}
	for _, e := range topSuccess {
		out.TopSuccessPatterns = append(out.TopSuccessPatterns, models.InsightEntry{
			Name: e.name, SuccessRate: fmt.Sprintf("%.1f%%", e.rate*100), Total: e.total,
		})
	}
	return out
}

type rated struct {
	name  string
	rate  float64
	total int
}

func topByRate(t models.PatternTable, rate func(models.PatternStats) float64) []rated {
	entries := make([]rated, 0, len(t))
	for name := range t {
		ps := t.Stats(name)
		entries = append(entries, rated{name: name, rate: rate(ps), total: ps.Total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].rate != entries[j].rate {
			return entries[i].rate > entries[j].rate
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > 5 {
		entries = entries[:5]
	}
	return entries
}
