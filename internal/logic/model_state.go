package logic

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/footycentral/predict-api/internal/ml"
)

// DefaultVersion is reported before any model has been trained.
const DefaultVersion = "demo-1.0"

// ModelState holds the current classifier and its version tag. Replacement is
// wholesale under a single-writer lock; readers take the read lock. nil
// classifier means "no model yet" and routes predictions to the heuristic.
type ModelState struct {
	mu      sync.RWMutex
	clf     ml.Classifier
	version string
}

// LoadModelState restores the persisted artifact when one exists.
func LoadModelState(path string, logger *zap.Logger) *ModelState {
	s := &ModelState{version: DefaultVersion}
	if _, err := os.Stat(path); err != nil {
		return s
	}
	clf, version, err := ml.Load(path)
	if err != nil {
		logger.Sugar().Errorw("Failed to load persisted model, starting without one", "error", err, "path", path)
		return s
	}
	s.clf = clf
	if version != "" {
		s.version = version
	}
	logger.Sugar().Infow("Loaded persisted model", "version", s.version)
	return s
}

func (s *ModelState) Current() (ml.Classifier, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clf, s.version
}

func (s *ModelState) Replace(clf ml.Classifier, version string) {
	s.mu.Lock()
	s.clf = clf
	s.version = version
	s.mu.Unlock()
}

func (s *ModelState) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clf != nil
}

func (s *ModelState) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Timestamp is the compact tag format embedded in model versions and
// prediction responses.
func Timestamp() string {
	return time.Now().Format("20060102_150405")
}
