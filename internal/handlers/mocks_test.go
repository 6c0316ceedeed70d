package handlers

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/footycentral/predict-api/internal/logic"
	"github.com/footycentral/predict-api/internal/models"
)

// MockPredictionService
type MockPredictionService struct {
	PredictProbaFunc func(features map[string]any) *models.PredictResponse
}

func (m *MockPredictionService) PredictProba(features map[string]any) *models.PredictResponse {
	if m.PredictProbaFunc != nil {
		return m.PredictProbaFunc(features)
	}
	return &models.PredictResponse{
		Proba:                models.Proba{Home: 1.0 / 3, Draw: 1.0 / 3, Away: 1.0 / 3},
		PredictedWinner:      "home",
		PredictedWinnerLabel: "home win",
		PredictedWinnerProb:  1.0 / 3,
		ModelVersion:         logic.DefaultVersion,
	}
}

// MockTrainingService
type MockTrainingService struct {
	RetrainFunc func(ctx context.Context, rows []any) (*models.RetrainSummary, error)
}

func (m *MockTrainingService) Retrain(ctx context.Context, rows []any) (*models.RetrainSummary, error) {
	if m.RetrainFunc != nil {
		return m.RetrainFunc(ctx, rows)
	}
	return &models.RetrainSummary{OK: true, Received: len(rows), Valid: len(rows)}, nil
}

// MockPatternService
type MockPatternService struct {
	SyncMissFunc    func(ctx context.Context, payload map[string]json.RawMessage) (*models.SyncResponse, error)
	SyncSuccessFunc func(ctx context.Context, payload map[string]json.RawMessage) (*models.SyncResponse, error)
	TablesFunc      func() (models.PatternTable, models.PatternTable)
	CountsFunc      func() (int, int)
	InsightsFunc    func(modelVersion string) *models.ModelInsights
}

func (m *MockPatternService) SyncMiss(ctx context.Context, payload map[string]json.RawMessage) (*models.SyncResponse, error) {
	if m.SyncMissFunc != nil {
		return m.SyncMissFunc(ctx, payload)
	}
	return &models.SyncResponse{OK: true, StoredPatterns: len(payload)}, nil
}

func (m *MockPatternService) SyncSuccess(ctx context.Context, payload map[string]json.RawMessage) (*models.SyncResponse, error) {
	if m.SyncSuccessFunc != nil {
		return m.SyncSuccessFunc(ctx, payload)
	}
	return &models.SyncResponse{OK: true, StoredPatterns: len(payload)}, nil
}

func (m *MockPatternService) Tables() (models.PatternTable, models.PatternTable) {
	if m.TablesFunc != nil {
		return m.TablesFunc()
	}
	return models.PatternTable{}, models.PatternTable{}
}

func (m *MockPatternService) Counts() (int, int) {
	if m.CountsFunc != nil {
		return m.CountsFunc()
	}
	return 0, 0
}

func (m *MockPatternService) Insights(modelVersion string) *models.ModelInsights {
	if m.InsightsFunc != nil {
		return m.InsightsFunc(modelVersion)
	}
	return &models.ModelInsights{OK: true, ModelVersion: modelVersion}
}

// MockSyncService
type MockSyncService struct {
	StatusFunc   func(ctx context.Context) (models.VersionInfo, int, int, int, error)
	DownloadFunc func(ctx context.Context) ([]models.Pattern, models.VersionInfo, error)
	UploadFunc   func(ctx context.Context, up models.PatternUpload) (int, error)
	AllFunc      func(ctx context.Context) ([]models.Pattern, error)
	ByIndexFunc  func(ctx context.Context, idx int) (models.Pattern, error)
	InsightsFunc func(ctx context.Context) (*models.ModelInsights, error)
	ResetFunc    func(ctx context.Context) error
}

func (m *MockSyncService) Status(ctx context.Context) (models.VersionInfo, int, int, int, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx)
	}
	return models.VersionInfo{Version: "1.0.0"}, 0, 0, 0, nil
}

func (m *MockSyncService) Download(ctx context.Context) ([]models.Pattern, models.VersionInfo, error) {
	if m.DownloadFunc != nil {
		return m.DownloadFunc(ctx)
	}
	return nil, models.VersionInfo{Version: "1.0.0"}, nil
}

func (m *MockSyncService) Upload(ctx context.Context, up models.PatternUpload) (int, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, up)
	}
	return len(up.Patterns), nil
}

func (m *MockSyncService) All(ctx context.Context) ([]models.Pattern, error) {
	if m.AllFunc != nil {
		return m.AllFunc(ctx)
	}
	return nil, nil
}

func (m *MockSyncService) ByIndex(ctx context.Context, idx int) (models.Pattern, error) {
	if m.ByIndexFunc != nil {
		return m.ByIndexFunc(ctx, idx)
	}
	return models.Pattern{}, nil
}

func (m *MockSyncService) Insights(ctx context.Context) (*models.ModelInsights, error) {
	if m.InsightsFunc != nil {
		return m.InsightsFunc(ctx)
	}
	return &models.ModelInsights{}, nil
}

func (m *MockSyncService) Reset(ctx context.Context) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx)
	}
	return nil
}

func newTestHandler() *Handler {
	return New(Config{
		Logger:     zap.NewNop(),
		Prediction: &MockPredictionService{},
		Training:   &MockTrainingService{},
		Patterns:   &MockPatternService{},
		Sync:       &MockSyncService{},
		Model:      logic.LoadModelState("does-not-exist.json", zap.NewNop()),
	})
}
