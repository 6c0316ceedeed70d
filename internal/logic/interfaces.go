package logic

import (
	"context"
	"encoding/json"

	"github.com/footycentral/predict-api/internal/models"
)

// BadRequest marks a validation failure the handler surfaces as HTTP 400.
type BadRequest struct {
	Msg string
}

func (e *BadRequest) Error() string { return e.Msg }

// PredictionService derives outcome probabilities from a feature mapping,
// falling back to the closed-form heuristic when no model is trained yet.
type PredictionService interface {
	PredictProba(features map[string]any) *models.PredictResponse
}

// TrainingService retrains the model from a batch of heterogeneous rows.
type TrainingService interface {
	Retrain(ctx context.Context, rows []any) (*models.RetrainSummary, error)
}

// PatternService owns the in-memory miss/success pattern tables synced by the
// prediction API.
type PatternService interface {
	SyncMiss(ctx context.Context, payload map[string]json.RawMessage) (*models.SyncResponse, error)
	SyncSuccess(ctx context.Context, payload map[string]json.RawMessage) (*models.SyncResponse, error)
	Tables() (miss, success models.PatternTable)
	Counts() (miss, success int)
	Insights(modelVersion string) *models.ModelInsights
}

// SyncService backs the pattern-sync API's list-based storage.
type SyncService interface {
	Status(ctx context.Context) (version models.VersionInfo, total, success, miss int, err error)
	Download(ctx context.Context) ([]models.Pattern, models.VersionInfo, error)
	Upload(ctx context.Context, up models.PatternUpload) (int, error)
	All(ctx context.Context) ([]models.Pattern, error)
	ByIndex(ctx context.Context, idx int) (models.Pattern, error)
	Insights(ctx context.Context) (*models.ModelInsights, error)
	Reset(ctx context.Context) error
}
