package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/footycentral/predict-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 4MB. Retrain batches are
// the largest payloads and stay well under this.
const MaxBodySize = 4 << 20

type Config struct {
	Logger *zap.Logger
	// Services
	Prediction logic.PredictionService
	Training   logic.TrainingService
	Patterns   logic.PatternService
	Sync       logic.SyncService
	Model      *logic.ModelState
}

type Handler struct {
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	prediction logic.PredictionService
	training   logic.TrainingService
	patterns   logic.PatternService
	sync       logic.SyncService
	model      *logic.ModelState
}

func New(cfg Config) *Handler {
	return &Handler{
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		prediction: cfg.Prediction,
		training:   cfg.Training,
		patterns:   cfg.Patterns,
		sync:       cfg.Sync,
		model:      cfg.Model,
	}
}
