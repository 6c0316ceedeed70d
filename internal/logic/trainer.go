package logic

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/footycentral/predict-api/internal/archive"
	"github.com/footycentral/predict-api/internal/feature"
	"github.com/footycentral/predict-api/internal/ml"
	"github.com/footycentral/predict-api/internal/models"
)

type trainingService struct {
	state     *ModelState
	archive   *archive.TrainingArchive
	modelPath string
	maxIter   int
	logger    *zap.SugaredLogger
}

func NewTrainingService(state *ModelState, arch *archive.TrainingArchive, modelPath string, maxIter int, logger *zap.Logger) TrainingService {
	return &trainingService{
		state:     state,
		archive:   arch,
		modelPath: modelPath,
		maxIter:   maxIter,
		logger:    logger.Sugar(),
	}
}

// Retrain fits a fresh model from the batch and replaces the current one
// unconditionally on success. Rows that fail field or label validation are
// counted per reason and excluded; the batch as a whole is rejected when no
// valid samples remain or fewer than two classes are present.
func (s *trainingService) Retrain(ctx context.Context, rows []any) (*models.RetrainSummary, error) {
	var X [][]float64
	var y []int
	reasons := make(map[string]int)

	for _, raw := range rows {
		row, ok := raw.(map[string]any)
		if !ok {
			reasons[feature.ReasonNotDict]++
			continue
		}

		feat, _ := feature.Normalize(row, feature.FieldMapping["features"])
		featMap, ok := feat.(map[string]any)
		if !ok {
			reasons[feature.ReasonNoFeatures]++
			continue
		}

		lab, _ := feature.Normalize(row, feature.FieldMapping["label"])
		class, reason := feature.ParseLabel(lab)
		if reason != "" {
			reasons[reason]++
			continue
		}

		X = append(X, feature.Vector(featMap))
		y = append(y, class)
	}

	if len(X) == 0 {
		return nil, &BadRequest{Msg: fmt.Sprintf("No valid samples. Invalid reasons: %v", reasons)}
	}

	classCounts := make(map[int]int)
	for _, c := range y {
		classCounts[c]++
	}
	if len(classCounts) < 2 {
		return nil, &BadRequest{Msg: "Need 2+ classes"}
	}

	minClassCount := len(y)
	for _, n := range classCounts {
		if n < minClassCount {
			minClassCount = n
		}
	}

	// Calibrate only when every class can contribute to each fold: at least 2
	// samples per class and 6 total. 2 folds when the minority class has
	// exactly 2 samples, else 3.
	var clf ml.Classifier
	var mode string
	if minClassCount >= 2 && len(y) >= 6 {
		cv := 3
		if minClassCount == 2 {
			cv = 2
		}
		calibrated, err := ml.FitCalibrated(X, y, cv, s.maxIter)
		if err != nil {
			return nil, fmt.Errorf("train calibrated model: %w", err)
		}
		clf, mode = calibrated, ml.ModeCalibrated
	} else {
		pipeline := ml.NewPipeline(s.maxIter)
		if err := pipeline.Fit(X, y); err != nil {
			return nil, fmt.Errorf("train model: %w", err)
		}
		clf, mode = pipeline, ml.ModePlain
	}

	version := fmt.Sprintf("mnlr-%s-%s", mode, Timestamp())
	s.state.Replace(clf, version)

	saved := true
	if err := ml.Save(s.modelPath, clf, version); err != nil {
		s.logger.Errorw("Failed to persist model artifact", "error", err, "version", version)
		saved = false
	}

	s.archive.InsertBatch(ctx, X, y, version)

	s.logger.Infow("Retrained model",
		"samples", len(X), "mode", mode, "version", version, "class_counts", classCounts)

	return &models.RetrainSummary{
		OK:              true,
		Received:        len(rows),
		Valid:           len(X),
		Invalid:         len(rows) - len(X),
		InvalidReasons:  reasons,
		ClassCounts:     classCounts,
		NewModelVersion: version,
		Saved:           saved,
		Mode:            mode,
	}, nil
}
