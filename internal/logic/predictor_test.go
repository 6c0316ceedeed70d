package logic

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/footycentral/predict-api/internal/ml"
)

func probaSum(h, d, a float64) float64 { return h + d + a }

func TestPredictProba_HeuristicPath(t *testing.T) {
	state := &ModelState{version: DefaultVersion}
	svc := NewPredictionService(state, zap.NewNop())

	resp := svc.PredictProba(map[string]any{
		"eloDiff":         150.0,
		"ppgDiff":         0.8,
		"poissonHomeProb": 0.65,
		"homeOsl":         0.5,
	})

	sum := probaSum(resp.Proba.Home, resp.Proba.Draw, resp.Proba.Away)
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("heuristic probabilities sum to %v, want 1", sum)
	}
	if resp.Proba.Home <= 0 || resp.Proba.Draw <= 0 || resp.Proba.Away <= 0 {
		t.Errorf("heuristic probabilities must be positive: %+v", resp.Proba)
	}
	// Strong home signal should favor home
	if resp.PredictedWinner != "home" {
		t.Errorf("expected home favored, got %q (%+v)", resp.PredictedWinner, resp.Proba)
	}
	if resp.PredictedWinnerLabel != "Home" {
		t.Errorf("winner label = %q", resp.PredictedWinnerLabel)
	}
	if resp.ModelVersion != DefaultVersion {
		t.Errorf("model version = %q, want %q", resp.ModelVersion, DefaultVersion)
	}
	if resp.PredictedWinnerProb != resp.Proba.Home {
		t.Errorf("winner prob mismatch: %v vs %v", resp.PredictedWinnerProb, resp.Proba.Home)
	}
}

func TestPredictProba_EmptyFeatures(t *testing.T) {
	state := &ModelState{version: DefaultVersion}
	svc := NewPredictionService(state, zap.NewNop())

	resp := svc.PredictProba(map[string]any{})
	sum := probaSum(resp.Proba.Home, resp.Proba.Draw, resp.Proba.Away)
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("probabilities sum to %v with empty features", sum)
	}
}

// binaryClassifier simulates an estimator trained on only two of the three
// outcomes, the shape the extraction contract has to cope with.
type binaryClassifier struct {
	classes []int
	probs   []float64
}

func (c *binaryClassifier) Classes() []int { return c.classes }
func (c *binaryClassifier) PredictProba(x []float64) ([]float64, error) {
	return c.probs, nil
}

func TestPredictProba_PartialClassModel(t *testing.T) {
	state := &ModelState{version: "test-2class"}
	state.Replace(&binaryClassifier{classes: []int{0, 2}, probs: []float64{0.7, 0.3}}, "test-2class")
	svc := NewPredictionService(state, zap.NewNop())

	resp := svc.PredictProba(map[string]any{})
	if math.Abs(resp.Proba.Home-0.7) > 1e-9 || resp.Proba.Draw != 0 || math.Abs(resp.Proba.Away-0.3) > 1e-9 {
		t.Errorf("class mapping wrong: %+v", resp.Proba)
	}
	sum := probaSum(resp.Proba.Home, resp.Proba.Draw, resp.Proba.Away)
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("sum = %v", sum)
	}
}

func TestPredictProba_UnresolvableClassesFallBackToUniform(t *testing.T) {
	state := &ModelState{}
	state.Replace(&binaryClassifier{classes: []int{7, 9}, probs: []float64{0.6, 0.4}}, "test-bad-classes")
	svc := NewPredictionService(state, zap.NewNop())

	resp := svc.PredictProba(map[string]any{})
	third := 1.0 / 3.0
	if math.Abs(resp.Proba.Home-third) > 1e-9 ||
		math.Abs(resp.Proba.Draw-third) > 1e-9 ||
		math.Abs(resp.Proba.Away-third) > 1e-9 {
		t.Errorf("expected uniform fallback, got %+v", resp.Proba)
	}
}

func TestPredictProba_TrainedModelPath(t *testing.T) {
	state, trainer := newTestTrainer(t)
	rnd := rand.New(rand.NewSource(11))

	var rows []any
	for i := 0; i < 4; i++ {
		rows = append(rows, trainingRow(rnd, "home", 1+0.1*float64(i)))
		rows = append(rows, trainingRow(rnd, "draw", 0.05*float64(i)))
		rows = append(rows, trainingRow(rnd, "away", -1-0.1*float64(i)))
	}
	summary, err := trainer.Retrain(context.Background(), rows)
	if err != nil {
		t.Fatalf("Retrain: %v", err)
	}
	if summary.Mode != ml.ModeCalibrated {
		t.Fatalf("expected calibrated model, got %q", summary.Mode)
	}

	svc := NewPredictionService(state, zap.NewNop())
	resp := svc.PredictProba(map[string]any{
		"eloDiff": 100.0, "ppgDiff": 0.6, "poissonHomeProb": 0.72,
	})
	sum := probaSum(resp.Proba.Home, resp.Proba.Draw, resp.Proba.Away)
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("model-path probabilities sum to %v", sum)
	}
	if resp.ModelVersion != summary.NewModelVersion {
		t.Errorf("response version %q != trained version %q", resp.ModelVersion, summary.NewModelVersion)
	}
}

func TestRetrain_TwoFoldCalibrationForMinorityOfTwo(t *testing.T) {
	state, trainer := newTestTrainer(t)
	rnd := rand.New(rand.NewSource(5))

	rows := []any{
		trainingRow(rnd, "home", 1), trainingRow(rnd, "home", 1.1),
		trainingRow(rnd, "draw", 0), trainingRow(rnd, "draw", 0.1),
		trainingRow(rnd, "away", -1), trainingRow(rnd, "away", -1.1),
	}
	summary, err := trainer.Retrain(context.Background(), rows)
	if err != nil {
		t.Fatalf("Retrain: %v", err)
	}
	if summary.Mode != ml.ModeCalibrated {
		t.Fatalf("expected calibrated mode, got %q", summary.Mode)
	}
	clf, _ := state.Current()
	cc, ok := clf.(*ml.CalibratedClassifier)
	if !ok {
		t.Fatalf("expected *ml.CalibratedClassifier, got %T", clf)
	}
	if cc.Folds != 2 {
		t.Errorf("minority class of 2 must use 2 folds, got %d", cc.Folds)
	}
}
