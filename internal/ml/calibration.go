package ml

import (
	"fmt"
	"math"
)

// PlattCalibrator maps a raw per-class score s to sigmoid(-(A*s + B)).
// A and B are fitted on out-of-fold scores per Platt's method.
type PlattCalibrator struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

func (p PlattCalibrator) Calibrate(s float64) float64 {
	return 1.0 / (1.0 + math.Exp(p.A*s+p.B))
}

// CalibratedClassifier wraps a fitted pipeline with per-class sigmoid
// calibration. Out-of-fold scores come from stratified cross-fitting so the
// calibrators never see scores the base model produced on its own training
// rows.
type CalibratedClassifier struct {
	Base        *Pipeline         `json:"base"`
	Calibrators []PlattCalibrator `json:"calibrators"`
	Folds       int               `json:"folds"`
}

// FitCalibrated trains the base pipeline on the full batch and sigmoid
// calibrators on stratified cv-fold out-of-fold scores. cv must be >= 2 and
// every class must have at least cv samples.
func FitCalibrated(X [][]float64, y []int, cv int, maxIter int) (*CalibratedClassifier, error) {
	if cv < 2 {
		return nil, fmt.Errorf("calibration: cv must be >= 2, got %d", cv)
	}

	base := NewPipeline(maxIter)
	if err := base.Fit(X, y); err != nil {
		return nil, err
	}
	classes := base.Classes()

	// Out-of-fold score matrix, filled fold by fold.
	oof := make([][]float64, len(X))
	folds := stratifiedFolds(y, cv)
	for f := 0; f < cv; f++ {
		var trainX [][]float64
		var trainY []int
		for i := range X {
			if folds[i] != f {
				trainX = append(trainX, X[i])
				trainY = append(trainY, y[i])
			}
		}
		foldModel := NewPipeline(maxIter)
		if err := foldModel.Fit(trainX, trainY); err != nil {
			return nil, fmt.Errorf("calibration fold %d: %w", f, err)
		}
		// Fold models can miss classes entirely; remap onto the full list.
		foldIdx := make(map[int]int)
		for i, c := range foldModel.Classes() {
			foldIdx[c] = i
		}
		for i := range X {
			if folds[i] != f {
				continue
			}
			probs, err := foldModel.PredictProba(X[i])
			if err != nil {
				return nil, err
			}
			row := make([]float64, len(classes))
			for j, c := range classes {
				if fi, ok := foldIdx[c]; ok {
					row[j] = probs[fi]
				}
			}
			oof[i] = row
		}
	}

	cc := &CalibratedClassifier{
		Base:        base,
		Calibrators: make([]PlattCalibrator, len(classes)),
		Folds:       cv,
	}
	for j, c := range classes {
		scores := make([]float64, len(X))
		targets := make([]bool, len(X))
		for i := range X {
			scores[i] = oof[i][j]
			targets[i] = y[i] == c
		}
		cc.Calibrators[j] = fitPlatt(scores, targets)
	}
	return cc, nil
}

func (c *CalibratedClassifier) Classes() []int { return c.Base.Classes() }

// PredictProba calibrates each one-vs-rest score and renormalizes.
func (c *CalibratedClassifier) PredictProba(x []float64) ([]float64, error) {
	raw, err := c.Base.PredictProba(x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	sum := 0.0
	for j, s := range raw {
		out[j] = c.Calibrators[j].Calibrate(s)
		sum += out[j]
	}
	if sum <= 0 {
		uniform := 1.0 / float64(len(out))
		for j := range out {
			out[j] = uniform
		}
		return out, nil
	}
	for j := range out {
		out[j] /= sum
	}
	return out, nil
}

// stratifiedFolds assigns each sample a fold index, round-robin within each
// class so every fold sees every class when counts allow.
func stratifiedFolds(y []int, cv int) []int {
	folds := make([]int, len(y))
	next := make(map[int]int)
	for i, c := range y {
		folds[i] = next[c] % cv
		next[c]++
	}
	return folds
}

// fitPlatt fits the sigmoid parameters by gradient descent on the
// log-likelihood, using Platt's smoothed targets to avoid saturation.
func fitPlatt(scores []float64, targets []bool) PlattCalibrator {
	var nPos, nNeg float64
	for _, t := range targets {
		if t {
			nPos++
		} else {
			nNeg++
		}
	}
	tPos := (nPos + 1) / (nPos + 2)
	tNeg := 1 / (nNeg + 2)

	a, b := -1.0, 0.0
	lr := 0.01
	n := float64(len(scores))
	for iter := 0; iter < 1000; iter++ {
		var gradA, gradB float64
		for i, s := range scores {
			p := 1.0 / (1.0 + math.Exp(a*s+b))
			t := tNeg
			if targets[i] {
				t = tPos
			}
			// d(nll)/d(a*s+b) = p - t with our sign convention inverted
			d := t - p
			gradA += d * s
			gradB += d
		}
		a -= lr * gradA / n
		b -= lr * gradB / n
	}
	return PlattCalibrator{A: a, B: b}
}
