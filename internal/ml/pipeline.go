package ml

import "fmt"

// Pipeline chains feature standardization into the logistic regression.
type Pipeline struct {
	Scaler *StandardScaler     `json:"scaler"`
	LR     *LogisticRegression `json:"lr"`
}

// NewPipeline builds an unfitted pipeline with the given iteration cap.
func NewPipeline(maxIter int) *Pipeline {
	return &Pipeline{
		Scaler: &StandardScaler{},
		LR:     &LogisticRegression{MaxIter: maxIter},
	}
}

func (p *Pipeline) Fit(X [][]float64, y []int) error {
	if err := p.Scaler.Fit(X); err != nil {
		return err
	}
	scaled := make([][]float64, len(X))
	for i, row := range X {
		scaled[i] = p.Scaler.Transform(row)
	}
	return p.LR.Fit(scaled, y)
}

func (p *Pipeline) Classes() []int { return p.LR.Classes() }

func (p *Pipeline) PredictProba(x []float64) ([]float64, error) {
	if p.Scaler == nil || p.LR == nil {
		return nil, fmt.Errorf("pipeline: not fitted")
	}
	return p.LR.PredictProba(p.Scaler.Transform(x))
}
