// Package ml implements the training pipeline behind the prediction API: a
// standard scaler feeding a multinomial logistic regression, optionally
// wrapped in sigmoid probability calibration. Models are plain Go and persist
// as JSON artifacts.
package ml

// Classifier is the extraction contract every trained estimator satisfies:
// an ordered list of class identifiers and a matching probability slice.
// Callers map class identifiers onto outcome names and must not assume
// anything else about the estimator's internals.
type Classifier interface {
	Classes() []int
	PredictProba(x []float64) ([]float64, error)
}
