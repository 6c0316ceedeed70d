package models

// PredictRequest is the body of POST /predict-proba. Features is a free-form
// mapping; unknown keys are ignored and missing keys default to zero during
// vectorization.
type PredictRequest struct {
	Features map[string]any `json:"features"`
}

// Proba holds the normalized per-outcome probabilities.
type Proba struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// PredictResponse is the body returned by POST /predict-proba.
type PredictResponse struct {
	Proba                Proba   `json:"proba"`
	PredictedWinner      string  `json:"predicted_winner"`
	PredictedWinnerLabel string  `json:"predicted_winner_label"`
	PredictedWinnerProb  float64 `json:"predicted_winner_prob"`
	ModelVersion         string  `json:"model_version"`
	TS                   string  `json:"ts"`
}

// RetrainSummary reports the outcome of a retrain batch.
type RetrainSummary struct {
	OK              bool           `json:"ok"`
	Received        int            `json:"received"`
	Valid           int            `json:"valid"`
	Invalid         int            `json:"invalid"`
	InvalidReasons  map[string]int `json:"invalid_reasons"`
	ClassCounts     map[int]int    `json:"class_counts"`
	NewModelVersion string         `json:"new_model_version"`
	Saved           bool           `json:"saved"`
	Mode            string         `json:"mode"`
}

// SyncResponse is returned by the sync-*-db endpoints.
type SyncResponse struct {
	OK             bool   `json:"ok"`
	Warning        string `json:"warning,omitempty"`
	StoredPatterns int    `json:"stored_patterns"`
	Timestamp      string `json:"timestamp,omitempty"`
}

// SchedulerStatus is the liveness payload of GET /scheduler/status.
type SchedulerStatus struct {
	OK            bool   `json:"ok"`
	ModelLoaded   bool   `json:"model_loaded"`
	ModelVersion  string `json:"model_version"`
	PatternsCount int    `json:"patterns_count"`
	SuccessCount  int    `json:"success_count"`
	TS            string `json:"ts"`
}

// InsightEntry is one row of the top-pattern listings. Rate is preformatted
// as a percentage string, matching what dashboard clients render verbatim.
type InsightEntry struct {
	Name        string `json:"name"`
	MissRate    string `json:"miss_rate,omitempty"`
	SuccessRate string `json:"success_rate,omitempty"`
	Total       int    `json:"total"`
}

// ModelInsights is the body of GET /fetch-models-insights.
type ModelInsights struct {
	OK                   bool           `json:"ok,omitempty"`
	ModelVersion         string         `json:"model_version"`
	TotalWarningPatterns int            `json:"total_warning_patterns"`
	TotalSuccessPatterns int            `json:"total_success_patterns"`
	TopMissPatterns      []InsightEntry `json:"top_miss_patterns"`
	TopSuccessPatterns   []InsightEntry `json:"top_success_patterns"`
	TS                   string         `json:"ts"`
}
