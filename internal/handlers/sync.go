package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/footycentral/predict-api/internal/logic"
	"github.com/footycentral/predict-api/internal/models"
)

// SyncPatternsDB replaces the miss-pattern table wholesale
// @Summary Sync Miss Patterns
// @Tags Patterns
// @Accept json
// @Produce json
// @Param body body map[string]interface{} true "warningRules payload"
// @Success 200 {object} models.SyncResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /sync-patterns-db [post]
func (h *Handler) SyncPatternsDB(w http.ResponseWriter, r *http.Request) {
	h.syncTable(w, r, "miss", h.patterns.SyncMiss)
}

// SyncSuccessDB replaces the success-pattern table wholesale
// @Summary Sync Success Patterns
// @Tags Patterns
// @Accept json
// @Produce json
// @Param body body map[string]interface{} true "successRules payload"
// @Success 200 {object} models.SyncResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /sync-success-db [post]
func (h *Handler) SyncSuccessDB(w http.ResponseWriter, r *http.Request) {
	h.syncTable(w, r, "success", h.patterns.SyncSuccess)
}

func (h *Handler) syncTable(w http.ResponseWriter, r *http.Request, table string,
	sync func(ctx context.Context, payload map[string]json.RawMessage) (*models.SyncResponse, error)) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	resp, err := sync(r.Context(), payload)
	if err != nil {
		h.serviceError(w, err, "Pattern sync failed")
		return
	}

	patternSyncsTotal.WithLabelValues(table).Inc()
	h.jsonResponse(w, http.StatusOK, resp)
}

// FetchPatternsDB dumps both pattern tables
// @Summary Fetch Pattern Tables
// @Tags Patterns
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /fetch-patterns-db [get]
func (h *Handler) FetchPatternsDB(w http.ResponseWriter, r *http.Request) {
	miss, success := h.patterns.Tables()
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"ok":             true,
		"warningRules":   miss,
		"successRules":   success,
		"patterns_count": len(miss),
		"success_count":  len(success),
		"model_version":  h.model.Version(),
		"ts":             logic.Timestamp(),
	})
}

// FetchModelsInsights lists the top-5 patterns of each table by rate
// @Summary Fetch Model Insights
// @Tags Patterns
// @Produce json
// @Success 200 {object} models.ModelInsights
// @Router /fetch-models-insights [get]
func (h *Handler) FetchModelsInsights(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.patterns.Insights(h.model.Version()))
}
