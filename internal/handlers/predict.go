package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/footycentral/predict-api/internal/models"
)

// PredictProba returns outcome probabilities for a feature mapping
// @Summary Predict Match Outcome Probabilities
// @Tags Prediction
// @Accept json
// @Produce json
// @Param body body models.PredictRequest true "Feature mapping"
// @Success 200 {object} models.PredictResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /predict-proba [post]
func (h *Handler) PredictProba(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Features == nil {
		req.Features = map[string]any{}
	}

	resp := h.prediction.PredictProba(req.Features)
	predictionsTotal.WithLabelValues(resp.PredictedWinner).Inc()
	h.jsonResponse(w, http.StatusOK, resp)
}
