package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/footycentral/predict-api/internal/logic"
)

// RetrainAutomated retrains the model from a batch of labeled rows
// @Summary Retrain Model
// @Description Accepts heterogeneous client rows; field names are normalized automatically
// @Tags Training
// @Accept json
// @Produce json
// @Param body body []map[string]interface{} true "Training rows"
// @Success 200 {object} models.RetrainSummary
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /retrain-automated [post]
func (h *Handler) RetrainAutomated(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var rows []any
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Training data must be array")
		return
	}

	summary, err := h.training.Retrain(r.Context(), rows)
	if err != nil {
		var badReq *logic.BadRequest
		if errors.As(err, &badReq) {
			retrainRejects.Inc()
		}
		h.serviceError(w, err, "Retrain failed")
		return
	}

	retrainsTotal.WithLabelValues(summary.Mode).Inc()
	for reason, n := range summary.InvalidReasons {
		invalidRowsTotal.WithLabelValues(reason).Add(float64(n))
	}
	h.jsonResponse(w, http.StatusOK, summary)
}

// RetrainModels is the legacy retrain endpoint. It never touched model state
// and still does not; older clients call it on a schedule and only check for
// a 200.
// @Summary Retrain Models (legacy no-op)
// @Tags Training
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /retrain-models [post]
func (h *Handler) RetrainModels(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	received := 1
	if list, ok := payload.([]any); ok {
		received = len(list)
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"received": received,
		"ts":       logic.Timestamp(),
	})
}
