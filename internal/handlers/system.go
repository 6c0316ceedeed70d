package handlers

import (
	"net/http"

	"github.com/footycentral/predict-api/internal/logic"
	"github.com/footycentral/predict-api/internal/models"
)

// Root returns service info
// @Summary Service Info
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"service": "Football Predict API",
		"version": h.model.Version(),
	})
}

// SchedulerStatus reports liveness plus model and pattern state
// @Summary Scheduler Status
// @Tags System
// @Produce json
// @Success 200 {object} models.SchedulerStatus
// @Router /scheduler/status [get]
func (h *Handler) SchedulerStatus(w http.ResponseWriter, r *http.Request) {
	missCount, successCount := h.patterns.Counts()
	h.jsonResponse(w, http.StatusOK, models.SchedulerStatus{
		OK:            true,
		ModelLoaded:   h.model.Loaded(),
		ModelVersion:  h.model.Version(),
		PatternsCount: missCount,
		SuccessCount:  successCount,
		TS:            logic.Timestamp(),
	})
}
