package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/footycentral/predict-api/internal/models"
)

// APIStatus reports the pattern-sync server's state
// @Summary Sync Server Status
// @Tags Sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/status [get]
func (h *Handler) APIStatus(w http.ResponseWriter, r *http.Request) {
	version, total, success, miss, err := h.sync.Status(r.Context())
	if err != nil {
		h.syncError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":         "online",
		"model_version":  version.Version,
		"patterns_count": total,
		"success_count":  success,
		"miss_count":     miss,
		"timestamp":      isoNow(),
	})
}

// DownloadPatterns returns the stored pattern list and version
// @Summary Download Patterns
// @Tags Sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/patterns/download [get]
func (h *Handler) DownloadPatterns(w http.ResponseWriter, r *http.Request) {
	patterns, version, err := h.sync.Download(r.Context())
	if err != nil {
		h.syncError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"patterns":  patterns,
		"version":   version.Version,
		"timestamp": isoNow(),
	})
}

// UploadPatterns replaces the stored pattern list wholesale
// @Summary Upload Patterns
// @Tags Sync
// @Accept json
// @Produce json
// @Param body body models.PatternUpload true "Pattern list"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Bad Request"
// @Router /api/patterns/upload [post]
func (h *Handler) UploadPatterns(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var up models.PatternUpload
	if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
		h.syncError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validator.Struct(&up); err != nil {
		h.syncError(w, http.StatusBadRequest, "Missing pattern data: "+err.Error())
		return
	}

	count, err := h.sync.Upload(r.Context(), up)
	if err != nil {
		h.syncError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   fmt.Sprintf("%d patterns stored", count),
		"count":     count,
		"version":   up.Version,
		"timestamp": isoNow(),
	})
}

// GetInsights returns the top miss/success patterns from the stored list
// @Summary Pattern Insights
// @Tags Sync
// @Produce json
// @Success 200 {object} models.ModelInsights
// @Router /api/insights [get]
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.sync.Insights(r.Context())
	if err != nil {
		h.syncError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.jsonResponse(w, http.StatusOK, insights)
}

// GetAllPatterns lists every stored pattern
// @Summary List Patterns
// @Tags Sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/patterns [get]
func (h *Handler) GetAllPatterns(w http.ResponseWriter, r *http.Request) {
	patterns, err := h.sync.All(r.Context())
	if err != nil {
		h.syncError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"count":    len(patterns),
		"patterns": patterns,
	})
}

// GetPattern returns one stored pattern by list index
// @Summary Get Pattern
// @Tags Sync
// @Produce json
// @Param id path int true "Pattern index"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /api/patterns/{id} [get]
func (h *Handler) GetPattern(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.syncError(w, http.StatusNotFound, "pattern not found")
		return
	}
	pattern, err := h.sync.ByIndex(r.Context(), idx)
	if err != nil {
		h.syncError(w, http.StatusNotFound, "pattern not found")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"pattern": pattern,
	})
}

// ResetData restores the built-in seed patterns
// @Summary Reset Data
// @Tags Sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/reset [post]
func (h *Handler) ResetData(w http.ResponseWriter, r *http.Request) {
	if err := h.sync.Reset(r.Context()); err != nil {
		h.syncError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "data reset to seed patterns",
	})
}

// HealthCheck is the sync server's liveness probe
// @Summary Health Check
// @Tags Sync
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": isoNow(),
	})
}
