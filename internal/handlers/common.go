package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/footycentral/predict-api/internal/logic"
)

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// syncError matches the pattern-sync API's legacy error envelope.
func (h *Handler) syncError(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]interface{}{"success": false, "error": message})
}

// serviceError maps validation failures to 400 and everything else to 500.
func (h *Handler) serviceError(w http.ResponseWriter, err error, logMsg string) {
	var badReq *logic.BadRequest
	if errors.As(err, &badReq) {
		h.errorResponse(w, http.StatusBadRequest, badReq.Msg)
		return
	}
	h.logger.Errorw(logMsg, "error", err)
	h.errorResponse(w, http.StatusInternalServerError, err.Error())
}

func isoNow() string {
	return time.Now().Format("2006-01-02T15:04:05")
}
