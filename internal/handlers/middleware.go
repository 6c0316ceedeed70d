package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestLogger logs one line per request with a generated request id and
// feeds the request metrics.
func (h *Handler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.New().String()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		httpRequests.WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(ww.Status())).Inc()
		httpDuration.Observe(elapsed.Seconds())
		h.logger.Infow("Request handled",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

// Recoverer turns handler panics into JSON 500s instead of dropped
// connections. The sync API's clients parse every response body as JSON.
func (h *Handler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Errorw("Handler panic", "panic", rec, "path", r.URL.Path)
				h.jsonResponse(w, http.StatusInternalServerError, map[string]interface{}{
					"success": false,
					"error":   "internal server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
