package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (h *Handler) corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// NewAPIRouter builds the prediction API served on the main port.
func (h *Handler) NewAPIRouter(allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(h.corsMiddleware(allowedOrigins))
	r.Use(h.RequestLogger)
	r.Use(h.Recoverer)

	// Browser preflights hit arbitrary paths.
	r.Options("/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/", h.Root)
	r.Get("/scheduler/status", h.SchedulerStatus)

	r.Post("/predict-proba", h.PredictProba)
	r.Post("/retrain-automated", h.RetrainAutomated)
	r.Post("/retrain-models", h.RetrainModels)

	r.Post("/sync-patterns-db", h.SyncPatternsDB)
	r.Post("/sync-success-db", h.SyncSuccessDB)
	r.Get("/fetch-patterns-db", h.FetchPatternsDB)
	r.Get("/fetch-models-insights", h.FetchModelsInsights)

	return r
}

// NewSyncRouter builds the pattern-sync API served on the secondary port.
func (h *Handler) NewSyncRouter(allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(h.corsMiddleware(allowedOrigins))
	r.Use(h.RequestLogger)
	r.Use(h.Recoverer)

	r.Options("/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/health", h.HealthCheck)
	r.Get("/api/status", h.APIStatus)

	r.Get("/api/patterns", h.GetAllPatterns)
	r.Get("/api/patterns/download", h.DownloadPatterns)
	r.Get("/api/patterns/{id}", h.GetPattern)
	r.Post("/api/patterns/upload", h.UploadPatterns)

	r.Get("/api/insights", h.GetInsights)
	r.Post("/api/reset", h.ResetData)

	return r
}
