// corsprobe is a throwaway stand-in for the prediction API. It answers the
// same routes browser extensions probe during rollout, with canned payloads,
// so CORS and connectivity can be verified before pointing clients at the real
// service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	port := flag.Int("port", 8000, "listen port")
	flag.Parse()

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Options("/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/scheduler/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"ok":            true,
			"model_loaded":  false,
			"model_version": "probe-1.0",
			"ts":            time.Now().Format("20060102_150405"),
		})
	})

	r.Post("/predict-proba", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, map[string]any{
			"proba":         map[string]float64{"home": 0.45, "draw": 0.25, "away": 0.30},
			"echo":          body,
			"model_version": "probe-1.0",
		})
	})

	r.Post("/retrain-models", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "ts": time.Now().Format("20060102_150405")})
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("CORS probe listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
