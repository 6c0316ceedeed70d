package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predict_http_requests_total",
		Help: "Total HTTP requests by route, method and status code",
	}, []string{"route", "method", "code"})

	httpDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "predict_http_request_duration_seconds",
		Help:    "HTTP request handling duration",
		Buckets: prometheus.DefBuckets,
	})

	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predict_predictions_total",
		Help: "Total predictions served, by predicted winner",
	}, []string{"winner"})

	retrainsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predict_retrains_total",
		Help: "Total successful retrains, by training mode",
	}, []string{"mode"})

	retrainRejects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "predict_retrain_rejects_total",
		Help: "Total retrain batches rejected by validation",
	})

	invalidRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predict_invalid_training_rows_total",
		Help: "Training rows rejected during retrain, by reason",
	}, []string{"reason"})

	patternSyncsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predict_pattern_syncs_total",
		Help: "Pattern table syncs, by table",
	}, []string{"table"})
)
