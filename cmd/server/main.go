package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/footycentral/predict-api/internal/archive"
	"github.com/footycentral/predict-api/internal/config"
	"github.com/footycentral/predict-api/internal/handlers"
	"github.com/footycentral/predict-api/internal/logger"
	"github.com/footycentral/predict-api/internal/logic"
	"github.com/footycentral/predict-api/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Sugar().Fatalw("Server exited with error", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	sugar := log.Sugar()

	// Storage backend: Redis when configured, flat files otherwise.
	var st store.Store
	if cfg.RedisURL != "" {
		rs, err := store.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return err
		}
		if err := rs.Ping(ctx); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		defer rs.Close()
		st = rs
		sugar.Infow("Using Redis store")
	} else {
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return err
		}
		st = fs
		sugar.Infow("Using file store", "dir", cfg.DataDir)
	}

	if err := store.SeedIfEmpty(ctx, st, time.Now().Format("2006-01-02T15:04:05")); err != nil {
		return fmt.Errorf("seed patterns: %w", err)
	}

	if err := os.MkdirAll(cfg.ModelDir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	modelPath := filepath.Join(cfg.ModelDir, "model.json")
	state := logic.LoadModelState(modelPath, log)

	arch, err := archive.New(ctx, cfg.PostgresURL, log)
	if err != nil {
		return err
	}
	defer arch.Close()
	if arch.Enabled() {
		sugar.Infow("Training archive enabled")
	}

	h := handlers.New(handlers.Config{
		Logger:     log,
		Prediction: logic.NewPredictionService(state, log),
		Training:   logic.NewTrainingService(state, arch, modelPath, cfg.TrainMaxIter, log),
		Patterns:   logic.NewPatternService(ctx, st, log),
		Sync:       logic.NewSyncService(st, log),
		Model:      state,
	})

	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.APIPort),
		Handler:      h.NewAPIRouter(cfg.AllowedOrigins),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	syncServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.SyncPort),
		Handler:      h.NewSyncRouter(cfg.AllowedOrigins),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: metricsMux,
	}

	g, gctx := errgroup.WithContext(ctx)
	for name, srv := range map[string]*http.Server{
		"api":     apiServer,
		"sync":    syncServer,
		"metrics": metricsServer,
	} {
		name, srv := name, srv
		g.Go(func() error {
			sugar.Infow("Server listening", "server", name, "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s server: %w", name, err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	sugar.Infow("Shutdown complete")
	return err
}
