package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	APIPort     int
	SyncPort    int
	MetricsPort int
	Env         string

	// CORS
	AllowedOrigins []string

	// Storage
	DataDir  string
	ModelDir string

	// Optional backends
	RedisURL    string
	PostgresURL string

	// Logging
	LogLevel   string
	LogFile    string
	LogMaxSize int // megabytes, rotation threshold

	// Limits
	ShutdownTimeout time.Duration
	TrainMaxIter    int
}

// Load loads configuration from environment variables.
// All values have working defaults; Redis and Postgres are opt-in.
func Load() *Config {
	cfg := &Config{
		APIPort:     getEnvInt("API_PORT", 8000),
		SyncPort:    getEnvInt("SYNC_PORT", 5000),
		MetricsPort: getEnvInt("METRICS_PORT", 9090),
		Env:         getEnv("ENV", "development"),

		DataDir:  getEnv("DATA_DIR", "pattern_data"),
		ModelDir: getEnv("MODEL_DIR", "models"),

		RedisURL:    getEnv("REDIS_URL", ""),
		PostgresURL: getEnv("POSTGRES_URL", ""),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFile:    getEnv("LOG_FILE", ""),
		LogMaxSize: getEnvInt("LOG_MAX_SIZE_MB", 50),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		TrainMaxIter:    getEnvInt("TRAIN_MAX_ITER", 2000),
	}

	// Browser clients call from arbitrary origins, so the default is fully open.
	origins := getEnv("ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
