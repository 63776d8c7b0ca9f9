package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	JobsDatabaseURL string
	// ChromePath overrides the Chrome binary used for PDF export.
	ChromePath     string
	PDFTimeout     time.Duration
	RenderAttempts int
	RenderBackoff  time.Duration
	ArtifactDir    string
	LogLevel       string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honoured when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "3000"),
		JobsDatabaseURL: getEnv("JOBS_DATABASE_URL", ""),
		ChromePath:      getEnv("CHROME_PATH", ""),
		PDFTimeout:      getEnvDuration("PDF_TIMEOUT", 60*time.Second),
		RenderAttempts:  getEnvInt("RENDER_ATTEMPTS", 3),
		RenderBackoff:   getEnvDuration("RENDER_BACKOFF", time.Second),
		ArtifactDir:     strings.TrimRight(getEnv("ARTIFACT_DIR", "resume-data/exports"), "/"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if cfg.RenderAttempts < 1 {
		cfg.RenderAttempts = 1
	}
	if cfg.JobsDatabaseURL == "" {
		slog.Warn("JOBS_DATABASE_URL not set, export jobs are kept in memory")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
