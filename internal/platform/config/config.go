package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	OCVAPIBaseURL  string
	OCVHTTPTimeout time.Duration

	MinReviewerApprovals int

	OCVRefreshCron   string
	PhaseSweepCron   string
	FinalizeCron     string
	EnableOCVRefresh bool
	EnablePhaseSweep bool
	EnableFinalizer  bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "grantflow"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	ocvBase := strings.TrimRight(os.Getenv("OCV_API_BASE_URL"), "/")
	if ocvBase == "" {
		ocvBase = "http://localhost:8081"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		OCVAPIBaseURL:  ocvBase,
		OCVHTTPTimeout: envDuration("OCV_HTTP_TIMEOUT", 10*time.Second),

		MinReviewerApprovals: envInt("MIN_REVIEWER_APPROVALS", 3),

		OCVRefreshCron:   envString("OCV_REFRESH_CRON", "*/5 * * * *"),
		PhaseSweepCron:   envString("PHASE_SWEEP_CRON", "* * * * *"),
		FinalizeCron:     envString("ROUND_FINALIZE_CRON", "*/10 * * * *"),
		EnableOCVRefresh: envBool("ENABLE_OCV_REFRESH", true),
		EnablePhaseSweep: envBool("ENABLE_PHASE_SWEEP", true),
		EnableFinalizer:  envBool("ENABLE_ROUND_FINALIZER", true),
	}, nil
}

func envString(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
