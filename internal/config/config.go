// Package config loads runtime tunables for the local demo host: the
// optional telemetry listener address and an optional tuning-override file
// path for the gameplay.TunableSet. Shaped after the teacher's config.Load
// (env vars, sane defaults, accumulate-then-join validation errors) with
// the broker-specific fields (TLS, admin token, replay dump limits, client
// caps) dropped since this module has no network server to protect.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultTelemetryAddr is the address the optional debug WebSocket
	// server listens on when enabled.
	DefaultTelemetryAddr = ":43128"
	// DefaultTelemetryMaxPayloadBytes bounds the JSON-encoded snapshot sent
	// per tick before the budget planner starts dropping optional fields.
	DefaultTelemetryMaxPayloadBytes int64 = 1 << 16
	// DefaultTelemetryPingInterval controls the keepalive cadence for the
	// single debug WebSocket connection.
	DefaultTelemetryPingInterval = 30 * time.Second

	// DefaultLogLevel controls verbosity for demo-host logs.
	DefaultLogLevel = "info"
	// DefaultLogPath is where structured logs are written.
	DefaultLogPath = "drivesim.log"
	// DefaultLogMaxSizeMB caps the size of a single log file before rotation.
	DefaultLogMaxSizeMB = 100
	// DefaultLogMaxBackups limits retained rotated log files.
	DefaultLogMaxBackups = 10
	// DefaultLogMaxAgeDays controls how long rotated log files are kept on disk.
	DefaultLogMaxAgeDays = 7
	// DefaultLogCompress toggles gzip compression for rotated log files.
	DefaultLogCompress = true
)

// Config captures all runtime tunables for the local demo host.
type Config struct {
	TelemetryEnabled        bool
	TelemetryAddr           string
	TelemetryMaxPayloadBytes int64
	TelemetryPingInterval   time.Duration

	TuningOverridePath string
	HandlingProfileID  string
	CaptureDir         string

	Logging LoggingConfig
}

// LoggingConfig captures structured logging configuration options.
type LoggingConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load reads the demo host configuration from environment variables,
// applying sane defaults and returning descriptive errors for invalid
// overrides.
func Load() (*Config, error) {
	cfg := &Config{
		TelemetryEnabled:         parseBoolDefault(os.Getenv("DRIVESIM_TELEMETRY_ENABLED"), false),
		TelemetryAddr:            getString("DRIVESIM_TELEMETRY_ADDR", DefaultTelemetryAddr),
		TelemetryMaxPayloadBytes: DefaultTelemetryMaxPayloadBytes,
		TelemetryPingInterval:    DefaultTelemetryPingInterval,
		TuningOverridePath:       strings.TrimSpace(os.Getenv("DRIVESIM_TUNING_OVERRIDE")),
		HandlingProfileID:        strings.TrimSpace(getString("DRIVESIM_HANDLING_PROFILE", "arcade")),
		CaptureDir:               strings.TrimSpace(os.Getenv("DRIVESIM_CAPTURE_DIR")),
		Logging: LoggingConfig{
			Level:      strings.TrimSpace(getString("DRIVESIM_LOG_LEVEL", DefaultLogLevel)),
			Path:       strings.TrimSpace(getString("DRIVESIM_LOG_PATH", DefaultLogPath)),
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
			Compress:   DefaultLogCompress,
		},
	}

	var problems []string

	if raw := strings.TrimSpace(os.Getenv("DRIVESIM_TELEMETRY_MAX_PAYLOAD_BYTES")); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("DRIVESIM_TELEMETRY_MAX_PAYLOAD_BYTES must be a positive integer, got %q", raw))
		} else {
			cfg.TelemetryMaxPayloadBytes = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DRIVESIM_TELEMETRY_PING_INTERVAL")); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil || duration <= 0 {
			problems = append(problems, fmt.Sprintf("DRIVESIM_TELEMETRY_PING_INTERVAL must be a positive duration, got %q", raw))
		} else {
			cfg.TelemetryPingInterval = duration
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DRIVESIM_LOG_MAX_SIZE_MB")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("DRIVESIM_LOG_MAX_SIZE_MB must be a positive integer, got %q", raw))
		} else {
			cfg.Logging.MaxSizeMB = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DRIVESIM_LOG_MAX_BACKUPS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("DRIVESIM_LOG_MAX_BACKUPS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxBackups = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DRIVESIM_LOG_MAX_AGE_DAYS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("DRIVESIM_LOG_MAX_AGE_DAYS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxAgeDays = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DRIVESIM_LOG_COMPRESS")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("DRIVESIM_LOG_COMPRESS must be a boolean value, got %q", raw))
		} else {
			cfg.Logging.Compress = value
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf(strings.Join(problems, "; "))
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseBoolDefault(raw string, fallback bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
