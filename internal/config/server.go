package config

import (
	"fmt"
	"time"

	pkgconfig "newswire/pkg/config"
)

// ServerConfig holds HTTP server settings loaded from the environment.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// ReadHeaderTimeout bounds header reads to protect against slow clients.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration

	// RateLimitRPS is the per-IP request rate for the API. Zero disables
	// rate limiting.
	RateLimitRPS int

	// RateLimitBurst is the per-IP burst allowance.
	RateLimitBurst int

	// ProbeSchedule is the cron schedule for the feed availability probe.
	// Empty disables the probe.
	ProbeSchedule string
}

// LoadServerConfig reads server settings from the environment, applying
// defaults for anything unset.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Addr:              pkgconfig.GetEnvString("LISTEN_ADDR", ":8080"),
		ReadHeaderTimeout: pkgconfig.GetEnvDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		ShutdownTimeout:   pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		RateLimitRPS:      pkgconfig.GetEnvInt("RATE_LIMIT_RPS", 10),
		RateLimitBurst:    pkgconfig.GetEnvInt("RATE_LIMIT_BURST", 20),
		ProbeSchedule:     pkgconfig.GetEnvString("PROBE_SCHEDULE", "@every 15m"),
	}

	if cfg.RateLimitRPS < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be non-negative, got %d", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst < cfg.RateLimitRPS {
		cfg.RateLimitBurst = cfg.RateLimitRPS
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", cfg.ShutdownTimeout)
	}

	return cfg, nil
}
