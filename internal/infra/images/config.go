package images

import (
	"fmt"
	"time"

	pkgconfig "newswire/pkg/config"
)

// PageFetchConfig holds the configuration for secondary article-page fetches
// made during image resolution.
//
// Security settings:
//   - DenyPrivateIPs: Prevents SSRF by blocking private IP addresses
//   - MaxBodySize: Prevents memory exhaustion from oversized responses
//   - MaxRedirects: Prevents infinite redirect loops
//   - Timeout: Prevents resource starvation from slow servers
type PageFetchConfig struct {
	// Enabled controls whether the page-fetch fallback step runs at all.
	// When false, resolution stops after the snippet scan.
	// Default: true
	Enabled bool

	// Timeout is the maximum duration for a single page fetch. The page
	// fetch is a best-effort enrichment, so this is deliberately shorter
	// than the feed fetch timeout.
	// Default: 5s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// Enforced during response reading, not from the Content-Length header.
	// Default: 2097152 (2MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is re-validated for SSRF.
	// Default: 3
	MaxRedirects int

	// DenyPrivateIPs controls whether to block URLs resolving to private,
	// loopback, or link-local addresses. Should always be true in
	// production.
	// Default: true
	DenyPrivateIPs bool
}

// DefaultConfig returns the default page-fetch configuration.
func DefaultConfig() PageFetchConfig {
	return PageFetchConfig{
		Enabled:        true,
		Timeout:        5 * time.Second,
		MaxBodySize:    2 * 1024 * 1024,
		MaxRedirects:   3,
		DenyPrivateIPs: true,
	}
}

// Validate checks if the configuration values are valid and safe.
func (c *PageFetchConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)             // 1KB
	maxBodySize := int64(50 * 1024 * 1024) // 50MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}

// LoadConfigFromEnv loads the page-fetch configuration from environment
// variables, falling back to defaults for anything unset. The loaded
// configuration is validated before being returned.
//
// Environment variables:
//   - IMAGE_PAGE_FETCH_ENABLED: "true" or "false" (default: true)
//   - IMAGE_PAGE_FETCH_TIMEOUT: duration string, e.g. "5s" (default: 5s)
//   - IMAGE_PAGE_FETCH_MAX_BODY_SIZE: integer in bytes (default: 2097152)
//   - IMAGE_PAGE_FETCH_MAX_REDIRECTS: integer (default: 3)
//   - IMAGE_PAGE_FETCH_DENY_PRIVATE_IPS: "true" or "false" (default: true)
func LoadConfigFromEnv() (PageFetchConfig, error) {
	cfg := DefaultConfig()

	cfg.Enabled = pkgconfig.GetEnvBool("IMAGE_PAGE_FETCH_ENABLED", cfg.Enabled)
	cfg.Timeout = pkgconfig.GetEnvDuration("IMAGE_PAGE_FETCH_TIMEOUT", cfg.Timeout)
	cfg.MaxBodySize = int64(pkgconfig.GetEnvInt("IMAGE_PAGE_FETCH_MAX_BODY_SIZE", int(cfg.MaxBodySize)))
	cfg.MaxRedirects = pkgconfig.GetEnvInt("IMAGE_PAGE_FETCH_MAX_REDIRECTS", cfg.MaxRedirects)
	cfg.DenyPrivateIPs = pkgconfig.GetEnvBool("IMAGE_PAGE_FETCH_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
