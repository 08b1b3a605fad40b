// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Loading order (later sources override earlier ones):
//  1. Built-in defaults
//  2. .env file in the working directory, exported into the environment
//  3. Optional YAML file (CONFIG_PATH, or config.yaml / config.yml)
//  4. Environment variables
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Backend  BackendConfig  `koanf:"backend"`
	Maps     MapsConfig     `koanf:"maps"`
	Views    ViewsConfig    `koanf:"views"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`

	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is development or production.
	Environment string `koanf:"environment"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BackendConfig points at the OAuth/session backend that owns activities,
// streams and POI search.
type BackendConfig struct {
	URL string `koanf:"url"`

	// Timeout bounds one backend round trip.
	Timeout time.Duration `koanf:"timeout"`

	// SessionCookie is the cookie forwarded to the backend. Empty forwards
	// every cookie the browser sent.
	SessionCookie string `koanf:"session_cookie"`

	// LoginPath is the OAuth initiation path on the backend.
	LoginPath string `koanf:"login_path"`

	Breaker BreakerConfig `koanf:"breaker"`

	// RateLimit caps outgoing requests per second across all sessions.
	// Zero disables the limit.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

// BreakerConfig tunes the backend circuit breaker.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// MapsConfig configures the in-browser map widget.
type MapsConfig struct {
	// APIKey is GOOGLE_MAPS_JAVASCRIPT_KEY.
	APIKey string `koanf:"api_key"`

	// FallbackAPIKey is MAPS_API_KEY, used when APIKey is empty.
	FallbackAPIKey string `koanf:"fallback_api_key"`

	MapID       string `koanf:"map_id"`
	DefaultZoom int    `koanf:"default_zoom"`
}

// Key returns the effective browser key, or "" when none is configured.
func (m MapsConfig) Key() string {
	if m.APIKey != "" {
		return m.APIKey
	}
	return m.FallbackAPIKey
}

// ViewsConfig bounds the in-memory store of live map views.
type ViewsConfig struct {
	Capacity      int           `koanf:"capacity"`
	TTL           time.Duration `koanf:"ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// SupervisorConfig is the restart policy of the service tree. After
// FailureThreshold failures (decaying with a half-life of FailureDecay
// seconds) a supervisor waits FailureBackoff before restarting again.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// MapsConfigured reports whether a maps key is available. The server still
// starts without one but serves the configuration error screen.
func (c *Config) MapsConfigured() bool {
	return c.Maps.Key() != ""
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, .env, an optional YAML file and
// the environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
