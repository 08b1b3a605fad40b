// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Backend.URL != "http://localhost:5000" {
		t.Errorf("Backend.URL = %q, want http://localhost:5000", cfg.Backend.URL)
	}
	if cfg.Backend.LoginPath != "/auth/strava" {
		t.Errorf("Backend.LoginPath = %q, want /auth/strava", cfg.Backend.LoginPath)
	}
	if cfg.Maps.MapID != "ROUTE_VARIETY_MAP" {
		t.Errorf("Maps.MapID = %q", cfg.Maps.MapID)
	}
	if cfg.Maps.DefaultZoom != 13 {
		t.Errorf("Maps.DefaultZoom = %d, want 13", cfg.Maps.DefaultZoom)
	}
	if cfg.Views.TTL != 30*time.Minute {
		t.Errorf("Views.TTL = %v, want 30m", cfg.Views.TTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.MapsConfigured() {
		t.Error("maps should not be configured by default")
	}
}

func TestMapsConfig_Key(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      MapsConfig
		expected string
	}{
		{"none", MapsConfig{}, ""},
		{"primary", MapsConfig{APIKey: "a"}, "a"},
		{"fallback", MapsConfig{FallbackAPIKey: "b"}, "b"},
		{"primary wins", MapsConfig{APIKey: "a", FallbackAPIKey: "b"}, "a"},
	}
	for _, tt := range tests {
		if got := tt.cfg.Key(); got != tt.expected {
			t.Errorf("%s: Key() = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging" }, "ENVIRONMENT"},
		{"empty backend", func(c *Config) { c.Backend.URL = "" }, "BACKEND_URL is required"},
		{"ftp backend", func(c *Config) { c.Backend.URL = "ftp://x" }, "http or https"},
		{"no host", func(c *Config) { c.Backend.URL = "http://" }, "host"},
		{"login path", func(c *Config) { c.Backend.LoginPath = "auth" }, "BACKEND_LOGIN_PATH"},
		{"failure ratio", func(c *Config) { c.Backend.Breaker.FailureRatio = 1.5 }, "FAILURE_RATIO"},
		{"negative rate limit", func(c *Config) { c.Backend.RateLimit = -1 }, "BACKEND_RATE_LIMIT"},
		{"view capacity", func(c *Config) { c.Views.Capacity = 0 }, "VIEW_CACHE_CAPACITY"},
		{"rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, ""},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"supervisor backoff", func(c *Config) { c.Supervisor.FailureBackoff = 0 }, "SUPERVISOR_FAILURE_BACKOFF"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 9000}
	if got := s.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q", got)
	}
}

// Tests below use t.Setenv and cannot run in parallel.

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "9191")
	t.Setenv("BACKEND_URL", "https://api.example.com")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("GOOGLE_MAPS_JAVASCRIPT_KEY", "")
	t.Setenv("MAPS_API_KEY", "fallback-key")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	noDotEnv(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.Backend.URL != "https://api.example.com" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.Timeout != 5*time.Second {
		t.Errorf("Backend.Timeout = %v, want 5s", cfg.Backend.Timeout)
	}
	if cfg.Maps.Key() != "fallback-key" {
		t.Errorf("Maps.Key() = %q, want fallback-key", cfg.Maps.Key())
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
backend:
  url: https://yaml.example.com
  breaker:
    failure_ratio: 0.5
maps:
  api_key: yaml-key
views:
  capacity: 5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("BACKEND_URL", "")
	noDotEnv(t)
	// Empty env values still override; unset it fully for the file to win.
	os.Unsetenv("BACKEND_URL")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Backend.URL != "https://yaml.example.com" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.Breaker.FailureRatio != 0.5 {
		t.Errorf("FailureRatio = %v, want 0.5", cfg.Backend.Breaker.FailureRatio)
	}
	if cfg.Views.Capacity != 5 {
		t.Errorf("Views.Capacity = %d, want 5", cfg.Views.Capacity)
	}
	if !cfg.MapsConfigured() {
		t.Error("expected maps to be configured from YAML")
	}
}

func TestLoadWithKoanf_DotEnv(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("GOOGLE_MAPS_JAVASCRIPT_KEY", "")
	os.Unsetenv("GOOGLE_MAPS_JAVASCRIPT_KEY")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("GOOGLE_MAPS_JAVASCRIPT_KEY=dotenv-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	prev := DotEnvFile
	DotEnvFile = path
	t.Cleanup(func() { DotEnvFile = prev })

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Maps.APIKey != "dotenv-key" {
		t.Errorf("Maps.APIKey = %q, want dotenv-key", cfg.Maps.APIKey)
	}
}

func TestLoadWithKoanf_InvalidEnv(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "70000")
	noDotEnv(t)

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"GOOGLE_MAPS_JAVASCRIPT_KEY": "maps.api_key",
		"MAPS_API_KEY":               "maps.fallback_api_key",
		"BACKEND_URL":                "backend.url",
		"HTTP_PORT":                  "server.port",
		"PATH":                       "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func noDotEnv(t *testing.T) {
	t.Helper()
	prev := DotEnvFile
	DotEnvFile = ""
	t.Cleanup(func() { DotEnvFile = prev })
}
