// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5001/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "file", cfg.Session.Backend)
	assert.Equal(t, "https://via.placeholder.com/300x200?text=No+Image", cfg.Display.PlaceholderImage)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://shop.example.com/api")
	t.Setenv("API_REQUEST_TIMEOUT", "5s")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 3, cfg.Session.Redis.DB)
	assert.True(t, cfg.IsProduction())
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("API_REQUEST_TIMEOUT", "soon")
	t.Setenv("REDIS_DB", "three")
	t.Setenv("APP_DEBUG", "yes please")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, 0, cfg.Session.Redis.DB)
	assert.True(t, cfg.App.Debug)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:     APIConfig{BaseURL: "http://localhost:5001/api"},
			Session: SessionConfig{Backend: "memory"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing base url", func(c *Config) { c.API.BaseURL = "" }, "API_BASE_URL is required"},
		{"relative base url", func(c *Config) { c.API.BaseURL = "localhost:5001/api" }, "absolute http(s) URL"},
		{"unknown backend", func(c *Config) { c.Session.Backend = "sqlite" }, "SESSION_BACKEND"},
		{"file backend without path", func(c *Config) {
			c.Session.Backend = "file"
		}, "SESSION_FILE is required"},
		{"redis backend without host", func(c *Config) {
			c.Session.Backend = "redis"
		}, "REDIS_HOST is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{Session: SessionConfig{Redis: RedisConfig{Host: "cache.internal", Port: "6380"}}}
	assert.Equal(t, "cache.internal:6380", cfg.GetRedisAddr())
}

func TestGetAssetBaseURL(t *testing.T) {
	tests := []struct {
		baseURL  string
		expected string
	}{
		{"http://localhost:5001/api", "http://localhost:5001"},
		{"https://shop.example.com/api", "https://shop.example.com"},
		{"http://localhost:5001", "http://localhost:5001"},
	}
	for _, tt := range tests {
		cfg := &Config{API: APIConfig{BaseURL: tt.baseURL}}
		assert.Equal(t, tt.expected, cfg.GetAssetBaseURL())
	}
}
