// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront client
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Display DisplayConfig
	Logging LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// APIConfig contains configuration for the remote storefront API
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	UserAgent      string
}

// SessionConfig contains session persistence configuration
type SessionConfig struct {
	// Backend selects where the session snapshot is persisted:
	// "memory", "file" or "redis".
	Backend  string
	FilePath string
	Redis    RedisConfig
}

// RedisConfig contains Redis configuration for the redis session backend
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	KeyPrefix    string
}

// DisplayConfig contains presentation configuration
type DisplayConfig struct {
	PlaceholderImage string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront Client"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:5001/api"),
			RequestTimeout: getEnvAsDuration("API_REQUEST_TIMEOUT", 30*time.Second),
			UserAgent:      getEnv("API_USER_AGENT", "storefront-client/1.0"),
		},
		Session: SessionConfig{
			Backend:  getEnv("SESSION_BACKEND", "file"),
			FilePath: getEnv("SESSION_FILE", ".storefront-session.json"),
			Redis: RedisConfig{
				Host:         getEnv("REDIS_HOST", "localhost"),
				Port:         getEnv("REDIS_PORT", "6379"),
				Password:     getEnv("REDIS_PASSWORD", ""),
				DB:           getEnvAsInt("REDIS_DB", 0),
				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
				KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "storefront:session"),
			},
		},
		Display: DisplayConfig{
			PlaceholderImage: getEnv("PLACEHOLDER_IMAGE", "https://via.placeholder.com/300x200?text=No+Image"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL")
	}

	switch c.Session.Backend {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("SESSION_BACKEND must be one of: memory, file, redis")
	}

	if c.Session.Backend == "file" && c.Session.FilePath == "" {
		return fmt.Errorf("SESSION_FILE is required for the file session backend")
	}
	if c.Session.Backend == "redis" && c.Session.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required for the redis session backend")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Session.Redis.Host, c.Session.Redis.Port)
}

// GetAssetBaseURL returns the host used for relative image paths.
// The storefront API serves uploads from the same host as the API,
// without the /api path suffix.
func (c *Config) GetAssetBaseURL() string {
	return strings.TrimSuffix(c.API.BaseURL, "/api")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
