package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for currency records
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Config holds all configuration for the application
type Config struct {
	// Discord configuration
	Token   string
	AppID   string
	GuildID string // empty registers commands globally

	// Channels that receive bot-originated notices
	DebugChannelID string
	ClaimChannelID string

	// Storage
	DataDir       string
	StorageType   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Analytics
	ElasticsearchURL      string // empty disables the analytics index
	ElasticsearchUsername string
	ElasticsearchPassword string
	ElasticsearchPrefix   string
	AnalyticsRetention    time.Duration

	// Observability
	MetricsAddr string
	LogLevel    string

	// Wager games allowed per user per minute
	GamesPerMinute int

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from the current process environment without
// touching .env files.
func FromEnv() (*Config, error) {
	// Get working directory for resource paths
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	redisDB, err := getIntWithDefault("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	gamesPerMinute, err := getIntWithDefault("GAMES_PER_MINUTE", 6)
	if err != nil {
		return nil, err
	}
	retention, err := getDurationWithDefault("ANALYTICS_RETENTION", 90*24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Token:                 os.Getenv("DISCORD_TOKEN"),
		AppID:                 os.Getenv("APP_ID"),
		GuildID:               os.Getenv("GUILD_ID"),
		DebugChannelID:        os.Getenv("DEBUG_CHANNEL_ID"),
		ClaimChannelID:        os.Getenv("CLAIM_CHANNEL_ID"),
		Environment:           getEnvWithDefault("ENVIRONMENT", "development"),
		DataDir:               getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		StorageType:           getEnvWithDefault("STORAGE_TYPE", StorageSQLite),
		RedisAddr:             getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               redisDB,
		ElasticsearchURL:      os.Getenv("ELASTICSEARCH_URL"),
		ElasticsearchUsername: os.Getenv("ELASTICSEARCH_USERNAME"),
		ElasticsearchPassword: os.Getenv("ELASTICSEARCH_PASSWORD"),
		ElasticsearchPrefix:   getEnvWithDefault("ELASTICSEARCH_INDEX_PREFIX", "bankroll"),
		AnalyticsRetention:    retention,
		MetricsAddr:           getEnvWithDefault("METRICS_ADDR", ":9090"),
		LogLevel:              getEnvWithDefault("LOG_LEVEL", "info"),
		GamesPerMinute:        gamesPerMinute,
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if cfg.StorageType == StorageSQLite {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("APP_ID is required")
	}
	switch c.StorageType {
	case StorageMemory, StorageSQLite, StorageRedis:
	default:
		return fmt.Errorf("STORAGE_TYPE must be one of memory, sqlite, redis (got %q)", c.StorageType)
	}
	if c.GamesPerMinute < 1 {
		return fmt.Errorf("GAMES_PER_MINUTE must be at least 1")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// DatabasePath is the SQLite file holding currency and opt-out records
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "bankroll.db")
}

// AnalyticsEnabled reports whether an Elasticsearch cluster is configured
func (c *Config) AnalyticsEnabled() bool {
	return c.ElasticsearchURL != ""
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
