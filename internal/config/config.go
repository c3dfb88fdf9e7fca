// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir               string // Base directory for catalog and cache databases
	LogLevel              string
	Port                  int
	DevMode               bool
	AnthropicAPIKey       string
	AnthropicModel        string
	MarketDataBaseURL     string // Quote API base URL; empty disables live fetching
	MarketRefreshSchedule string // Cron expression for the market cache refresh job
	MarketCacheTTLMinutes int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("ADVISOR_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:               absDataDir,
		Port:                  getEnvAsInt("GO_PORT", 8080),
		DevMode:               getEnvAsBool("DEV_MODE", false),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		AnthropicAPIKey:       getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:        getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
		MarketDataBaseURL:     getEnv("MARKET_DATA_BASE_URL", ""),
		MarketRefreshSchedule: getEnv("MARKET_REFRESH_SCHEDULE", "@every 15m"),
		MarketCacheTTLMinutes: getEnvAsInt("MARKET_CACHE_TTL_MINUTES", 15),
	}

	return cfg, nil
}

// CatalogDBPath returns the path to the product catalog database.
func (c *Config) CatalogDBPath() string {
	return filepath.Join(c.DataDir, "catalog.db")
}

// CacheDBPath returns the path to the market data cache database.
func (c *Config) CacheDBPath() string {
	return filepath.Join(c.DataDir, "cache.db")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
