package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort            string
	DBPath             string
	WorkspacePath      string // Optional; enables workspace import
	LogLevel           slog.Level
	LogFormat          string // "json" or "text"
	SessionIdleTimeout time.Duration
	SyncConfigFile     string // Optional YAML file with sync tuning
	Sync               SyncConfig
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the values that are set.
// If a .env file exists in the current directory or up to five parents, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load() // Try current directory

	// Walk up to find a project level .env
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:        getEnv("API_PORT", "9000"),
		DBPath:         getEnv("DB_PATH", "./data/mdsync.db"),
		WorkspacePath:  getEnv("WORKSPACE_PATH", ""),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "text")),
		SyncConfigFile: getEnv("SYNC_CONFIG_FILE", ""),
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("LOG_FORMAT must be json or text, got %q", cfg.LogFormat)
	}

	idle, err := time.ParseDuration(getEnv("SESSION_IDLE_TIMEOUT", "30m"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_IDLE_TIMEOUT must be a valid duration: %w", err)
	}
	if idle < 0 {
		return nil, fmt.Errorf("SESSION_IDLE_TIMEOUT must not be negative")
	}
	cfg.SessionIdleTimeout = idle

	cfg.Sync = DefaultSyncConfig()
	if cfg.SyncConfigFile != "" {
		sync, err := LoadSyncConfig(cfg.SyncConfigFile)
		if err != nil {
			return nil, err
		}
		cfg.Sync = sync
	}

	if cfg.WorkspacePath != "" {
		info, err := os.Stat(cfg.WorkspacePath)
		if err != nil {
			return nil, fmt.Errorf("WORKSPACE_PATH is not accessible: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("WORKSPACE_PATH must be a directory")
		}
	}

	// Create the data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// parseLevel maps LOG_LEVEL to a slog level.
func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
