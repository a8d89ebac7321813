// Package config provides configuration loading and validation from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// defaultMaxExecBodyBytes limits the request body of the exec endpoint.
const defaultMaxExecBodyBytes = 1 << 20 // 1 MiB

// Config holds all application configuration for the litekeeper server.
type Config struct {
	LogLevel          string // debug, info, warn, error
	ListenAddr        string // Admin API listen address (e.g., ":8080")
	MetricsListenAddr string // Metrics listener address (e.g., "localhost:9090")
	DatabasePath      string // SQLite database file path
	DatabaseCreate    bool   // Create the database file if it does not exist
	AdminTokenHash    string // Required: bcrypt hash of the admin API token
	MaxExecBodyBytes  int64  // Request body limit for POST /api/exec
}

// Load parses configuration from environment variables.
// All options except ADMIN_TOKEN_HASH have sensible defaults.
func Load() (*Config, error) {
	logLevel := os.Getenv("LOG_LEVEL")
	listenAddr := os.Getenv("LISTEN_ADDR")
	metricsListenAddr := os.Getenv("METRICS_LISTEN_ADDR")
	databasePath := os.Getenv("DATABASE_PATH")
	adminTokenHash := os.Getenv("ADMIN_TOKEN_HASH")

	if logLevel == "" {
		logLevel = "info"
	}

	if listenAddr == "" {
		listenAddr = ":8080"
	}

	if metricsListenAddr == "" {
		metricsListenAddr = "localhost:9090"
	}

	if databasePath == "" {
		databasePath = "/data/litekeeper.db"
	}

	databaseCreate := false
	if v := os.Getenv("DATABASE_CREATE"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_CREATE value %q: %w", v, err)
		}
		databaseCreate = parsed
	}

	maxExecBodyBytes := int64(defaultMaxExecBodyBytes)
	if v := os.Getenv("MAX_EXEC_BODY_BYTES"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid MAX_EXEC_BODY_BYTES value %q", v)
		}
		maxExecBodyBytes = parsed
	}

	cfg := &Config{
		LogLevel:          logLevel,
		ListenAddr:        listenAddr,
		MetricsListenAddr: metricsListenAddr,
		DatabasePath:      databasePath,
		DatabaseCreate:    databaseCreate,
		AdminTokenHash:    adminTokenHash,
		MaxExecBodyBytes:  maxExecBodyBytes,
	}

	return cfg, nil
}

// Validate checks all configuration constraints.
func (c *Config) Validate() error {
	if c.AdminTokenHash == "" {
		return fmt.Errorf("ADMIN_TOKEN_HASH environment variable is required (generate one with: liteadmin hash-token)")
	}
	return nil
}
