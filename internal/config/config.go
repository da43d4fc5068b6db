// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// DBPath is the filesystem path of the sqlite vault database.
	DBPath string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// ExportDir is the directory where export archives are created.
	ExportDir string

	// ContentKeyAlgorithm selects the at-rest AEAD algorithm for note payloads
	// and attachments ("aes-gcm" or "chacha20-poly1305").
	ContentKeyAlgorithm string

	// KeeperURI is the gocloud.dev secrets keeper URI protecting persisted key
	// material (e.g., "base64key://...", "gcpkms://...", "hashivault://...").
	KeeperURI string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// RateLimitExportEnabled indicates whether rate limiting for the export endpoint is enabled.
	RateLimitExportEnabled bool
	// RateLimitExportRequestsPerSec is the number of export requests allowed per second.
	RateLimitExportRequestsPerSec float64
	// RateLimitExportBurst is the burst size for export rate limiting.
	RateLimitExportBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// ExportWorkerQueueSize is the capacity of the export job queue.
	ExportWorkerQueueSize int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "127.0.0.1"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Database configuration
		DBPath:               env.GetString("DB_PATH", "memento.db"),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 1),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 1),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Export
		ExportDir:             env.GetString("EXPORT_DIR", "exports"),
		ExportWorkerQueueSize: env.GetInt("EXPORT_WORKER_QUEUE_SIZE", 16),

		// Crypto
		ContentKeyAlgorithm: env.GetString("CONTENT_KEY_ALGORITHM", "aes-gcm"),
		KeeperURI:           env.GetString("KEEPER_URI", ""),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Rate Limiting for the export endpoint (asymmetric crypto is expensive)
		RateLimitExportEnabled:        env.GetBool("RATE_LIMIT_EXPORT_ENABLED", true),
		RateLimitExportRequestsPerSec: env.GetFloat64("RATE_LIMIT_EXPORT_REQUESTS_PER_SEC", 2.0),
		RateLimitExportBurst:          env.GetInt("RATE_LIMIT_EXPORT_BURST", 5),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "memento"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
