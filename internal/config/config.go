// Package config provides application configuration loaded from environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/suggest"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Backend  BackendConfig
	Suggest  suggest.Config
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig points at the session store. A "sqlite:" prefix selects a
// local sqlite file, anything else is handed to the postgres driver.
type DatabaseConfig struct {
	DSN   string
	Debug bool
}

// BackendConfig locates the remote billing API.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev           bool
	Migrations    bool
	SessionSecret string
	// Home is where the terminal client keeps its session file.
	Home string
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			DSN:   getEnv("DATABASE_DSN", "sqlite:wizard.db"),
			Debug: getEnvBool("DB_DEBUG", false),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_HOST", backend.DefaultBaseURL),
			Timeout: getEnvDuration("BACKEND_TIMEOUT", 30*time.Second),
		},
		Suggest: suggest.Config{
			MinLength: getEnvInt("SUGGEST_MIN_LENGTH", suggest.DefaultMinLength),
			Delay:     time.Duration(getEnvInt("SUGGEST_DELAY_MS", 300)) * time.Millisecond,
			Limit:     getEnvInt("SUGGEST_LIMIT", suggest.DefaultLimit),
		},
		App: AppConfig{
			Dev:           getEnvBool("DEV", false),
			Migrations:    getEnvBool("MIGRATIONS", false),
			SessionSecret: getEnv("SESSION_SECRET", "devsessionsecret"),
			Home:          getEnv("WIZARD_HOME", defaultHome()),
		},
	}
}

func defaultHome() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "invoice-wizard")
	}
	return ".invoice-wizard"
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}

// getEnvDuration accepts Go durations ("45s") or a plain number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if s, err := strconv.Atoi(value); err == nil {
		return time.Duration(s) * time.Second
	}
	return defaultValue
}
