package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultSQLitePath = "./data/todos.db"

// Config holds all application configuration.
type Config struct {
	ServerPort      int           `json:"server_port"`
	DBDriver        string        `json:"db_driver"`
	DBDSN           string        `json:"-"`
	LogLevel        string        `json:"log_level"`
	LogFormat       string        `json:"log_format"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	Version         string        `json:"version"`
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnvInt("PORT", 8080),
		DBDriver:        getEnvString("DB_DRIVER", "sqlite3"),
		DBDSN:           getEnvString("DB_DSN", ""),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
		LogFormat:       getEnvString("LOG_FORMAT", "text"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		Version:         getEnvString("VERSION", "dev"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Address returns the server address in host:port format.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// SQLitePath returns the database file path when the sqlite3 driver is used.
func (c *Config) SQLitePath() string {
	if c.DBDriver != "sqlite3" {
		return ""
	}
	path, _, _ := strings.Cut(c.DBDSN, "?")
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return ""
	}
	return path
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func (c *Config) validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid server port %d: must be between 1 and 65535", c.ServerPort)
	}

	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case "sqlite3":
		if c.DBDSN == "" {
			c.DBDSN = defaultSQLitePath
		}
	case "postgres", "mysql":
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("DB_DSN is required when DB_DRIVER is %s", c.DBDriver)
		}
	default:
		return fmt.Errorf("invalid database driver '%s': must be sqlite3, postgres, or mysql", c.DBDriver)
	}

	validLevels := map[string]bool{
		"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true,
	}
	upperLevel := strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if !validLevels[upperLevel] {
		return fmt.Errorf("invalid log level '%s': must be DEBUG, INFO, WARN, or ERROR", c.LogLevel)
	}
	c.LogLevel = upperLevel

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format '%s': must be text or json", c.LogFormat)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout)
	}
	if c.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("invalid shutdown timeout %v: must not exceed 5 minutes", c.ShutdownTimeout)
	}

	if strings.TrimSpace(c.Version) == "" {
		return fmt.Errorf("version cannot be empty")
	}
	c.Version = strings.TrimSpace(c.Version)

	return nil
}
