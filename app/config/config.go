package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"postfeed/app/models"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Post component configuration
	App AppConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	StaticDir       string
}

// AppConfig holds post component settings
type AppConfig struct {
	PostsFile   string // empty means the built-in catalog
	Timezone    string
	InstanceTTL time.Duration
	SeedComment string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables, after loading any
// of the given .env files (".env" when none are given). Missing files are
// ignored.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	format := "json"
	if getEnv("ENV", "production") == "development" {
		format = "pretty"
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			StaticDir:       getEnv("STATIC_DIR", "static"),
		},
		App: AppConfig{
			PostsFile:   getEnv("POSTS_FILE", ""),
			Timezone:    getEnv("TIMEZONE", "America/Sao_Paulo"),
			InstanceTTL: getDurationEnv("INSTANCE_TTL", 30*time.Minute),
			SeedComment: getEnv("SEED_COMMENT", models.SeedComment),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", format),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.App.InstanceTTL <= 0 {
		return fmt.Errorf("INSTANCE_TTL must be positive")
	}
	if c.App.SeedComment == "" {
		return fmt.Errorf("SEED_COMMENT cannot be empty")
	}
	if _, err := c.App.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Addr returns the listen address for the HTTP server
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
