package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"vocidrill/internal/service"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken   string
	HTTPAddr   string
	VociFile   string
	ExportFile string
	Selection  SelectionConfig
	Database   DatabaseConfig

	SnapshotInterval   time.Duration
	SessionIdleTimeout time.Duration
}

// SelectionConfig holds word pair selection settings
type SelectionConfig struct {
	Strategy string
	Seed     int64
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:   os.Getenv("BOT_TOKEN"),
		HTTPAddr:   getEnv("HTTP_ADDR", ":8080"),
		VociFile:   os.Getenv("VOCI_FILE"),
		ExportFile: os.Getenv("VOCI_EXPORT"),
		Selection: SelectionConfig{
			Strategy: getEnv("SELECTION_STRATEGY", service.StrategyScore),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "vocidrill"),
			User:     getEnv("DB_USER", "vocidrill"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	seed, err := strconv.ParseInt(getEnv("SELECTION_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("SELECTION_SEED must be an integer: %w", err)
	}
	cfg.Selection.Seed = seed

	interval, err := time.ParseDuration(getEnv("SNAPSHOT_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("SNAPSHOT_INTERVAL must be a duration: %w", err)
	}
	cfg.SnapshotInterval = interval

	idle, err := time.ParseDuration(getEnv("SESSION_IDLE_TIMEOUT", "30m"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_IDLE_TIMEOUT must be a duration: %w", err)
	}
	cfg.SessionIdleTimeout = idle

	// Validate required fields
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if !service.IsStrategy(cfg.Selection.Strategy) {
		return nil, fmt.Errorf("SELECTION_STRATEGY %q is not one of %s",
			cfg.Selection.Strategy, strings.Join(service.Strategies, ", "))
	}
	if cfg.SnapshotInterval <= 0 {
		return nil, fmt.Errorf("SNAPSHOT_INTERVAL must be positive")
	}
	if cfg.SessionIdleTimeout <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive")
	}

	return cfg, nil
}

// BotEnabled reports whether the Telegram front-end should run
func (c *Config) BotEnabled() bool {
	return c.BotToken != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
