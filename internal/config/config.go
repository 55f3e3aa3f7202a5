package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Legacy database configuration
	Database DatabaseConfig

	// Destination WordPress API configuration
	WordPress WordPressConfig

	// Legacy site asset configuration
	Legacy LegacyConfig

	// Logging configuration
	Log LogConfig
}

// DatabaseConfig holds legacy database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// WordPressConfig holds destination REST API settings
type WordPressConfig struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// LegacyConfig holds settings for the legacy site whose assets are migrated
type LegacyConfig struct {
	// HostBase is prefixed to relative image paths before fetching
	HostBase string
	// UserDomain is the mail domain for users synthesized from author names
	UserDomain string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables and an optional .env
// file in the working directory (the migration has historically been driven
// by a .env file next to the binary).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MAX_LIFETIME", "5m")
	v.SetDefault("WP_HOST", "")
	v.SetDefault("WP_USER", "")
	v.SetDefault("WP_PASSWORD", "")
	v.SetDefault("WP_TIMEOUT", "60s")
	v.SetDefault("NM_HOST", "")
	v.SetDefault("NM_USER_DOMAIN", "newsmaker.md")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "pretty")

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		// The .env file is optional; environment variables alone are fine
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("failed to read .env file: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxLifetime:  v.GetDuration("DB_MAX_LIFETIME"),
		},
		WordPress: WordPressConfig{
			BaseURL:  strings.TrimRight(v.GetString("WP_HOST"), "/"),
			Username: v.GetString("WP_USER"),
			Password: v.GetString("WP_PASSWORD"),
			Timeout:  v.GetDuration("WP_TIMEOUT"),
		},
		Legacy: LegacyConfig{
			HostBase:   strings.TrimRight(v.GetString("NM_HOST"), "/"),
			UserDomain: v.GetString("NM_USER_DOMAIN"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
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
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.WordPress.BaseURL == "" {
		return fmt.Errorf("WP_HOST is required")
	}
	return nil
}

// DSN returns the MySQL connection string for the legacy database
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&multiStatements=true",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)
}
