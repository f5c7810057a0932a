package config

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains bearer token settings
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// StorageConfig contains product image storage settings
type StorageConfig struct {
	Type        string `yaml:"type"`       // "local"
	UploadDir   string `yaml:"upload_dir"` // For local storage
	MaxFileSize int64  `yaml:"max_file_size_mb"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level      string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format     string `yaml:"format"` // "json" or "text"
	File       string `yaml:"file"`   // optional, rotated with lumberjack
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// PricingConfig contains defaults used when an order carries no locale of its own
type PricingConfig struct {
	DefaultTimezone string  `yaml:"default_timezone"`
	DefaultLanguage string  `yaml:"default_language"`
	DriftTolerance  float64 `yaml:"drift_tolerance"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	PriceDriftReport string `yaml:"price_drift_report"`
	// ReportDir receives a CSV per audit run that finds drifting lines. Empty disables it.
	ReportDir string `yaml:"report_dir"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	if val := os.Getenv("LOG_FILE"); val != "" {
		c.Log.File = val
	}

	// Pricing
	if val := os.Getenv("PRICING_DEFAULT_TIMEZONE"); val != "" {
		c.Pricing.DefaultTimezone = val
	}
	if val := os.Getenv("PRICING_DEFAULT_LANGUAGE"); val != "" {
		c.Pricing.DefaultLanguage = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required")
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.MaxFileSize == 0 {
		c.Storage.MaxFileSize = 10
	}

	// Pricing defaults
	if c.Pricing.DefaultTimezone == "" {
		c.Pricing.DefaultTimezone = "UTC"
	}
	if _, err := time.LoadLocation(c.Pricing.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid default timezone %q: %w", c.Pricing.DefaultTimezone, err)
	}
	if c.Pricing.DefaultLanguage == "" {
		c.Pricing.DefaultLanguage = "en"
	}
	if _, err := language.Parse(c.Pricing.DefaultLanguage); err != nil {
		return fmt.Errorf("invalid default language %q: %w", c.Pricing.DefaultLanguage, err)
	}
	if c.Pricing.DriftTolerance < 0 {
		return fmt.Errorf("drift tolerance must not be negative: %v", c.Pricing.DriftTolerance)
	}
	if c.Pricing.DriftTolerance == 0 {
		c.Pricing.DriftTolerance = 0.01
	}

	// Scheduler defaults
	if c.Scheduler.PriceDriftReport == "" {
		c.Scheduler.PriceDriftReport = "0 0 1 * * *" // 1 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
