// Package config provides configuration management for the BacBo prediction
// service.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Engine    EngineConfig    `mapstructure:"engine" validate:"required"`
	Session   SessionConfig   `mapstructure:"session" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Snapshots SnapshotsConfig `mapstructure:"snapshots"`
	Features  FeaturesConfig  `mapstructure:"features"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the API server configuration
type ServerConfig struct {
	Port                int     `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int     `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int     `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	RateLimitPerSecond  float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	RateLimitBurst      int     `mapstructure:"rate_limit_burst" validate:"required,gt=0"`
}

// EngineConfig represents the prediction engine tunables
type EngineConfig struct {
	QuantumThreshold  int       `mapstructure:"quantum_threshold" validate:"required,gt=0"`
	ReferenceSequence []int     `mapstructure:"reference_sequence" validate:"required,min=3"`
	PressurePoints    []int     `mapstructure:"pressure_points" validate:"required,min=1"`
	QuantumWeight     float64   `mapstructure:"quantum_weight" validate:"gte=0,lte=1"`
	FibonacciWeight   float64   `mapstructure:"fibonacci_weight" validate:"gte=0,lte=1"`
	PressureWeight    float64   `mapstructure:"pressure_weight" validate:"gte=0,lte=1"`
}

// SessionConfig represents session registry configuration
type SessionConfig struct {
	TTLMinutes             int `mapstructure:"ttl_minutes" validate:"required,gt=0"`
	CleanupIntervalMinutes int `mapstructure:"cleanup_interval_minutes" validate:"required,gt=0"`
	MaxSessions            int `mapstructure:"max_sessions" validate:"required,gt=0"`
}

// DatabaseConfig represents database connection configuration. Only required
// when persistence is enabled.
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// SnapshotsConfig represents the periodic stats snapshot job
type SnapshotsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"omitempty,cronexpr"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	PersistenceEnabled bool `mapstructure:"persistence_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// TTL returns the session time-to-live as a duration
func (s *SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

// CleanupInterval returns the session purge interval as a duration
func (s *SessionConfig) CleanupInterval() time.Duration {
	return time.Duration(s.CleanupIntervalMinutes) * time.Minute
}
