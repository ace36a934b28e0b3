package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultDescriptor is the store used when nothing else is configured
const DefaultDescriptor = "sqlite:tasks.db"

// Config holds all configuration options for the task manager
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Server      ServerConfig      `yaml:"server"`
	Display     DisplayConfig     `yaml:"display"`
	Logging     LoggingConfig     `yaml:"logging"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds store-related configuration
type DatabaseConfig struct {
	Descriptor   string        `yaml:"descriptor" env:"TASKS_DB"`
	QueryTimeout time.Duration `yaml:"query_timeout" env:"TASKS_DB_QUERY_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"TASKS_DB_WRITE_TIMEOUT"`
	// StrictErrors returns storage failures to callers. When false they are
	// logged and replaced with empty results.
	StrictErrors bool `yaml:"strict_errors" env:"TASKS_DB_STRICT_ERRORS"`
}

// ServerConfig holds REST server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"TASKS_SERVER_ADDR"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DisplayConfig holds console rendering configuration
type DisplayConfig struct {
	StatusStyle string `yaml:"status_style" env:"TASKS_STATUS_STYLE"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `yaml:"level" env:"TASKS_LOG_LEVEL"`
	Format string `yaml:"format" env:"TASKS_LOG_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TASKS_APP_TIMEOUT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Descriptor:   DefaultDescriptor,
			QueryTimeout: 10 * time.Second,
			WriteTimeout: 5 * time.Second,
			StrictErrors: true,
		},
		Server: ServerConfig{
			Addr:            ":4567",
			ShutdownTimeout: 10 * time.Second,
		},
		Display: DisplayConfig{
			StatusStyle: "console",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// LoadFromFile merges a YAML file over the current values. Keys absent from
// the file keep their current value.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadFromEnvironment loads configuration from environment variables.
// Malformed values are reported as a *ConfigError.
func (c *Config) LoadFromEnvironment() error {
	if descriptor := os.Getenv("TASKS_DB"); descriptor != "" {
		c.Database.Descriptor = descriptor
	}
	if err := durationFromEnv("TASKS_DB_QUERY_TIMEOUT", "database.query_timeout", &c.Database.QueryTimeout); err != nil {
		return err
	}
	if err := durationFromEnv("TASKS_DB_WRITE_TIMEOUT", "database.write_timeout", &c.Database.WriteTimeout); err != nil {
		return err
	}
	if strict := os.Getenv("TASKS_DB_STRICT_ERRORS"); strict != "" {
		b, err := strconv.ParseBool(strict)
		if err != nil {
			return &ConfigError{Field: "database.strict_errors", Message: fmt.Sprintf("invalid boolean %q", strict)}
		}
		c.Database.StrictErrors = b
	}

	if addr := os.Getenv("TASKS_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}

	if style := os.Getenv("TASKS_STATUS_STYLE"); style != "" {
		c.Display.StatusStyle = style
	}

	if level := os.Getenv("TASKS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("TASKS_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}

	return durationFromEnv("TASKS_APP_TIMEOUT", "application.timeout", &c.Application.Timeout)
}

func durationFromEnv(key, field string, dst *time.Duration) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return &ConfigError{Field: field, Message: fmt.Sprintf("invalid duration %q", raw)}
	}
	*dst = d
	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Descriptor) == "" {
		return &ConfigError{Field: "database.descriptor", Message: "store descriptor cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	switch strings.ToLower(c.Display.StatusStyle) {
	case "console", "api":
	default:
		return &ConfigError{Field: "display.status_style", Message: "status style must be console or api"}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "log level must be debug, info, warn or error"}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "log format must be text or json"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
