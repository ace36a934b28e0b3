package config

import (
	"errors"
	"io/fs"
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	path   string
}

// NewLoader creates a loader. path names an optional YAML file; an empty
// path or a missing file is skipped.
func NewLoader(path string) *Loader {
	return &Loader{
		config: NewConfig(),
		path:   path,
	}
}

// Load applies the cascade defaults, then file, then environment, and validates the result.
func (l *Loader) Load() (*Config, error) {
	if l.path != "" {
		if err := l.config.LoadFromFile(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides last
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields are not applied.
type ConfigOverrides struct {
	Descriptor     *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration
	StrictErrors   *bool

	ServerAddr *string

	StatusStyle *string

	LogLevel  *string
	LogFormat *string

	Timeout *time.Duration
}

func (o *ConfigOverrides) apply(config *Config) {
	if o.Descriptor != nil {
		config.Database.Descriptor = *o.Descriptor
	}
	if o.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *o.DBQueryTimeout
	}
	if o.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *o.DBWriteTimeout
	}
	if o.StrictErrors != nil {
		config.Database.StrictErrors = *o.StrictErrors
	}
	if o.ServerAddr != nil {
		config.Server.Addr = *o.ServerAddr
	}
	if o.StatusStyle != nil {
		config.Display.StatusStyle = *o.StatusStyle
	}
	if o.LogLevel != nil {
		config.Logging.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		config.Logging.Format = *o.LogFormat
	}
	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
}
