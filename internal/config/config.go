// Package config loads CLI settings from a config file and OCIGENAI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/dan-solli/ocigenai/pkg/embeddings"
)

// EnvPrefix is the prefix for environment overrides, e.g. OCIGENAI_MODEL_NAME.
const EnvPrefix = "OCIGENAI"

// Config is the full CLI configuration.
type Config struct {
	ModelName       string     `mapstructure:"model_name"`
	ServiceEndpoint string     `mapstructure:"service_endpoint"`
	CompartmentID   string     `mapstructure:"compartment_id"`
	Truncate        string     `mapstructure:"truncate"`
	BatchSize       int        `mapstructure:"batch_size"`
	Auth            AuthConfig `mapstructure:"auth"`
	Log             LogConfig  `mapstructure:"log"`
	TracePath       string     `mapstructure:"trace_path"`
	StorePath       string     `mapstructure:"store_path"`
}

// AuthConfig selects OCI credentials.
type AuthConfig struct {
	Type         string `mapstructure:"type"`
	Profile      string `mapstructure:"profile"`
	FileLocation string `mapstructure:"file_location"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("model_name", "cohere.embed-english-v3.0")
	v.SetDefault("truncate", "END")
	v.SetDefault("batch_size", embeddings.DefaultBatchSize)
	v.SetDefault("auth.type", string(embeddings.AuthTypeAPIKey))
	v.SetDefault("auth.profile", "DEFAULT")
	v.SetDefault("auth.file_location", "~/.oci/config")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("service_endpoint", "")
	v.SetDefault("compartment_id", "")
	v.SetDefault("trace_path", "")
	v.SetDefault("store_path", "embeddings.db")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path (if non-empty) into v and unmarshals the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks fields that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ModelName) == "" {
		return errors.New("model_name is required")
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if _, err := embeddings.ParseAuthType(c.Auth.Type); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// OCIConfig converts the CLI configuration into adapter settings.
func (c *Config) OCIConfig() (embeddings.OCIConfig, error) {
	authType, err := embeddings.ParseAuthType(c.Auth.Type)
	if err != nil {
		return embeddings.OCIConfig{}, err
	}

	return embeddings.OCIConfig{
		ModelName:        c.ModelName,
		ServiceEndpoint:  c.ServiceEndpoint,
		CompartmentID:    c.CompartmentID,
		AuthType:         authType,
		AuthProfile:      c.Auth.Profile,
		AuthFileLocation: c.Auth.FileLocation,
		Truncate:         c.Truncate,
		BatchSize:        c.BatchSize,
	}, nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}
