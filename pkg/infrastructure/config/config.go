// Package config loads prodseq settings from flags, environment and an
// optional YAML file through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vsinha/prodseq/pkg/domain/entities"
)

// EnvPrefix prefixes environment overrides, e.g. PRODSEQ_LOOK_AHEAD_DAYS
const EnvPrefix = "PRODSEQ"

// Config holds every setting the commands read
type Config struct {
	Catalog       string        `mapstructure:"catalog"`
	Demand        string        `mapstructure:"demand"`
	Sheet         string        `mapstructure:"sheet"`
	Cell          string        `mapstructure:"cell"`
	Family        string        `mapstructure:"family"`
	LookAheadDays int           `mapstructure:"look_ahead_days"`
	DateLayout    string        `mapstructure:"date_layout"`
	DemandType    string        `mapstructure:"demand_type"`
	RefreshColumn string        `mapstructure:"refresh_column"`
	Format        string        `mapstructure:"format"`
	OutputDir     string        `mapstructure:"output_dir"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFormat     string        `mapstructure:"log_format"`
	WatchInterval time.Duration `mapstructure:"watch_interval"`
	MetricsAddr   string        `mapstructure:"metrics_addr"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("look_ahead_days", 21)
	v.SetDefault("date_layout", entities.DefaultDateLayout)
	v.SetDefault("demand_type", entities.CustomerReleases)
	v.SetDefault("refresh_column", "Fecha De Actualizacion")
	v.SetDefault("format", "text")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("watch_interval", 10*time.Minute)
}

// New creates a viper instance with defaults, env binding and config search paths.
// cfgFile, when set, is the only file read.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("prodseq")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "prodseq"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

// Load decodes v into a validated Config
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.LookAheadDays < 0 {
		return fmt.Errorf("look_ahead_days cannot be negative, got %d", c.LookAheadDays)
	}
	if c.DemandType == "" {
		return fmt.Errorf("demand_type cannot be empty")
	}
	if c.DateLayout == "" {
		return fmt.Errorf("date_layout cannot be empty")
	}
	switch c.Format {
	case "text", "json", "yaml", "csv":
	default:
		return fmt.Errorf("unsupported output format: %s (expected text, json, yaml or csv)", c.Format)
	}
	if c.WatchInterval < 0 {
		return fmt.Errorf("watch_interval cannot be negative, got %s", c.WatchInterval)
	}
	return nil
}
