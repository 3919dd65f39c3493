// Package config loads the supervisor's ambient configuration: the
// retention window, the preflight concurrency gate, the spool
// directory, and the log level. Grounded in the teacher's
// internal/config.Loader (defaults merged with an optional YAML file
// and environment overrides via Viper), scaled down to imprimer's much
// smaller option set.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the supervisor's resolved configuration.
type Config struct {
	// SpoolDir is where the printer transport creates its per-printer
	// output files (internal/printerdev.Transport).
	SpoolDir string `mapstructure:"spool_dir"`

	// RetentionWindow is how long a terminal job lingers before
	// deletion (spec.md §4.5).
	RetentionWindow time.Duration `mapstructure:"retention_window"`

	// MaxPreflight bounds how many pipelines may be in flight at once,
	// from spawn until the reaper sees them terminate
	// (dispatch.Config.MaxPreflight).
	MaxPreflight int `mapstructure:"max_preflight"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `mapstructure:"log_level"`
}

// DefaultConfig returns imprimer's built-in defaults, applied before
// any file or environment override.
func DefaultConfig() *Config {
	return &Config{
		SpoolDir:        "./spool",
		RetentionWindow: 10 * time.Second,
		MaxPreflight:    8,
		LogLevel:        "info",
	}
}

// Loader handles configuration loading from an optional file merged
// with IMPRIMER_-prefixed environment variables, the same merge order
// as the teacher's config.Loader.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader ready to Load.
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// Load reads configuration from path (if non-empty) and environment
// variables, merged over DefaultConfig. A missing path is not an
// error when path is empty; an explicit path that does not exist is.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	l.v.SetEnvPrefix("IMPRIMER")
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		l.v.SetConfigName("imprimer")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		if err := l.v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if lvl := os.Getenv("IMPRIMER_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}

	return cfg, nil
}
