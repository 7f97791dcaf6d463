// Package config holds the process configuration of the baseline
// runner
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables read into a Config
const EnvPrefix = "BASELINE"

// Config holds all runner configuration
type Config struct {
	// Experiment document, see experiment.Config
	Experiment string `mapstructure:"experiment"`

	// Output
	Output        string `mapstructure:"output"`
	Report        bool   `mapstructure:"report"`
	TimelineField string `mapstructure:"timeline_field"`

	// Experiment settings
	Seed  uint64 `mapstructure:"seed"`
	Index int    `mapstructure:"index"` // -1 runs every agent config

	// Display
	LogLevel string `mapstructure:"log_level"`
	Progress bool   `mapstructure:"progress"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		Output:   "results",
		Report:   true,
		Seed:     0,
		Index:    -1,
		LogLevel: "info",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Experiment == "" {
		return fmt.Errorf("experiment is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if c.Index < -1 {
		return fmt.Errorf("index must be -1 or a config index")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Bind registers the flags of fs with v under their config keys, and
// reads BASELINE_* environment variables. Flag names use dashes where
// keys use underscores.
func Bind(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if bindErr := v.BindPFlag(key, f); bindErr != nil && err == nil {
			err = bindErr
		}
	})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return err
}

// Load returns the Config held by v, starting from the defaults. If
// file is not empty, it is read as a settings file first.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return cfg, nil
}

// Logger returns the logger described by the Config, writing to w.
// Console output is used when w is a terminal-like file.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if f, ok := w.(*os.File); ok && (f == os.Stdout || f == os.Stderr) {
		w = zerolog.ConsoleWriter{Out: f}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
