// Package config loads execview settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/execview/internal/facade"
	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration. Zero values are replaced by the
// envDefault tags when parsed.
type Config struct {
	DBPath string `env:"EXECVIEW_DB"`
	// Seed drives the generators and the facade. Zero seeds from the clock.
	Seed int64 `env:"EXECVIEW_SEED" envDefault:"0"`

	FetchDelayMinMs  int     `env:"EXECVIEW_FETCH_DELAY_MIN_MS" envDefault:"300"`
	FetchDelayMaxMs  int     `env:"EXECVIEW_FETCH_DELAY_MAX_MS" envDefault:"800"`
	UpdateDelayMinMs int     `env:"EXECVIEW_UPDATE_DELAY_MIN_MS" envDefault:"300"`
	UpdateDelayMaxMs int     `env:"EXECVIEW_UPDATE_DELAY_MAX_MS" envDefault:"600"`
	FailureRate      float64 `env:"EXECVIEW_FAILURE_RATE" envDefault:"0.05"`

	LogLevel    string `env:"EXECVIEW_LOG_LEVEL" envDefault:"warn"`
	LogFormat   string `env:"EXECVIEW_LOG_FORMAT" envDefault:"text"`
	LogUseCases bool   `env:"EXECVIEW_LOG_USE_CASES" envDefault:"false"`
}

// Load parses the environment, fills in the default database path and
// validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".execview", "execview.db")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects negative or inverted delay bands, failure rates outside
// [0, 1] and unknown log settings.
func (c Config) Validate() error {
	var errs []error
	if c.FetchDelayMinMs < 0 || c.FetchDelayMaxMs < c.FetchDelayMinMs {
		errs = append(errs, fmt.Errorf("fetch delay band [%d, %d] ms is invalid", c.FetchDelayMinMs, c.FetchDelayMaxMs))
	}
	if c.UpdateDelayMinMs < 0 || c.UpdateDelayMaxMs < c.UpdateDelayMinMs {
		errs = append(errs, fmt.Errorf("update delay band [%d, %d] ms is invalid", c.UpdateDelayMinMs, c.UpdateDelayMaxMs))
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		errs = append(errs, fmt.Errorf("failure rate %v is outside [0, 1]", c.FailureRate))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q must be text or json", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Facade converts the delay and failure settings.
func (c Config) Facade() facade.Config {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return facade.Config{
		FetchDelay:  facade.Band{Min: ms(c.FetchDelayMinMs), Max: ms(c.FetchDelayMaxMs)},
		UpdateDelay: facade.Band{Min: ms(c.UpdateDelayMinMs), Max: ms(c.UpdateDelayMaxMs)},
		FailureRate: c.FailureRate,
	}
}

// Logger builds the process logger writing to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
