package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/rshade/southpole/internal/logging"
	"github.com/rshade/southpole/internal/sweep"
)

// DefaultDotenvPath is the optional dotenv file read by LoadSettings.
const DefaultDotenvPath = ".env"

// Settings are the runtime knobs of the CLI. Command-line flags take
// precedence over them.
type Settings struct {
	LogLevel  string `env:"SOUTHPOLE_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"SOUTHPOLE_LOG_FORMAT" envDefault:"console"`
	LogCaller bool   `env:"SOUTHPOLE_LOG_CALLER"`

	// Concurrency bounds how many sweep batches run at once.
	Concurrency int `env:"SOUTHPOLE_CONCURRENCY" envDefault:"4"`
	BatchSize   int `env:"SOUTHPOLE_BATCH_SIZE"  envDefault:"100"`
	CacheSize   int `env:"SOUTHPOLE_CACHE_SIZE"  envDefault:"1024"`

	// MetricsFile, when set, receives sweep metrics in Prometheus text format.
	MetricsFile string `env:"SOUTHPOLE_METRICS_FILE"`
}

// LoadSettings reads settings from the process environment, falling back to
// values in the dotenv file at dotenvPath. A missing dotenv file is not an
// error; variables already in the environment win over the file.
func LoadSettings(dotenvPath string) (Settings, error) {
	vars := map[string]string{}
	if dotenvPath != "" {
		fileVars, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("reading %s: %w", dotenvPath, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: vars}); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that every setting is usable.
func (s Settings) Validate() error {
	switch strings.ToLower(s.LogFormat) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log format %q (want console or json)", ErrInvalidSettings, s.LogFormat)
	}
	if s.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be >= 1, got %d", ErrInvalidSettings, s.Concurrency)
	}
	if s.BatchSize < 1 || s.BatchSize > sweep.MaxBatchSize {
		return fmt.Errorf("%w: batch size must be in [1, %d], got %d",
			ErrInvalidSettings, sweep.MaxBatchSize, s.BatchSize)
	}
	if s.CacheSize < 1 {
		return fmt.Errorf("%w: cache size must be >= 1, got %d", ErrInvalidSettings, s.CacheSize)
	}
	return nil
}

// LoggingConfig returns the logger configuration for these settings.
func (s Settings) LoggingConfig() logging.Config {
	return logging.Config{Level: s.LogLevel, Format: s.LogFormat, Caller: s.LogCaller}
}
