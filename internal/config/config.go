package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // reporting zones resolve in minimal containers

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"agency-reconciliation/internal/domain"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved runtime configuration of the reconciler.
type Config struct {
	Source      string
	DataDir     string
	DatabaseURL string
	Migrate     bool

	ProgramInception domain.YearMonth
	Timezone         string
	Concurrency      int

	LogLevel  string
	LogFormat string
}

// configFile mirrors the YAML schema of reconciler.yaml.
type configFile struct {
	Source struct {
		Kind        string `yaml:"kind"`
		DataDir     string `yaml:"data_dir"`
		DatabaseURL string `yaml:"database_url"`
		Migrate     *bool  `yaml:"migrate"`
	} `yaml:"source"`
	Reporting struct {
		ProgramInception string `yaml:"program_inception"`
		Timezone         string `yaml:"timezone"`
		Concurrency      int    `yaml:"concurrency"`
	} `yaml:"reporting"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Default returns the configuration used when neither file nor env say otherwise.
func Default() Config {
	return Config{
		Source:           SourceFile,
		DataDir:          "data",
		ProgramInception: domain.NewYearMonth(2020, time.January),
		Timezone:         "UTC",
		LogLevel:         "info",
		LogFormat:        "console",
	}
}

// Load resolves configuration in priority order: defaults -> file -> env.
// A missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := applyFile(&cfg, raw); err != nil {
				return Config{}, err
			}
		case !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.Source = strings.ToLower(envOrDefault("RECON_SOURCE", cfg.Source))
	cfg.DataDir = envOrDefault("RECON_DATA_DIR", cfg.DataDir)
	cfg.DatabaseURL = envOrDefault("DATABASE_URL", cfg.DatabaseURL)
	cfg.Migrate = envBool("RECON_MIGRATE", cfg.Migrate)
	cfg.Timezone = envOrDefault("RECON_TIMEZONE", cfg.Timezone)
	cfg.Concurrency = envInt("RECON_CONCURRENCY", cfg.Concurrency)
	cfg.LogLevel = envOrDefault("RECON_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOrDefault("RECON_LOG_FORMAT", cfg.LogFormat)

	if raw := os.Getenv("RECON_PROGRAM_INCEPTION"); raw != "" {
		inception, err := domain.ParseYearMonth(raw)
		if err != nil {
			return Config{}, fmt.Errorf("RECON_PROGRAM_INCEPTION: %w", err)
		}
		cfg.ProgramInception = inception
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, raw []byte) error {
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if f.Source.Kind != "" {
		cfg.Source = f.Source.Kind
	}
	if f.Source.DataDir != "" {
		cfg.DataDir = f.Source.DataDir
	}
	if f.Source.DatabaseURL != "" {
		cfg.DatabaseURL = f.Source.DatabaseURL
	}
	if f.Source.Migrate != nil {
		cfg.Migrate = *f.Source.Migrate
	}
	if f.Reporting.ProgramInception != "" {
		inception, err := domain.ParseYearMonth(f.Reporting.ProgramInception)
		if err != nil {
			return fmt.Errorf("program_inception: %w", err)
		}
		cfg.ProgramInception = inception
	}
	if f.Reporting.Timezone != "" {
		cfg.Timezone = f.Reporting.Timezone
	}
	if f.Reporting.Concurrency > 0 {
		cfg.Concurrency = f.Reporting.Concurrency
	}
	if f.Log.Level != "" {
		cfg.LogLevel = f.Log.Level
	}
	if f.Log.Format != "" {
		cfg.LogFormat = f.Log.Format
	}
	return nil
}

// Validate rejects configurations the reconciler cannot run with.
func (c Config) Validate() error {
	switch c.Source {
	case SourceFile:
		if c.DataDir == "" {
			return fmt.Errorf("%w: data_dir is required for the file source", ErrInvalidConfig)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidConfig, c.Source)
	}
	if !c.ProgramInception.Valid() {
		return fmt.Errorf("%w: program inception %s", ErrInvalidConfig, c.ProgramInception)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative", ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// Location loads the reporting time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Logger builds the root logger described by the configuration.
func (c Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if c.LogFormat == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envBool parses common boolean env forms.
func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}
