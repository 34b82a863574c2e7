package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-reconciliation/internal/domain"
)

var envKeys = []string{
	"RECON_SOURCE", "RECON_DATA_DIR", "DATABASE_URL", "RECON_MIGRATE",
	"RECON_PROGRAM_INCEPTION", "RECON_TIMEZONE", "RECON_CONCURRENCY",
	"RECON_LOG_LEVEL", "RECON_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reconciler.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
source:
  kind: postgres
  database_url: postgres://file@localhost/recon
  migrate: true
reporting:
  program_inception: "2023-06"
  timezone: Europe/Berlin
  concurrency: 4
log:
  level: debug
  format: json
`)

	t.Run("file values", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, SourcePostgres, cfg.Source)
		assert.Equal(t, "postgres://file@localhost/recon", cfg.DatabaseURL)
		assert.True(t, cfg.Migrate)
		assert.Equal(t, domain.NewYearMonth(2023, time.June), cfg.ProgramInception)
		assert.Equal(t, "Europe/Berlin", cfg.Timezone)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env@db/recon")
		t.Setenv("RECON_PROGRAM_INCEPTION", "2024-01")
		t.Setenv("RECON_CONCURRENCY", "8")
		t.Setenv("RECON_MIGRATE", "no")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "postgres://env@db/recon", cfg.DatabaseURL)
		assert.Equal(t, domain.NewYearMonth(2024, time.January), cfg.ProgramInception)
		assert.Equal(t, 8, cfg.Concurrency)
		assert.False(t, cfg.Migrate)
	})

	t.Run("invalid env int keeps file value", func(t *testing.T) {
		t.Setenv("RECON_CONCURRENCY", "lots")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Concurrency)
	})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{
			name: "malformed yaml",
			file: "source: [",
		},
		{
			name: "bad inception in file",
			file: "reporting:\n  program_inception: June 2023\n",
		},
		{
			name: "bad inception in env",
			env:  map[string]string{"RECON_PROGRAM_INCEPTION": "2023/06"},
		},
		{
			name: "postgres without url",
			env:  map[string]string{"RECON_SOURCE": "postgres"},
		},
		{
			name: "unknown source",
			env:  map[string]string{"RECON_SOURCE": "s3"},
		},
		{
			name: "unknown timezone",
			env:  map[string]string{"RECON_TIMEZONE": "Mars/Olympus_Mons"},
		},
		{
			name: "unknown log format",
			env:  map[string]string{"RECON_LOG_FORMAT": "xml"},
		},
		{
			name: "unknown log level",
			env:  map[string]string{"RECON_LOG_LEVEL": "chatty"},
		},
		{
			name: "negative concurrency",
			env:  map[string]string{"RECON_CONCURRENCY": "-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Source = SourcePostgres
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.DatabaseURL = "postgres://localhost/recon"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Location(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "America/New_York"

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}
