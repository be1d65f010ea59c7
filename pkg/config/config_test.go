package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/seed"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, storage.DriverBolt, cfg.Storage.Driver)
	assert.Equal(t, int64(storage.DefaultQuotaBytes), cfg.Storage.QuotaBytes)
	assert.Equal(t, seed.DefaultCounts(), cfg.Seed.Counts)
	assert.Equal(t, "time", cfg.IDs.Strategy)
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "crm.yaml",
			content: `
log:
  level: debug
  json: true
storage:
  driver: sqlite
  data_dir: /var/lib/crm
  quota_bytes: 1024
ids:
  strategy: uuid
seed:
  random_seed: 7
  counts:
    leads: 3
`,
		},
		{
			name: "toml",
			file: "crm.toml",
			content: `
[log]
level = "debug"
json = true

[storage]
driver = "sqlite"
data_dir = "/var/lib/crm"
quota_bytes = 1024

[ids]
strategy = "uuid"

[seed]
random_seed = 7

[seed.counts]
leads = 3
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "debug", cfg.Log.Level)
			assert.True(t, cfg.Log.JSON)
			assert.Equal(t, storage.DriverSQLite, cfg.Storage.Driver)
			assert.Equal(t, "/var/lib/crm", cfg.Storage.DataDir)
			assert.Equal(t, int64(1024), cfg.Storage.QuotaBytes)
			assert.Equal(t, "uuid", cfg.IDs.Strategy)
			assert.Equal(t, uint64(7), cfg.Seed.RandomSeed)
			assert.Equal(t, 3, cfg.Seed.Counts.Leads)
			// untouched keys keep their defaults
			assert.Equal(t, seed.DefaultCounts().Accounts, cfg.Seed.Counts.Accounts)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{name: "unknown extension", path: func(t *testing.T) string { return writeFile(t, "crm.ini", "x=1") }},
		{name: "missing file", path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{name: "malformed yaml", path: func(t *testing.T) string { return writeFile(t, "crm.yaml", "log: [") }},
		{name: "malformed toml", path: func(t *testing.T) string { return writeFile(t, "crm.toml", "[log") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			assert.Error(t, err)
		})
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "crm.json", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvStorageDriver: "memory",
		EnvDataDir:       "/tmp/crm",
		EnvLogLevel:      "",
	}
	cfg := Default()
	cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/crm", cfg.Storage.DataDir)
	assert.Equal(t, "info", cfg.Log.Level, "empty values do not override")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv(EnvStorageDriver, "memory")
	cfg, err := Load(writeFile(t, "crm.yaml", "storage:\n  driver: sqlite\n"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoad_NegativeSeedCount(t *testing.T) {
	path := writeFile(t, "crm.yaml", "seed:\n  counts:\n    leads: -1\n    reports: -2\n")

	_, err := Load(path)
	require.ErrorIs(t, err, seed.ErrNegativeCount)
	assert.Contains(t, err.Error(), "leads = -1")
	assert.Contains(t, err.Error(), "reports = -2")
}
