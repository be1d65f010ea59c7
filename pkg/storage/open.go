package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Driver names accepted by Open
const (
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

// Config selects and parameterizes a driver
type Config struct {
	Driver      string   `yaml:"driver" toml:"driver"`
	DataDir     string   `yaml:"data_dir" toml:"data_dir"`
	QuotaBytes  int64    `yaml:"quota_bytes" toml:"quota_bytes"`
	SQLitePath  string   `yaml:"sqlite_path" toml:"sqlite_path"`
	PostgresDSN string   `yaml:"postgres_dsn" toml:"postgres_dsn"`
	S3          S3Config `yaml:"s3" toml:"s3"`
}

// DefaultConfig is a bolt store under ./crm-data with the browser budget
func DefaultConfig() Config {
	return Config{
		Driver:     DriverBolt,
		DataDir:    "./crm-data",
		QuotaBytes: DefaultQuotaBytes,
	}
}

// Open builds the configured driver and applies the quota
func Open(ctx context.Context, cfg Config) (KV, error) {
	var (
		kv  KV
		err error
	)
	switch strings.ToLower(cfg.Driver) {
	case DriverMemory:
		kv = NewMemoryStore()
	case DriverBolt, "":
		kv, err = NewBoltStore(cfg.DataDir)
	case DriverSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = filepath.Join(cfg.DataDir, "crm.sqlite")
		}
		kv, err = NewSQLiteStore(path)
	case DriverPostgres:
		kv, err = NewPostgresStore(ctx, cfg.PostgresDSN)
	case DriverS3:
		kv, err = NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Driver, err)
	}
	return WithQuota(kv, cfg.QuotaBytes), nil
}
