package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/log"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

var (
	fromDriver  = flag.String("from-driver", storage.DriverBolt, "Source storage driver")
	fromDir     = flag.String("from-dir", "./crm-data", "Source data directory (bolt, sqlite)")
	fromDSN     = flag.String("from-dsn", "", "Source postgres DSN")
	toDriver    = flag.String("to-driver", storage.DriverSQLite, "Destination storage driver")
	toDir       = flag.String("to-dir", "./crm-data", "Destination data directory (bolt, sqlite)")
	toDSN       = flag.String("to-dsn", "", "Destination postgres DSN")
	dryRun      = flag.Bool("dry-run", false, "Show what would be copied without making changes")
	backupPath  = flag.String("backup", "", "Backup path for a bolt source (default: <from-dir>/crm.db.backup)")
	verbose     = flag.Bool("verbose", false, "Log every copied key")
	skipInvalid = flag.Bool("skip-invalid", false, "Copy the remaining keys when some values are not valid JSON")
)

func main() {
	flag.Parse()

	level := log.InfoLevel
	if *verbose {
		level = log.DebugLevel
	}
	log.Init(log.Config{Level: level})
	logger := log.WithComponent("migrate")

	src := storage.Config{Driver: *fromDriver, DataDir: *fromDir, PostgresDSN: *fromDSN}
	dst := storage.Config{Driver: *toDriver, DataDir: *toDir, PostgresDSN: *toDSN}
	if src.Driver == dst.Driver && src.DataDir == dst.DataDir && src.PostgresDSN == dst.PostgresDSN {
		logger.Fatal().Msg("Source and destination are the same store")
	}

	logger.Info().
		Str("from", describe(src)).
		Str("to", describe(dst)).
		Bool("dry_run", *dryRun).
		Msg("CRM store migration")

	// Back up a bolt source unless in dry-run mode
	if src.Driver == storage.DriverBolt && !*dryRun {
		dbPath := filepath.Join(src.DataDir, storage.BoltFileName)
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			logger.Fatal().Str("path", dbPath).Msg("Database not found")
		}
		backupFile := *backupPath
		if backupFile == "" {
			backupFile = dbPath + ".backup"
		}
		if err := backupBolt(dbPath, backupFile); err != nil {
			logger.Fatal().Err(err).Msg("Failed to create backup")
		}
		logger.Info().Str("path", backupFile).Msg("Backup created")
	}

	ctx := context.Background()
	copied, skipped, err := migrate(ctx, src, dst, options{DryRun: *dryRun, SkipInvalid: *skipInvalid})
	if err != nil {
		logger.Fatal().Err(err).Msg("Migration failed")
	}

	if *dryRun {
		logger.Info().Int("keys", copied).Int("invalid", skipped).Msg("Dry run completed, no changes made")
		return
	}
	if skipped > 0 {
		logger.Warn().Int("keys", copied).Int("invalid", skipped).Msg("Migration completed with skipped keys")
		return
	}
	logger.Info().Int("keys", copied).Msg("Migration completed")
}

// ErrInvalidValues is returned when source values are not valid JSON and
// skipping them was not requested. Nothing is written in that case.
var ErrInvalidValues = errors.New("source holds values that are not valid JSON")

type options struct {
	DryRun      bool
	SkipInvalid bool
}

// migrate copies every key from src to dst. Every value is read and
// checked before the first write. Values that are not valid JSON fail the
// run unless opts.SkipInvalid is set, in which case they are counted and
// left out. The data version is stamped when the source lacks one.
func migrate(ctx context.Context, src, dst storage.Config, opts options) (copied, skipped int, err error) {
	logger := log.WithComponent("migrate")

	from, err := storage.Open(ctx, src)
	if err != nil {
		return 0, 0, err
	}
	defer from.Close()

	keys, err := from.Keys(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	logger.Info().Int("keys", len(keys)).Msg("Found keys to migrate")

	values := make(map[string][]byte, len(keys))
	var invalid []string
	for _, k := range keys {
		v, err := from.Get(ctx, k)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read %s: %w", k, err)
		}
		if !json.Valid(v) {
			logger.Warn().Str("key", k).Msg("Value is not valid JSON")
			invalid = append(invalid, k)
			continue
		}
		values[k] = v
	}
	if len(invalid) > 0 && !opts.SkipInvalid {
		return 0, len(invalid), fmt.Errorf("%w: %s (rerun with --skip-invalid to copy the rest)",
			ErrInvalidValues, strings.Join(invalid, ", "))
	}
	skipped = len(invalid)

	var to storage.KV
	if !opts.DryRun {
		if to, err = storage.Open(ctx, dst); err != nil {
			return 0, skipped, err
		}
		defer to.Close()
	}

	for _, k := range keys {
		v, ok := values[k]
		if !ok {
			continue
		}
		if opts.DryRun {
			logger.Info().Str("key", k).Int("bytes", len(v)).Msg("[DRY RUN] Would copy")
			copied++
			continue
		}
		if err := to.Set(ctx, k, v); err != nil {
			return copied, skipped, fmt.Errorf("failed to copy %s: %w", k, err)
		}
		copied++
		logger.Debug().Str("key", k).Int("bytes", len(v)).Msg("Copied")
	}

	_, hasVersion := values[types.KeyDataVersion]
	if !hasVersion && copied > 0 && !opts.DryRun {
		if err := storage.SetJSON(ctx, to, types.KeyDataVersion, types.CurrentDataVersion); err != nil {
			return copied, skipped, err
		}
		logger.Info().Str("version", types.CurrentDataVersion).Msg("Stamped data version")
	}
	return copied, skipped, nil
}

// backupBolt writes a consistent snapshot of the bolt file
func backupBolt(dbPath, backupFile string) error {
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return db.View(func(tx *bolt.Tx) error {
		return tx.CopyFile(backupFile, 0600)
	})
}

func describe(cfg storage.Config) string {
	switch cfg.Driver {
	case storage.DriverPostgres, storage.DriverMemory, storage.DriverS3:
		return cfg.Driver
	default:
		return cfg.Driver + ":" + cfg.DataDir
	}
}
