/*
Package storage provides the key-value substrate every CRM collection is
persisted in.

The KV interface is small: string keys, opaque byte values,
Get/Set/Remove/Clear/Keys. Each collection lives under one key (for example
crm_leads) as a JSON array, and the session and seed stamps live under
their own keys. Several drivers implement KV so the same data layer runs
on a laptop file, an embedded SQL database, a shared Postgres or an S3
bucket.

# Architecture

	┌──────────────────── STORAGE ──────────────────────────────┐
	│                                                            │
	│  collection.Store[T] / auth.Session / seed.Bootstrap       │
	│        │  GetJSON / SetJSON                                │
	│        ▼                                                   │
	│  ┌────────────────────────────────────────────┐           │
	│  │ QuotaStore (optional, Config.QuotaBytes)   │           │
	│  │  - len(key)+len(value) per entry           │           │
	│  │  - rejects writes past the budget          │           │
	│  └──────────────────┬─────────────────────────┘           │
	│                     ▼                                      │
	│  ┌────────┬────────┬─────────┬──────────┬────────┐        │
	│  │ memory │  bolt  │ sqlite  │ postgres │   s3   │        │
	│  └────────┴────────┴─────────┴──────────┴────────┘        │
	└────────────────────────────────────────────────────────────┘

# Drivers

memory:
  - map guarded by an RWMutex, values copied in and out
  - used by unit tests and throwaway sessions

bolt (default):
  - file <data_dir>/crm.db, single bucket "kv"
  - one write transaction per Set, fsync on commit

sqlite:
  - modernc.org/sqlite, no cgo
  - table kv(key TEXT PRIMARY KEY, value BLOB), upsert on Set

postgres:
  - pgx through database/sql
  - same table shape as sqlite, ON CONFLICT upsert

s3:
  - one object per key under an optional prefix
  - static credentials or the default AWS chain, path-style for MinIO

# Errors

Get of an absent key returns ErrNotFound. A write that cannot fit returns
an error wrapping ErrStorageFull: drivers translate their native capacity
signals (ENOSPC, SQLITE_FULL, postgres 53100 and 54000, S3 EntityTooLarge)
and IsFull checks for the sentinel. Remove of an absent key is not an
error.

# Usage

	kv, err := storage.Open(ctx, storage.Config{
		Driver:     storage.DriverSQLite,
		DataDir:    "/var/lib/crm",
		QuotaBytes: storage.DefaultQuotaBytes,
	})
	if err != nil {
		return err
	}
	defer kv.Close()

	if err := storage.SetJSON(ctx, kv, types.KeyInitialized, true); err != nil {
		return err
	}
	initialized := storage.GetJSON(ctx, kv, types.KeyInitialized, false)

GetJSON never fails: absent or malformed values yield the default.
*/
package storage
