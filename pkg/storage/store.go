package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key holds no value
	ErrNotFound = errors.New("storage: key not found")

	// ErrStorageFull is wrapped by Set when the medium rejects a write for capacity
	ErrStorageFull = errors.New("storage quota exceeded, clear some data and retry")

	// ErrUnknownDriver is returned by Open for an unsupported driver name
	ErrUnknownDriver = errors.New("storage: unknown driver")
)

// KV is the durable key-value substrate under every entity collection.
// Values are opaque bytes (JSON in practice). Set replaces the whole value
// or fails; there is no merge.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)

	// Utility
	Close() error
}

// IsFull reports whether err signals a capacity rejection
func IsFull(err error) bool {
	return errors.Is(err, ErrStorageFull)
}
