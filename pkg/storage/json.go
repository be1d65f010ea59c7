package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON decodes the value under key into a T. Absent, unreadable or
// malformed data yields def; it never fails.
func GetJSON[T any](ctx context.Context, kv KV, key string, def T) T {
	data, err := kv.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return def
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def
	}
	return v
}

// SetJSON encodes v and stores it under key. Capacity failures keep
// wrapping ErrStorageFull.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}
