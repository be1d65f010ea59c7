package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// DefaultQuotaBytes matches the usual browser local storage budget
const DefaultQuotaBytes = 5 * 1024 * 1024

// QuotaStore wraps a KV with a total byte budget. Usage counts
// len(key)+len(value) for every stored entry.
type QuotaStore struct {
	KV
	max int64

	mu     sync.Mutex
	sizes  map[string]int64
	used   int64
	loaded bool
}

// WithQuota wraps kv with a budget of maxBytes. A non-positive budget
// returns kv unchanged.
func WithQuota(kv KV, maxBytes int64) KV {
	if maxBytes <= 0 {
		return kv
	}
	return &QuotaStore{KV: kv, max: maxBytes, sizes: make(map[string]int64)}
}

// Used returns the bytes currently accounted against the budget
func (q *QuotaStore) Used(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.load(ctx); err != nil {
		return 0, err
	}
	return q.used, nil
}

// Limit returns the configured budget
func (q *QuotaStore) Limit() int64 {
	return q.max
}

func (q *QuotaStore) load(ctx context.Context) error {
	if q.loaded {
		return nil
	}
	keys, err := q.KV.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		v, err := q.KV.Get(ctx, k)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		size := int64(len(k) + len(v))
		q.sizes[k] = size
		q.used += size
	}
	q.loaded = true
	return nil
}

func (q *QuotaStore) Set(ctx context.Context, key string, value []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.load(ctx); err != nil {
		return err
	}
	size := int64(len(key) + len(value))
	next := q.used - q.sizes[key] + size
	if next > q.max {
		return fmt.Errorf("%w: writing %s needs %d bytes, budget is %d", ErrStorageFull, key, next, q.max)
	}
	if err := q.KV.Set(ctx, key, value); err != nil {
		return err
	}
	q.used = next
	q.sizes[key] = size
	return nil
}

func (q *QuotaStore) Remove(ctx context.Context, key string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.KV.Remove(ctx, key); err != nil {
		return err
	}
	if q.loaded {
		q.used -= q.sizes[key]
		delete(q.sizes, key)
	}
	return nil
}

func (q *QuotaStore) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.KV.Clear(ctx); err != nil {
		return err
	}
	q.sizes = make(map[string]int64)
	q.used = 0
	q.loaded = true
	return nil
}
