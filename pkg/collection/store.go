package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/log"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/metrics"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
	"github.com/rs/zerolog"
)

// ErrDuplicateID is returned by ReplaceAll when two items share an id
var ErrDuplicateID = errors.New("collection: duplicate id")

const (
	fieldID        = "id"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"

	// bound on id regeneration when a fresh id collides
	maxIDAttempts = 16
)

type options struct {
	ids IDGenerator
	now func() time.Time
}

// Option configures a Store
type Option func(*options)

// WithIDGenerator replaces the default time+random generator
func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// WithClock replaces time.Now for timestamps
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Store manages one entity collection persisted as a single JSON array
// under one key. Every mutation rewrites the whole array.
type Store[T types.Entity] struct {
	kv  storage.KV
	key string
	ids IDGenerator
	now func() time.Time

	// serializes read-modify-write cycles
	mu sync.Mutex
}

// New creates a store for the collection persisted under key
func New[T types.Entity](kv storage.KV, key types.Collection, opts ...Option) *Store[T] {
	o := options{ids: TimeRandomIDs{}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{kv: kv, key: string(key), ids: o.ids, now: o.now}
}

// Key returns the persistence key
func (s *Store[T]) Key() string {
	return s.key
}

// IDs returns the generator used for new entities
func (s *Store[T]) IDs() IDGenerator {
	return s.ids
}

func (s *Store[T]) logger() zerolog.Logger {
	return log.WithCollection(s.key)
}

// GetAll returns the collection in stored order. Malformed data is logged
// and read as an empty collection.
func (s *Store[T]) GetAll(ctx context.Context) ([]T, error) {
	timer := metrics.NewTimer()
	items, err := s.readAll(ctx)
	s.observe("get_all", timer, result(err))
	return items, err
}

// GetByID scans the collection for id
func (s *Store[T]) GetByID(ctx context.Context, id string) (T, bool, error) {
	var zero T
	items, err := s.readAll(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if item.GetID() == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Create assigns a fresh id and timestamps, appends the entity and
// persists the collection. Any id or timestamps on item are ignored.
func (s *Store[T]) Create(ctx context.Context, item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := metrics.NewTimer()
	created, err := s.create(ctx, item)
	s.observe("create", timer, result(err))
	return created, err
}

func (s *Store[T]) create(ctx context.Context, item T) (T, error) {
	var zero T
	items, err := s.readAll(ctx)
	if err != nil {
		return zero, err
	}

	id, err := s.uniqueID(items)
	if err != nil {
		return zero, err
	}

	f, err := toFields(item)
	if err != nil {
		return zero, fmt.Errorf("failed to encode entity: %w", err)
	}
	now := s.stamp(time.Time{})
	if err := f.set(fieldID, id); err != nil {
		return zero, err
	}
	if err := f.set(fieldCreatedAt, now); err != nil {
		return zero, err
	}
	if err := f.set(fieldUpdatedAt, now); err != nil {
		return zero, err
	}
	created, err := fromFields[T](f)
	if err != nil {
		return zero, fmt.Errorf("failed to decode entity: %w", err)
	}

	items = append(items, created)
	if err := s.write(ctx, items); err != nil {
		return zero, err
	}

	logger := s.logger()
	logger.Debug().Str("entity_id", id).Msg("Created entity")
	return created, nil
}

// Update merges the top-level fields of patch (a string-keyed map or
// json.RawMessage encoding to a JSON object) over the stored entity. Other
// patch types fail with ErrInvalidPatch; use UpdateFunc for typed changes.
// The id and createdAt are preserved and updatedAt advances. A missing id
// returns false without writing.
func (s *Store[T]) Update(ctx context.Context, id string, patch any) (T, bool, error) {
	if err := checkPatch(patch); err != nil {
		var zero T
		return zero, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	timer := metrics.NewTimer()
	updated, found, err := s.update(ctx, id, func(T) (any, error) { return patch, nil })
	s.observe("update", timer, lookupResult(found, err))
	return updated, found, err
}

// UpdateFunc applies fn to a copy of the stored entity and persists the
// result under the same rules as Update.
func (s *Store[T]) UpdateFunc(ctx context.Context, id string, fn func(*T)) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := metrics.NewTimer()
	updated, found, err := s.update(ctx, id, func(current T) (any, error) {
		fn(&current)
		return current, nil
	})
	s.observe("update", timer, lookupResult(found, err))
	return updated, found, err
}

func (s *Store[T]) update(ctx context.Context, id string, patchFor func(T) (any, error)) (T, bool, error) {
	var zero T
	items, err := s.readAll(ctx)
	if err != nil {
		return zero, false, err
	}

	index := -1
	for i, item := range items {
		if item.GetID() == id {
			index = i
			break
		}
	}
	if index == -1 {
		return zero, false, nil
	}

	base, err := toFields(items[index])
	if err != nil {
		return zero, true, fmt.Errorf("failed to encode entity: %w", err)
	}
	patch, err := patchFor(items[index])
	if err != nil {
		return zero, true, err
	}
	merged, err := overlay(base, patch)
	if err != nil {
		return zero, true, err
	}

	merged[fieldID] = base[fieldID]
	if createdAt, ok := base[fieldCreatedAt]; ok {
		merged[fieldCreatedAt] = createdAt
	}
	if err := merged.set(fieldUpdatedAt, s.stamp(base.time(fieldUpdatedAt))); err != nil {
		return zero, true, err
	}

	updated, err := fromFields[T](merged)
	if err != nil {
		return zero, true, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	items[index] = updated
	if err := s.write(ctx, items); err != nil {
		return zero, true, err
	}
	return updated, true, nil
}

// Delete removes the entity with id. It reports false, without writing,
// when no entity matched.
func (s *Store[T]) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := metrics.NewTimer()
	removed, err := s.delete(ctx, id)
	s.observe("delete", timer, lookupResult(removed, err))
	return removed, err
}

func (s *Store[T]) delete(ctx context.Context, id string) (bool, error) {
	items, err := s.readAll(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if err := s.write(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAll replaces the collection with an empty one
func (s *Store[T]) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := metrics.NewTimer()
	err := s.write(ctx, []T{})
	s.observe("delete_all", timer, result(err))
	return err
}

// ReplaceAll persists items verbatim as the whole collection. Ids must be
// non-empty and unique.
func (s *Store[T]) ReplaceAll(ctx context.Context, items []T) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := item.GetID()
		if id == "" {
			return fmt.Errorf("%w: empty id in %s", ErrDuplicateID, s.key)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s in %s", ErrDuplicateID, id, s.key)
		}
		seen[id] = struct{}{}
	}
	if items == nil {
		items = []T{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	timer := metrics.NewTimer()
	err := s.write(ctx, items)
	s.observe("replace_all", timer, result(err))
	return err
}

// Search returns the entities matching pred in stored order
func (s *Store[T]) Search(ctx context.Context, pred func(T) bool) ([]T, error) {
	items, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]T, 0)
	for _, item := range items {
		if pred(item) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// Count returns the collection size
func (s *Store[T]) Count(ctx context.Context) (int, error) {
	items, err := s.readAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *Store[T]) readAll(ctx context.Context) ([]T, error) {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger := s.logger()
		logger.Warn().Err(err).Msg("Collection data is malformed, reading as empty")
		metrics.CorruptReadsTotal.WithLabelValues(s.key).Inc()
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *Store[T]) write(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.key, err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		if storage.IsFull(err) {
			metrics.StorageFullTotal.Inc()
			logger := s.logger()
			logger.Error().Err(err).Int("bytes", len(data)).Msg("Storage full")
		}
		return err
	}
	return nil
}

func (s *Store[T]) uniqueID(items []T) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.ids.NewID()
		if id == "" {
			continue
		}
		taken := false
		for _, item := range items {
			if item.GetID() == id {
				taken = true
				break
			}
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: could not mint a fresh id for %s", ErrDuplicateID, s.key)
}

// stamp returns the current time at millisecond precision, moved past prev
// when the clock has not advanced beyond it.
func (s *Store[T]) stamp(prev time.Time) time.Time {
	now := s.now().UTC().Truncate(time.Millisecond)
	if !prev.IsZero() && !now.After(prev) {
		now = prev.UTC().Truncate(time.Millisecond).Add(time.Millisecond)
	}
	return now
}

func (s *Store[T]) observe(op string, timer *metrics.Timer, res string) {
	timer.ObserveDurationVec(metrics.StoreOperationDuration, s.key, op)
	metrics.StoreOperationsTotal.WithLabelValues(s.key, op, res).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func lookupResult(found bool, err error) string {
	if err != nil {
		return "error"
	}
	if !found {
		return "not_found"
	}
	return "ok"
}
