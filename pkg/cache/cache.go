package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/collection"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/events"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/log"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/metrics"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/query"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

// Change describes one refresh of a cache
type Change[T any] struct {
	Op    events.Operation
	ID    string
	Items []T
}

type config struct {
	autoLoad bool
	broker   *events.Broker
}

// Option configures a Cache
type Option func(*config)

// WithAutoLoad controls the initial load. A cache built without it starts
// empty and does not touch storage until Load is called.
func WithAutoLoad(enabled bool) Option {
	return func(c *config) { c.autoLoad = enabled }
}

// WithBroker publishes change events on b in addition to subscriber callbacks
func WithBroker(b *events.Broker) Option {
	return func(c *config) { c.broker = b }
}

// Cache is the in-memory mirror of one collection. Every mutation goes to
// the store first and the list is then rebuilt from what the store holds.
type Cache[T types.Entity] struct {
	store  *collection.Store[T]
	entity string
	broker *events.Broker
	fields func(T) []string

	mu    sync.RWMutex
	items []T

	subMu   sync.Mutex
	subs    map[int]func(Change[T])
	nextSub int
}

// New wraps store. entity names the kind in change events (e.g. "lead").
func New[T types.Entity](ctx context.Context, store *collection.Store[T], entity string, opts ...Option) (*Cache[T], error) {
	return build(ctx, store, entity, nil, opts)
}

func build[T types.Entity](ctx context.Context, store *collection.Store[T], entity string, fields func(T) []string, opts []Option) (*Cache[T], error) {
	cfg := config{autoLoad: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &Cache[T]{
		store:  store,
		entity: entity,
		broker: cfg.broker,
		fields: fields,
		items:  []T{},
		subs:   make(map[int]func(Change[T])),
	}
	if cfg.autoLoad {
		if err := c.Load(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Store returns the backing collection store
func (c *Cache[T]) Store() *collection.Store[T] {
	return c.store
}

// Name returns the short collection name (e.g. "leads")
func (c *Cache[T]) Name() string {
	return types.Collection(c.store.Key()).Short()
}

// Key returns the persistence key
func (c *Cache[T]) Key() string {
	return c.store.Key()
}

// Entity returns the entity kind used in event types
func (c *Cache[T]) Entity() string {
	return c.entity
}

// Items returns a copy of the materialized list
func (c *Cache[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Len returns the number of materialized items
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Load replaces the materialized list with the stored collection
func (c *Cache[T]) Load(ctx context.Context) error {
	if err := c.reload(ctx); err != nil {
		return err
	}
	c.notify(events.OpLoaded, "")
	return nil
}

func (c *Cache[T]) reload(ctx context.Context) error {
	items, err := c.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", c.store.Key(), err)
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	metrics.CollectionItems.WithLabelValues(c.Name()).Set(float64(len(items)))
	return nil
}

// GetByID reads the entity from the store
func (c *Cache[T]) GetByID(ctx context.Context, id string) (T, bool, error) {
	return c.store.GetByID(ctx, id)
}

// Find looks id up in the materialized list only
func (c *Cache[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Create stores item and always reloads
func (c *Cache[T]) Create(ctx context.Context, item T) (T, error) {
	created, err := c.store.Create(ctx, item)
	if err != nil {
		return created, err
	}
	if err := c.reload(ctx); err != nil {
		return created, err
	}
	c.notify(events.OpCreated, created.GetID())
	return created, nil
}

// Update merges patch into the stored entity and reloads only when found
func (c *Cache[T]) Update(ctx context.Context, id string, patch any) (T, bool, error) {
	updated, found, err := c.store.Update(ctx, id, patch)
	return c.afterUpdate(ctx, id, updated, found, err)
}

// UpdateFunc applies fn to the stored entity and reloads only when found
func (c *Cache[T]) UpdateFunc(ctx context.Context, id string, fn func(*T)) (T, bool, error) {
	updated, found, err := c.store.UpdateFunc(ctx, id, fn)
	return c.afterUpdate(ctx, id, updated, found, err)
}

func (c *Cache[T]) afterUpdate(ctx context.Context, id string, updated T, found bool, err error) (T, bool, error) {
	if err != nil || !found {
		return updated, found, err
	}
	if err := c.reload(ctx); err != nil {
		return updated, true, err
	}
	c.notify(events.OpUpdated, id)
	return updated, true, nil
}

// Delete removes the entity and reloads only when something was removed
func (c *Cache[T]) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := c.store.Delete(ctx, id)
	if err != nil || !removed {
		return removed, err
	}
	if err := c.reload(ctx); err != nil {
		return true, err
	}
	c.notify(events.OpDeleted, id)
	return true, nil
}

// DeleteAll empties the collection and reloads
func (c *Cache[T]) DeleteAll(ctx context.Context) error {
	if err := c.store.DeleteAll(ctx); err != nil {
		return err
	}
	if err := c.reload(ctx); err != nil {
		return err
	}
	c.notify(events.OpDeleted, "")
	return nil
}

// Filter returns the materialized items matching pred
func (c *Cache[T]) Filter(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return query.Filter(c.items, pred)
}

// Search matches term case-insensitively against the type's text fields
func (c *Cache[T]) Search(term string) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fields := c.fields
	if fields == nil {
		fields = func(item T) []string { return []string{item.GetID()} }
	}
	return query.Search(c.items, term, fields)
}

// Subscribe registers fn for every refresh. The returned function removes it.
func (c *Cache[T]) Subscribe(fn func(Change[T])) (unsubscribe func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Cache[T]) notify(op events.Operation, id string) {
	c.subMu.Lock()
	subs := make([]func(Change[T]), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()

	if len(subs) > 0 {
		change := Change[T]{Op: op, ID: id, Items: c.Items()}
		for _, fn := range subs {
			fn(change)
		}
	}

	if c.broker != nil {
		c.broker.Publish(&events.Event{
			Type:       events.TypeFor(c.entity, op),
			Collection: c.store.Key(),
			EntityID:   id,
		})
	}

	logger := log.WithCollection(c.store.Key())
	logger.Debug().Str("op", string(op)).Str("entity_id", id).Int("items", c.Len()).Msg("Cache refreshed")
}
