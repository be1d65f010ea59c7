package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

// Collection is the type-erased view of a cache used by generic callers
// such as the CLI and the registry.
type Collection interface {
	Name() string
	Key() string
	Entity() string
	Len() int
	Load(ctx context.Context) error
	Snapshot() []any
	SearchAny(term string) []any
	GetAny(ctx context.Context, id string) (any, bool, error)
	CreateJSON(ctx context.Context, data []byte) (any, error)
	UpdateJSON(ctx context.Context, id string, patch []byte) (any, bool, error)
	ReplaceJSON(ctx context.Context, data []byte) error
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) error
}

var _ Collection = (*Cache[types.Lead])(nil)

// Snapshot returns the materialized items boxed as any
func (c *Cache[T]) Snapshot() []any {
	return box(c.Items())
}

// SearchAny is Search with boxed results
func (c *Cache[T]) SearchAny(term string) []any {
	return box(c.Search(term))
}

// GetAny is GetByID with a boxed result
func (c *Cache[T]) GetAny(ctx context.Context, id string) (any, bool, error) {
	item, found, err := c.GetByID(ctx, id)
	if err != nil || !found {
		return nil, found, err
	}
	return item, true, nil
}

// CreateJSON decodes one entity from a JSON object and creates it
func (c *Cache[T]) CreateJSON(ctx context.Context, data []byte) (any, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", c.entity, err)
	}
	return c.Create(ctx, item)
}

// UpdateJSON merges a JSON object patch into the entity
func (c *Cache[T]) UpdateJSON(ctx context.Context, id string, patch []byte) (any, bool, error) {
	updated, found, err := c.Update(ctx, id, json.RawMessage(patch))
	if err != nil || !found {
		return nil, found, err
	}
	return updated, true, nil
}

// ReplaceJSON decodes a JSON array and stores it as the whole collection
func (c *Cache[T]) ReplaceJSON(ctx context.Context, data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("invalid %s list: %w", c.entity, err)
	}
	if err := c.store.ReplaceAll(ctx, items); err != nil {
		return err
	}
	return c.Load(ctx)
}

func box[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
