package views

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type viewStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	ViewKey(view string) string
}

// Cache is a Redis-backed read-through cache for derived views. Misses and
// store failures on reads degrade to recomputation, never to request errors.
type Cache struct {
	store viewStore
	ttl   time.Duration
}

// NewCache builds a view cache with the provided TTL.
func NewCache(store viewStore, ttl time.Duration) (*Cache, error) {
	if store == nil {
		return nil, fmt.Errorf("view store required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}
	return &Cache{store: store, ttl: ttl}, nil
}

// GetJSON loads the cached view into dest, reporting whether it was present.
func (c *Cache) GetJSON(ctx context.Context, view View, dest any) (bool, error) {
	raw, err := c.store.Get(ctx, c.store.ViewKey(string(view)))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode cached view %s: %w", view, err)
	}
	return true, nil
}

// SetJSON stores the view payload with the configured TTL.
func (c *Cache) SetJSON(ctx context.Context, view View, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode view %s: %w", view, err)
	}
	return c.store.Set(ctx, c.store.ViewKey(string(view)), string(raw), c.ttl)
}

// InvalidateFor drops every view staled by the mutation.
func (c *Cache) InvalidateFor(ctx context.Context, mutation Mutation) error {
	staled := Dependents(mutation)
	if len(staled) == 0 {
		return nil
	}
	keys := make([]string, 0, len(staled))
	for _, view := range staled {
		keys = append(keys, c.store.ViewKey(string(view)))
	}
	return c.store.Del(ctx, keys...)
}
