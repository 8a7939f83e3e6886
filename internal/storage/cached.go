package storage

import (
	"context"

	"presupuesto/internal/cache"
)

// Cached is a read-through, write-through Store decorator. Writes go to the
// underlying store first and only reach the cache once they succeed, so the
// cache never holds a value the store rejected.
type Cached struct {
	next  Store
	cache cache.Cache[string]
}

func NewCached(next Store, c cache.Cache[string]) *Cached {
	return &Cached{next: next, cache: c}
}

// Get implements Store
func (c *Cached) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := c.cache.Get(key); ok {
		return v, true, nil
	}
	v, ok, err := c.next.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	c.cache.Set(key, v)
	return v, true, nil
}

// Set implements Store
func (c *Cached) Set(ctx context.Context, key, value string) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		c.cache.Delete(key)
		return err
	}
	c.cache.Set(key, value)
	return nil
}

// Delete implements Store
func (c *Cached) Delete(ctx context.Context, key string) error {
	c.cache.Delete(key)
	return c.next.Delete(ctx, key)
}
