// Package cache memoizes report results for the HTTP layer. Values are
// stored JSON-encoded in an in-memory store with a configurable TTL.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	go_store "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"
)

// PrefixedCache wraps a cache.Cache and adds a prefix to all keys, so
// multiple typed caches can share one backing store.
type PrefixedCache[T any] struct {
	cache  *cache.Cache[[]byte]
	prefix string
	ttl    time.Duration
}

// New creates an in-memory cache whose entries expire after ttl.
func New[T any](prefix string, ttl time.Duration) *PrefixedCache[T] {
	client := gocache.New(ttl, 2*ttl)
	return &PrefixedCache[T]{
		cache:  cache.New[[]byte](go_store.NewGoCache(client)),
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get retrieves a value from the cache with the prefixed key.
func (p *PrefixedCache[T]) Get(ctx context.Context, key any) (T, error) {
	prefixedKey := p.prefix + fmt.Sprintf("%v", key)
	data, err := p.cache.Get(ctx, prefixedKey)
	if err != nil {
		return *new(T), err
	}
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return *new(T), err
	}
	return result, nil
}

// Set stores a value in the cache with the prefixed key.
func (p *PrefixedCache[T]) Set(ctx context.Context, key any, object T, options ...store.Option) error {
	prefixedKey := p.prefix + fmt.Sprintf("%v", key)
	data, err := json.Marshal(object)
	if err != nil {
		return err
	}
	if len(options) == 0 {
		options = []store.Option{store.WithExpiration(p.ttl)}
	}
	return p.cache.Set(ctx, prefixedKey, data, options...)
}

// Delete removes a value from the cache with the prefixed key.
func (p *PrefixedCache[T]) Delete(ctx context.Context, key any) error {
	prefixedKey := p.prefix + fmt.Sprintf("%v", key)
	return p.cache.Delete(ctx, prefixedKey)
}

// Clear removes all values from the cache.
func (p *PrefixedCache[T]) Clear(ctx context.Context) error {
	return p.cache.Clear(ctx)
}
