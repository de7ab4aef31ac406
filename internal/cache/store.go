// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"
)

// LoaderFunc produces a fresh value for a cache key.
type LoaderFunc func(ctx context.Context) (any, error)

// value plus its freshness window. Between expiresAt and staleAt the value
// is served while a background refresh runs.
type storeEntry struct {
	value     any
	expiresAt time.Time
	staleAt   time.Time
}

func (e *storeEntry) fresh(now time.Time) bool { return now.Before(e.expiresAt) }
func (e *storeEntry) stale(now time.Time) bool { return now.Before(e.staleAt) }

// ttlCache is a single namespace of the Store.
type ttlCache struct {
	mu      sync.Mutex
	entries map[string]*storeEntry
	flight  singleflight.Group
}

func newTTLCache() *ttlCache {
	return &ttlCache{entries: make(map[string]*storeEntry)}
}

func (c *ttlCache) lookup(key string) (*storeEntry, time.Time) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], now
}

func (c *ttlCache) put(key string, value any, ttl, staleTTL time.Duration) {
	if ttl < 0 {
		ttl = 0
	}
	if staleTTL < ttl {
		staleTTL = ttl
	}
	now := time.Now()
	c.mu.Lock()
	c.entries[key] = &storeEntry{
		value:     value,
		expiresAt: now.Add(ttl),
		staleAt:   now.Add(staleTTL),
	}
	c.mu.Unlock()
}

func (c *ttlCache) getOrLoad(ctx context.Context, key string, loader LoaderFunc, ttl, staleTTL time.Duration) (any, error) {
	entry, now := c.lookup(key)
	if entry != nil && entry.fresh(now) {
		return entry.value, nil
	}
	if entry != nil && entry.stale(now) {
		c.scheduleRefresh(key, loader, ttl, staleTTL)
		return entry.value, nil
	}

	value, err, _ := c.flight.Do(key, func() (any, error) {
		// Another caller may have loaded the value while we waited on
		// the flight.
		if entry, now := c.lookup(key); entry != nil && entry.fresh(now) {
			return entry.value, nil
		}
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		c.put(key, value, ttl, staleTTL)
		return value, nil
	})
	return value, err
}

// scheduleRefresh starts at most one background reload per key. DoChan
// joins an in-flight computation instead of starting a second one, so a
// burst of stale readers produces a single loader call. Failures are
// logged and the stale value stays in place.
func (c *ttlCache) scheduleRefresh(key string, loader LoaderFunc, ttl, staleTTL time.Duration) {
	ch := c.flight.DoChan(key, func() (any, error) {
		value, err := loader(context.Background())
		if err != nil {
			return nil, err
		}
		c.put(key, value, ttl, staleTTL)
		return value, nil
	})
	go func() {
		if res := <-ch; res.Err != nil {
			log.WithError(res.Err).Warnf("cache refresh failed for key %q, keeping stale value", key)
		}
	}()
}

func (c *ttlCache) clear() {
	c.mu.Lock()
	c.entries = make(map[string]*storeEntry)
	c.mu.Unlock()
}

// Store is a container for namespaced single-flight TTL caches. It backs
// any subsystem that needs stale-while-revalidate semantics, not just the
// render pipeline.
type Store struct {
	mu     sync.Mutex
	caches map[string]*ttlCache
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{caches: make(map[string]*ttlCache)}
}

func (s *Store) namespace(name string) *ttlCache {
	s.mu.Lock()
	defer s.mu.Unlock()
	cache := s.caches[name]
	if cache == nil {
		cache = newTTLCache()
		s.caches[name] = cache
	}
	return cache
}

// GetOrLoad returns the cached value for (namespace, key), loading it at
// most once across concurrent callers. A fresh value is returned as is. A
// stale value is returned immediately while one background refresh runs;
// refresh errors never reach callers. On the expired/absent path the
// loader runs under a per-key flight and its error propagates.
//
// staleTTL is clamped to at least ttl, so the stale window always follows
// the fresh window.
func (s *Store) GetOrLoad(ctx context.Context, namespace, key string, loader LoaderFunc, ttl, staleTTL time.Duration) (any, error) {
	return s.namespace(namespace).getOrLoad(ctx, key, loader, ttl, staleTTL)
}

// Clear drops every entry in the given namespace.
func (s *Store) Clear(namespace string) {
	s.mu.Lock()
	cache := s.caches[namespace]
	s.mu.Unlock()
	if cache != nil {
		cache.clear()
	}
}

// ClearAll drops every namespace.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.caches = make(map[string]*ttlCache)
	s.mu.Unlock()
}
