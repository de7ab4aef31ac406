// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/RickFBAG/photoframe/internal/config"
)

type memoryKey struct {
	namespace string
	key       string
}

// Memory is a bounded LRU tier with TTL-aware entries. The doubly-linked
// list keeps usage order so eviction and promotion are O(1); the front of
// the list is the most recently used entry.
type Memory struct {
	enabled    bool
	maxItems   int
	defaultTTL time.Duration

	mu    sync.Mutex
	items map[memoryKey]*list.Element
	order *list.List
}

// NewMemory builds the memory tier from its configuration.
func NewMemory(cfg config.MemoryCacheConfig) *Memory {
	return &Memory{
		enabled:    cfg.Enabled && cfg.MaxItems > 0,
		maxItems:   cfg.MaxItems,
		defaultTTL: time.Duration(cfg.DefaultTTL) * time.Second,
		items:      make(map[memoryKey]*list.Element),
		order:      list.New(),
	}
}

// Name identifies the tier in cleanup stats and logs.
func (m *Memory) Name() string { return "memory" }

// Enabled reports whether the tier actively stores items.
func (m *Memory) Enabled() bool { return m.enabled }

// Store inserts a payload and returns the resulting entry. A zero ttl uses
// the tier default, NoExpiry pins the entry.
func (m *Memory) Store(namespace, key string, payload []byte, ttl time.Duration, metadata map[string]string) (*Entry, error) {
	if !m.enabled {
		return nil, ErrBackendDisabled
	}
	now := time.Now()
	entry := &Entry{
		Namespace: namespace,
		Key:       key,
		Payload:   payload,
		Metadata:  cloneMetadata(metadata),
		CreatedAt: now,
		ExpiresAt: expiry(ttl, m.defaultTTL, now),
	}
	m.StoreEntry(entry)
	return entry, nil
}

// StoreEntry inserts an existing entry, keeping its expiry. Used by the
// Manager to promote durable-tier hits.
func (m *Memory) StoreEntry(entry *Entry) {
	if !m.enabled {
		return
	}
	k := memoryKey{entry.Namespace, entry.Key}
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.items[k]; ok {
		el.Value = entry
		m.order.MoveToFront(el)
	} else {
		m.items[k] = m.order.PushFront(entry)
	}
	for m.order.Len() > m.maxItems {
		m.evictOldest()
	}
}

// Get returns a live entry, promoting it to most recently used. Expired
// entries are dropped on the spot.
func (m *Memory) Get(namespace, key string) *Entry {
	if !m.enabled {
		return nil
	}
	k := memoryKey{namespace, key}
	m.mu.Lock()
	defer m.mu.Unlock()
	el, ok := m.items[k]
	if !ok {
		return nil
	}
	entry := el.Value.(*Entry)
	if entry.Expired(time.Now()) {
		m.order.Remove(el)
		delete(m.items, k)
		return nil
	}
	m.order.MoveToFront(el)
	return entry
}

// Invalidate removes a single key, or the whole namespace when key is
// empty. Returns the number of removed entries.
func (m *Memory) Invalidate(namespace, key string) int {
	if !m.enabled {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if key != "" {
		if el, ok := m.items[memoryKey{namespace, key}]; ok {
			m.order.Remove(el)
			delete(m.items, memoryKey{namespace, key})
			return 1
		}
		return 0
	}
	removed := 0
	for k, el := range m.items {
		if k.namespace == namespace {
			m.order.Remove(el)
			delete(m.items, k)
			removed++
		}
	}
	return removed
}

// Cleanup drops expired entries and returns how many were purged.
func (m *Memory) Cleanup() int {
	if !m.enabled {
		return 0
	}
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	purged := 0
	for k, el := range m.items {
		if el.Value.(*Entry).Expired(now) {
			m.order.Remove(el)
			delete(m.items, k)
			purged++
		}
	}
	return purged
}

// Len reports the number of held entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *Memory) evictOldest() {
	el := m.order.Back()
	if el == nil {
		return
	}
	entry := el.Value.(*Entry)
	m.order.Remove(el)
	delete(m.items, memoryKey{entry.Namespace, entry.Key})
}

func cloneMetadata(metadata map[string]string) map[string]string {
	clone := make(map[string]string, len(metadata))
	for k, v := range metadata {
		clone[k] = v
	}
	return clone
}
