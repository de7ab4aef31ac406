// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"time"

	"github.com/apex/log"

	"github.com/RickFBAG/photoframe/internal/config"
)

// Backend is the contract each cache tier satisfies. Disabled tiers answer
// every call as a no-op, so the Manager works with any subset enabled,
// including none, which degrades to a pure pass-through.
type Backend interface {
	Name() string
	Enabled() bool
	Store(namespace, key string, payload []byte, ttl time.Duration, metadata map[string]string) (*Entry, error)
	Get(namespace, key string) *Entry
	Invalidate(namespace, key string) int
	Cleanup() int
}

// Manager coordinates the cache tiers behind one get/store/invalidate
// contract. Reads go memory first, then the durable tiers in order;
// durable hits are promoted into the memory tier. Writes go through to
// every enabled tier.
type Manager struct {
	memory *Memory
	files  *Files
	sqlite *SQLite
	tiers  []Backend
}

// NewManager constructs the tiers from settings. Misconfigured tiers come
// up disabled, never fatal.
func NewManager(settings config.CacheSettings) *Manager {
	memory := NewMemory(settings.Memory)
	files := NewFiles(settings.Files)
	sqlite := NewSQLite(settings.SQLite)
	for _, tier := range []Backend{memory, files, sqlite} {
		if !tier.Enabled() {
			log.Debugf("cache tier %s is disabled", tier.Name())
		}
	}
	return &Manager{
		memory: memory,
		files:  files,
		sqlite: sqlite,
		tiers:  []Backend{memory, files, sqlite},
	}
}

// Close releases tier resources (the sqlite handle).
func (m *Manager) Close() error {
	return m.sqlite.Close()
}

// Store writes the payload through to every enabled tier. One tier
// failing does not stop the others; the first error is returned after all
// tiers were attempted.
func (m *Manager) Store(namespace, key string, payload []byte, ttl time.Duration, metadata map[string]string) error {
	var firstErr error
	for _, tier := range m.tiers {
		if !tier.Enabled() {
			continue
		}
		if _, err := tier.Store(namespace, key, payload, ttl, metadata); err != nil {
			log.WithError(err).Warnf("cache tier %s store failed for %s/%s", tier.Name(), namespace, key)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Get returns the first live entry found across the tiers, promoting
// durable hits into the memory tier for subsequent reads.
func (m *Manager) Get(namespace, key string) *Entry {
	for i, tier := range m.tiers {
		if !tier.Enabled() {
			continue
		}
		entry := tier.Get(namespace, key)
		if entry == nil {
			continue
		}
		if i > 0 {
			m.memory.StoreEntry(entry)
		}
		return entry
	}
	return nil
}

// Read returns the cached payload bytes, or nil on a miss.
func (m *Manager) Read(namespace, key string) []byte {
	entry := m.Get(namespace, key)
	if entry == nil {
		return nil
	}
	return entry.Payload
}

// Invalidate removes the key (or the whole namespace when key is empty)
// from every tier and returns the total number of removed entries.
func (m *Manager) Invalidate(namespace, key string) int {
	removed := 0
	for _, tier := range m.tiers {
		removed += tier.Invalidate(namespace, key)
	}
	return removed
}

// FilePath reports where the file tier keeps (or would keep) the payload
// for this key, empty when the tier is disabled.
func (m *Manager) FilePath(namespace, key string) string {
	if !m.files.Enabled() {
		return ""
	}
	return m.files.pathFor(namespace, key)
}

// Cleanup purges expired entries from every tier and returns the per-tier
// purge counts keyed by tier name.
func (m *Manager) Cleanup() map[string]int {
	counts := make(map[string]int, len(m.tiers))
	for _, tier := range m.tiers {
		counts[tier.Name()] = tier.Cleanup()
	}
	return counts
}
