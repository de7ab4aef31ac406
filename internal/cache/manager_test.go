// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RickFBAG/photoframe/internal/config"
)

func testCacheSettings(t *testing.T) config.CacheSettings {
	t.Helper()
	dir := t.TempDir()
	return config.CacheSettings{
		Memory: config.MemoryCacheConfig{Enabled: true, MaxItems: 16, DefaultTTL: 300},
		Files:  config.FilesCacheConfig{Enabled: true, Directory: filepath.Join(dir, "png"), DefaultTTL: 900},
		SQLite: config.SQLiteCacheConfig{Enabled: true, Path: filepath.Join(dir, "cache.sqlite"), DefaultTTL: 86400},
	}
}

func TestManagerWriteThroughAllTiers(t *testing.T) {
	settings := testCacheSettings(t)
	m := NewManager(settings)
	defer m.Close()

	require.NoError(t, m.Store("ns", "k", []byte("payload"), 0, map[string]string{"title": "x"}))

	assert.NotNil(t, m.memory.Get("ns", "k"))
	assert.NotNil(t, m.files.Get("ns", "k"))
	assert.NotNil(t, m.sqlite.Get("ns", "k"))
}

func TestManagerDurableHitSurvivesRestartAndPromotes(t *testing.T) {
	settings := testCacheSettings(t)

	first := NewManager(settings)
	require.NoError(t, first.Store("ns", "k", []byte("payload"), 0, nil))
	require.NoError(t, first.Close())

	// A fresh manager starts with an empty memory tier; the durable
	// tiers answer and the hit is promoted.
	second := NewManager(settings)
	defer second.Close()

	assert.Nil(t, second.memory.Get("ns", "k"))
	assert.Equal(t, []byte("payload"), second.Read("ns", "k"))
	assert.NotNil(t, second.memory.Get("ns", "k"))
}

func TestManagerZeroTiersPassThrough(t *testing.T) {
	m := NewManager(config.CacheSettings{})
	defer m.Close()

	assert.NoError(t, m.Store("ns", "k", []byte("payload"), 0, nil))
	assert.Nil(t, m.Read("ns", "k"))
	assert.Equal(t, 0, m.Invalidate("ns", ""))
	counts := m.Cleanup()
	for tier, count := range counts {
		assert.Zero(t, count, "tier %s", tier)
	}
}

func TestManagerInvalidateAllTiers(t *testing.T) {
	settings := testCacheSettings(t)
	m := NewManager(settings)
	defer m.Close()

	require.NoError(t, m.Store("ns", "k", []byte("payload"), 0, nil))

	// Memory, payload file, sidecar, and sqlite row all go.
	assert.Equal(t, 4, m.Invalidate("ns", "k"))
	assert.Nil(t, m.Read("ns", "k"))
}

func TestManagerCleanupCountsPerTier(t *testing.T) {
	settings := testCacheSettings(t)
	m := NewManager(settings)
	defer m.Close()

	require.NoError(t, m.Store("ns", "short", []byte("a"), 10*time.Millisecond, nil))
	time.Sleep(20 * time.Millisecond)

	counts := m.Cleanup()
	assert.Equal(t, 1, counts["memory"])
	assert.Equal(t, 2, counts["files"])
	assert.Equal(t, 1, counts["sqlite"])
}

func TestManagerFilePath(t *testing.T) {
	settings := testCacheSettings(t)
	m := NewManager(settings)
	defer m.Close()

	path := m.FilePath("ns", "k")
	assert.Contains(t, path, settings.Files.Directory)

	disabled := NewManager(config.CacheSettings{})
	defer disabled.Close()
	assert.Empty(t, disabled.FilePath("ns", "k"))
}
