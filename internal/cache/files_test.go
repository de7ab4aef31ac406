// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RickFBAG/photoframe/internal/config"
)

func newTestFiles(t *testing.T) *Files {
	t.Helper()
	return NewFiles(config.FilesCacheConfig{Enabled: true, Directory: t.TempDir(), DefaultTTL: 900})
}

func TestFilesStoreGetRoundtrip(t *testing.T) {
	f := newTestFiles(t)

	entry, err := f.Store("My Namespace", "some key", []byte("payload"), 0, map[string]string{"title": "Test"})
	require.NoError(t, err)
	require.NotNil(t, entry)

	got := f.Get("My Namespace", "some key")
	require.NotNil(t, got)
	assert.Equal(t, []byte("payload"), got.Payload)
	assert.Equal(t, "Test", got.Metadata["title"])
	assert.False(t, got.ExpiresAt.IsZero())

	// Namespace and key are slugged into the on-disk layout.
	path := f.pathFor("My Namespace", "some key")
	assert.Contains(t, path, filepath.Join(f.directory, "my-namespace"))
	assert.Contains(t, filepath.Base(path), "some-key-")
	assert.FileExists(t, path)
	assert.FileExists(t, path+".json")
}

func TestFilesExpiredEntryDeletedOnRead(t *testing.T) {
	f := newTestFiles(t)

	_, err := f.Store("ns", "k", []byte("payload"), 10*time.Millisecond, nil)
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)

	assert.Nil(t, f.Get("ns", "k"))
	assert.NoFileExists(t, f.pathFor("ns", "k"))
	assert.NoFileExists(t, f.pathFor("ns", "k")+".json")
}

func TestFilesCorruptSidecarServesPayload(t *testing.T) {
	f := newTestFiles(t)

	_, err := f.Store("ns", "k", []byte("payload"), 0, map[string]string{"title": "x"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(f.pathFor("ns", "k")+".json", []byte("{not json"), 0o644))

	got := f.Get("ns", "k")
	require.NotNil(t, got)
	assert.Equal(t, []byte("payload"), got.Payload)
	assert.Empty(t, got.Metadata)
	assert.True(t, got.ExpiresAt.IsZero())
}

func TestFilesAmbiguousExpiryIsMiss(t *testing.T) {
	f := newTestFiles(t)

	_, err := f.Store("ns", "k", []byte("payload"), 0, nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(f.pathFor("ns", "k")+".json", []byte(`{"expires_at":"soon"}`), 0o644))

	assert.Nil(t, f.Get("ns", "k"))
}

func TestFilesMissingSidecarServesPayload(t *testing.T) {
	f := newTestFiles(t)

	_, err := f.Store("ns", "k", []byte("payload"), 0, nil)
	require.NoError(t, err)
	require.NoError(t, os.Remove(f.pathFor("ns", "k")+".json"))

	got := f.Get("ns", "k")
	require.NotNil(t, got)
	assert.Equal(t, []byte("payload"), got.Payload)
}

func TestFilesInvalidateNamespaceRemovesDirectory(t *testing.T) {
	f := newTestFiles(t)

	_, err := f.Store("ns", "k1", []byte("a"), 0, nil)
	require.NoError(t, err)
	_, err = f.Store("ns", "k2", []byte("b"), 0, nil)
	require.NoError(t, err)

	removed := f.Invalidate("ns", "")
	assert.Equal(t, 4, removed)
	assert.NoDirExists(t, filepath.Join(f.directory, "ns"))
}

func TestFilesCleanupPurgesExpired(t *testing.T) {
	f := newTestFiles(t)

	_, err := f.Store("ns", "short", []byte("a"), 10*time.Millisecond, nil)
	require.NoError(t, err)
	_, err = f.Store("ns", "long", []byte("b"), time.Hour, nil)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 2, f.Cleanup())
	assert.Nil(t, f.Get("ns", "short"))
	assert.NotNil(t, f.Get("ns", "long"))
}

func TestFilesDisabled(t *testing.T) {
	f := NewFiles(config.FilesCacheConfig{Enabled: false})

	assert.False(t, f.Enabled())
	_, err := f.Store("ns", "k", []byte("x"), 0, nil)
	assert.ErrorIs(t, err, ErrBackendDisabled)
	assert.Nil(t, f.Get("ns", "k"))
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Mixed CASE  ", "mixed-case"},
		{"safe-name_1.png", "safe-name_1.png"},
		{"weird/chars?*", "weird-chars--"},
		{"", "default"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "slugify %q", tc.in)
	}
}
