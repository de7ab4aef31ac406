// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/RickFBAG/photoframe/internal/config"
)

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9._-]`)
)

// Slugify lowercases a name and collapses anything unsafe for a filename.
func Slugify(name string) string {
	slug := slugSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	slug = slugInvalid.ReplaceAllString(slug, "-")
	if slug == "" {
		return "default"
	}
	return slug
}

// sidecar is the JSON document written next to every cached PNG.
type sidecar struct {
	Namespace string            `json:"namespace"`
	Key       string            `json:"key"`
	CreatedAt float64           `json:"created_at"`
	ExpiresAt *float64          `json:"expires_at"`
	Metadata  map[string]string `json:"metadata"`
}

// Files is the on-disk tier. Payloads live at
// <dir>/<namespace-slug>/<key-slug>-<digest>.png with a .json sidecar
// holding expiry and metadata.
type Files struct {
	enabled    bool
	directory  string
	defaultTTL time.Duration

	// Guards mkdir+write sequences so concurrent stores of the same key
	// never interleave into a torn payload/sidecar pair.
	mu sync.Mutex
}

// NewFiles builds the file tier from its configuration.
func NewFiles(cfg config.FilesCacheConfig) *Files {
	f := &Files{
		enabled:    cfg.Enabled && cfg.Directory != "",
		directory:  cfg.Directory,
		defaultTTL: time.Duration(cfg.DefaultTTL) * time.Second,
	}
	if f.enabled {
		if err := os.MkdirAll(f.directory, 0o755); err != nil {
			log.WithError(err).Warnf("file cache disabled, cannot create %s", f.directory)
			f.enabled = false
		}
	}
	return f
}

func (f *Files) Name() string  { return "files" }
func (f *Files) Enabled() bool { return f.enabled }

func (f *Files) filename(key string) string {
	slug := Slugify(key)
	if len(slug) > 40 {
		slug = slug[:40]
	}
	digest := sha1.Sum([]byte(key))
	return fmt.Sprintf("%s-%s.png", slug, hex.EncodeToString(digest[:])[:12])
}

func (f *Files) pathFor(namespace, key string) string {
	return filepath.Join(f.directory, Slugify(namespace), f.filename(key))
}

// Store writes the payload and its sidecar, returning the resulting entry.
func (f *Files) Store(namespace, key string, payload []byte, ttl time.Duration, metadata map[string]string) (*Entry, error) {
	if !f.enabled {
		return nil, ErrBackendDisabled
	}
	now := time.Now()
	expiresAt := expiry(ttl, f.defaultTTL, now)
	target := f.pathFor(namespace, key)

	meta := sidecar{
		Namespace: namespace,
		Key:       key,
		CreatedAt: unixFloat(now),
		ExpiresAt: unixFloatPtr(expiresAt),
		Metadata:  cloneMetadata(metadata),
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(target, payload, 0o644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(target+".json", raw, 0o644); err != nil {
		return nil, err
	}
	return &Entry{
		Namespace: namespace,
		Key:       key,
		Payload:   payload,
		Metadata:  cloneMetadata(metadata),
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}, nil
}

// Get returns a live entry or nil. A missing or unparseable sidecar is not
// fatal: the payload is served with empty metadata and no expiry. A
// sidecar whose expires_at is present but malformed is ambiguous and
// treated as a miss.
func (f *Files) Get(namespace, key string) *Entry {
	if !f.enabled {
		return nil
	}
	target := f.pathFor(namespace, key)
	payload, err := os.ReadFile(target)
	if err != nil {
		return nil
	}

	entry := &Entry{
		Namespace: namespace,
		Key:       key,
		Payload:   payload,
		Metadata:  map[string]string{},
	}

	raw, err := os.ReadFile(target + ".json")
	if err != nil || !gjson.ValidBytes(raw) {
		if err == nil {
			log.Warnf("corrupt cache sidecar for %s/%s, serving payload without metadata", namespace, key)
		}
		if info, statErr := os.Stat(target); statErr == nil {
			entry.CreatedAt = info.ModTime()
		}
		return entry
	}

	exp := gjson.GetBytes(raw, "expires_at")
	switch {
	case !exp.Exists(), exp.Type == gjson.Null:
		// never expires
	case exp.Type == gjson.Number:
		expiresAt := timeFromUnix(exp.Float())
		if !time.Now().Before(expiresAt) {
			f.Invalidate(namespace, key)
			return nil
		}
		entry.ExpiresAt = expiresAt
	default:
		log.Warnf("ambiguous expiry in cache sidecar for %s/%s, treating as miss", namespace, key)
		return nil
	}

	if created := gjson.GetBytes(raw, "created_at"); created.Type == gjson.Number {
		entry.CreatedAt = timeFromUnix(created.Float())
	}
	gjson.GetBytes(raw, "metadata").ForEach(func(k, v gjson.Result) bool {
		entry.Metadata[k.String()] = v.String()
		return true
	})
	return entry
}

// Invalidate removes cached files for the key, or the entire namespace
// directory when key is empty. Returns the number of removed files.
func (f *Files) Invalidate(namespace, key string) int {
	if !f.enabled {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	removed := 0
	if key != "" {
		target := f.pathFor(namespace, key)
		removed += unlink(target)
		removed += unlink(target + ".json")
		return removed
	}
	nsDir := filepath.Join(f.directory, Slugify(namespace))
	matches, _ := filepath.Glob(filepath.Join(nsDir, "*"))
	for _, child := range matches {
		removed += unlink(child)
	}
	_ = os.Remove(nsDir)
	return removed
}

// Cleanup purges expired payload/sidecar pairs and returns how many files
// were removed.
func (f *Files) Cleanup() int {
	if !f.enabled {
		return 0
	}
	purged := 0
	now := time.Now()
	matches, _ := filepath.Glob(filepath.Join(f.directory, "*", "*.png.json"))
	for _, metaPath := range matches {
		raw, err := os.ReadFile(metaPath)
		if err != nil || !gjson.ValidBytes(raw) {
			continue
		}
		exp := gjson.GetBytes(raw, "expires_at")
		if exp.Type != gjson.Number {
			continue
		}
		if !now.Before(timeFromUnix(exp.Float())) {
			purged += unlink(strings.TrimSuffix(metaPath, ".json"))
			purged += unlink(metaPath)
		}
	}
	return purged
}

func unlink(path string) int {
	if err := os.Remove(path); err != nil {
		return 0
	}
	return 1
}

func unixFloat(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func unixFloatPtr(t time.Time) *float64 {
	if t.IsZero() {
		return nil
	}
	v := unixFloat(t)
	return &v
}

func timeFromUnix(v float64) time.Time {
	return time.Unix(0, int64(v*float64(time.Second)))
}
