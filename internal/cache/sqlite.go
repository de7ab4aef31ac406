// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/apex/log"
	_ "modernc.org/sqlite"

	"github.com/RickFBAG/photoframe/internal/config"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	namespace  TEXT NOT NULL,
	cache_key  TEXT NOT NULL,
	payload    BLOB NOT NULL,
	metadata   TEXT,
	created_at REAL NOT NULL,
	expires_at REAL,
	PRIMARY KEY(namespace, cache_key)
)`

// SQLite is the embedded relational tier, one file holding one table of
// payload blobs keyed by (namespace, cache_key).
type SQLite struct {
	enabled    bool
	defaultTTL time.Duration

	// Serializes logical read-modify-write sequences; the driver handles
	// file-level locking underneath.
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite builds the relational tier. An unusable database path disables
// the tier rather than failing the application.
func NewSQLite(cfg config.SQLiteCacheConfig) *SQLite {
	s := &SQLite{
		enabled:    cfg.Enabled && cfg.Path != "",
		defaultTTL: time.Duration(cfg.DefaultTTL) * time.Second,
	}
	if !s.enabled {
		return s
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		log.WithError(err).Warnf("sqlite cache disabled, cannot create %s", filepath.Dir(cfg.Path))
		s.enabled = false
		return s
	}
	db, err := sql.Open("sqlite", cfg.Path)
	if err == nil {
		_, err = db.Exec(sqliteSchema)
	}
	if err != nil {
		log.WithError(err).Warnf("sqlite cache disabled, cannot open %s", cfg.Path)
		s.enabled = false
		return s
	}
	s.db = db
	return s
}

func (s *SQLite) Name() string  { return "sqlite" }
func (s *SQLite) Enabled() bool { return s.enabled }

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Store upserts a payload row and returns the resulting entry.
func (s *SQLite) Store(namespace, key string, payload []byte, ttl time.Duration, metadata map[string]string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrBackendDisabled
	}
	now := time.Now()
	expiresAt := expiry(ttl, s.defaultTTL, now)
	meta := cloneMetadata(metadata)
	metaText, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`
		INSERT INTO cache_entries(namespace, cache_key, payload, metadata, created_at, expires_at)
		VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(namespace, cache_key) DO UPDATE SET
			payload=excluded.payload,
			metadata=excluded.metadata,
			created_at=excluded.created_at,
			expires_at=excluded.expires_at`,
		namespace, key, payload, string(metaText), unixFloat(now), nullableUnix(expiresAt))
	if err != nil {
		return nil, err
	}
	return &Entry{
		Namespace: namespace,
		Key:       key,
		Payload:   payload,
		Metadata:  meta,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}, nil
}

// Get returns a live entry or nil. Expired rows are deleted on read.
func (s *SQLite) Get(namespace, key string) *Entry {
	if !s.enabled {
		return nil
	}
	s.mu.Lock()
	row := s.db.QueryRow(
		"SELECT payload, metadata, created_at, expires_at FROM cache_entries WHERE namespace=? AND cache_key=?",
		namespace, key)
	var (
		payload   []byte
		metaText  sql.NullString
		createdAt float64
		expiresAt sql.NullFloat64
	)
	err := row.Scan(&payload, &metaText, &createdAt, &expiresAt)
	s.mu.Unlock()
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Warnf("sqlite cache read failed for %s/%s", namespace, key)
		}
		return nil
	}

	entry := &Entry{
		Namespace: namespace,
		Key:       key,
		Payload:   payload,
		Metadata:  map[string]string{},
		CreatedAt: timeFromUnix(createdAt),
	}
	if expiresAt.Valid {
		entry.ExpiresAt = timeFromUnix(expiresAt.Float64)
		if entry.Expired(time.Now()) {
			s.Invalidate(namespace, key)
			return nil
		}
	}
	if metaText.Valid && metaText.String != "" {
		if err := json.Unmarshal([]byte(metaText.String), &entry.Metadata); err != nil {
			log.Warnf("unreadable metadata for %s/%s, serving payload without it", namespace, key)
			entry.Metadata = map[string]string{}
		}
	}
	return entry
}

// Invalidate deletes a row, or every row in the namespace when key is
// empty. Returns the number of deleted rows.
func (s *SQLite) Invalidate(namespace, key string) int {
	if !s.enabled {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		res sql.Result
		err error
	)
	if key == "" {
		res, err = s.db.Exec("DELETE FROM cache_entries WHERE namespace=?", namespace)
	} else {
		res, err = s.db.Exec("DELETE FROM cache_entries WHERE namespace=? AND cache_key=?", namespace, key)
	}
	if err != nil {
		log.WithError(err).Warnf("sqlite cache invalidation failed for %s/%s", namespace, key)
		return 0
	}
	affected, _ := res.RowsAffected()
	return int(affected)
}

// Cleanup deletes expired rows and returns how many were removed.
func (s *SQLite) Cleanup() int {
	if !s.enabled {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec(
		"DELETE FROM cache_entries WHERE expires_at IS NOT NULL AND expires_at <= ?",
		unixFloat(time.Now()))
	if err != nil {
		log.WithError(err).Warn("sqlite cache cleanup failed")
		return 0
	}
	affected, _ := res.RowsAffected()
	return int(affected)
}

func nullableUnix(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return unixFloat(t)
}
