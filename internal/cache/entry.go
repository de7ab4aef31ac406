// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"errors"
	"time"
)

// ErrBackendDisabled is returned when a payload is stored directly into a
// tier that is switched off. The Manager checks Enabled() first, so callers
// going through it never see this.
var ErrBackendDisabled = errors.New("cache backend is disabled")

// NoExpiry can be passed as the TTL to pin an entry forever.
const NoExpiry time.Duration = -1

// Entry is a single cached item held by one of the cache backends.
type Entry struct {
	Namespace string
	Key       string
	Payload   []byte
	Metadata  map[string]string
	CreatedAt time.Time
	// ExpiresAt is zero when the entry never expires.
	ExpiresAt time.Time
}

// Expired reports whether the entry has passed its expiry at now.
func (e *Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// expiry resolves an effective expiry time. A zero ttl selects the tier
// default, NoExpiry (or any negative value) disables expiry.
func expiry(ttl, defaultTTL time.Duration, now time.Time) time.Time {
	if ttl == 0 {
		ttl = defaultTTL
	}
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
