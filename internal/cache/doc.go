// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

// Package cache provides the caching engine behind the render pipeline: an
// asynchronous single-flight TTL store with stale-while-revalidate
// semantics, and a tiered persistent cache (memory LRU, file store with
// JSON sidecars, embedded SQLite) used to keep rendered bitmaps across
// process restarts.
package cache
