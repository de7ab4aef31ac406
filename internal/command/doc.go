// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

// Package command builds the photoframe CLI: render, cleanup, invalidate,
// widgets, and themes subcommands wired against the render pipeline and
// the tiered cache.
package command
