// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

// photoframe is the main package for the photoframe command line tool. It
// wires the CLI, delegates to internal packages, and serves as the entry
// point for the render pipeline and its caching engine.
package main
