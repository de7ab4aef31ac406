// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

// Package widget defines the capability contract for dynamically rendered
// content and the registry the pipeline resolves widgets from.
package widget

import (
	"image"
	"sort"
)

// Field describes one configuration option a widget accepts, surfaced by
// the widgets command.
type Field struct {
	Name        string
	Label       string
	Type        string
	Required    bool
	Default     string
	Description string
}

// Widget is the capability interface for dynamically generated bitmaps.
// Render receives the resolved configuration and the target panel size.
type Widget interface {
	Slug() string
	Name() string
	Description() string
	Fields() []Field
	DefaultConfig() map[string]string
	Render(config map[string]string, size image.Point) (*image.RGBA, error)
}

// ResolveConfig merges user configuration over the widget defaults.
// Entries with empty values do not override defaults.
func ResolveConfig(w Widget, config map[string]string) map[string]string {
	resolved := map[string]string{}
	for k, v := range w.DefaultConfig() {
		resolved[k] = v
	}
	for k, v := range config {
		if v != "" {
			resolved[k] = v
		}
	}
	return resolved
}

// Registry is a lookup table of widgets keyed by slug.
type Registry struct {
	items map[string]Widget
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: map[string]Widget{}}
}

// Builtin returns a registry with the built-in widgets registered.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(NewMessage())
	r.Register(NewClock())
	return r
}

// Register adds a widget, replacing any previous one with the same slug.
func (r *Registry) Register(w Widget) {
	r.items[w.Slug()] = w
}

// Lookup returns the widget for slug and whether it exists.
func (r *Registry) Lookup(slug string) (Widget, bool) {
	w, ok := r.items[slug]
	return w, ok
}

// List returns all registered widgets ordered by slug.
func (r *Registry) List() []Widget {
	widgets := make([]Widget, 0, len(r.items))
	for _, w := range r.items {
		widgets = append(widgets, w)
	}
	sort.Slice(widgets, func(i, j int) bool { return widgets[i].Slug() < widgets[j].Slug() })
	return widgets
}
