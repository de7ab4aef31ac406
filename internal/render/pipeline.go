// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

// Package render implements the pipeline that turns a content request
// into a deterministic, palette-quantized bitmap: source resolution,
// layout composition, theme application, quantization/dithering, output
// writing, and the cache wiring that avoids recomputation.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/apex/log"

	"github.com/RickFBAG/photoframe/internal/cache"
	"github.com/RickFBAG/photoframe/internal/config"
	"github.com/RickFBAG/photoframe/internal/surface"
	"github.com/RickFBAG/photoframe/internal/widget"
)

// Source kinds accepted by a Request.
const (
	SourceImage  = "image"
	SourceWidget = "widget"
)

// renderNamespace is the tiered-cache namespace for finished bitmaps.
const renderNamespace = "renders"

// Request describes one render. Its identity for caching is the tuple of
// every field plus the source version token.
type Request struct {
	Source     string
	Identifier string
	Config     map[string]string
	Layout     string
	Theme      string
	Palette    string
	Dither     string
	Separators bool
}

// Result is the outcome of a render call. Results are not cached
// themselves; only the backing bitmap and its metadata are.
type Result struct {
	Image      *image.RGBA
	OutputPath string
	CachePath  string
	Identifier string
	Source     string
	Theme      Theme
	Layout     string
	Content    Content
	FromCache  bool
}

// Pipeline is the single entry point collaborators call. It owns no
// global state; the cache manager and widget registry are injected.
type Pipeline struct {
	imageDir  string
	outputDir string
	target    image.Point
	caches    *cache.Manager
	registry  *widget.Registry

	mu         sync.Mutex
	lastOutput string
}

// NewPipeline wires a pipeline against its collaborators. An empty output
// directory falls back to the image directory.
func NewPipeline(settings config.Settings, manager *cache.Manager, registry *widget.Registry) (*Pipeline, error) {
	outputDir := settings.OutputDir
	if outputDir == "" {
		outputDir = settings.ImageDir
	}
	for _, dir := range []string{settings.ImageDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return &Pipeline{
		imageDir:  settings.ImageDir,
		outputDir: outputDir,
		target:    image.Pt(settings.Display.Width, settings.Display.Height),
		caches:    manager,
		registry:  registry,
	}, nil
}

// Render resolves the source, consults the tiered cache, and composes,
// quantizes, and stores the bitmap on a miss. Every call writes a fresh
// uniquely-named output artifact, cached or not.
func (p *Pipeline) Render(req Request) (*Result, error) {
	base, content, versionToken, err := p.resolveSource(req)
	if err != nil {
		return nil, err
	}

	key := CacheKey(req, versionToken)
	theme := GetTheme(req.Theme)

	var (
		encoded   []byte
		final     *image.RGBA
		fromCache bool
	)
	if cached := p.caches.Read(renderNamespace, key); cached != nil {
		if decoded, err := png.Decode(bytes.NewReader(cached)); err == nil {
			final = surface.ToRGBA(decoded)
			encoded = cached
			fromCache = true
		} else {
			log.WithError(err).Warnf("cached bitmap for key %s is unreadable, re-rendering", key)
			p.caches.Invalidate(renderNamespace, key)
		}
	}

	if final == nil {
		canvas := surface.New(p.target, theme.Background)
		composed := GetLayout(req.Layout)(canvas, base, theme, content, req.Separators)
		final = ApplyPalette(composed, req.Palette, req.Dither)

		var buf bytes.Buffer
		if err := png.Encode(&buf, final); err != nil {
			return nil, fmt.Errorf("failed to encode bitmap: %w", err)
		}
		encoded = buf.Bytes()

		if err := p.caches.Store(renderNamespace, key, encoded, 0, map[string]string{
			"source":     req.Source,
			"identifier": req.Identifier,
			"layout":     req.Layout,
			"theme":      theme.Name,
			"title":      content.Title,
		}); err != nil {
			log.WithError(err).Warn("failed to persist rendered bitmap in cache")
		}
	}

	outputPath, err := p.storeOutput(encoded, req, theme, time.Now())
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.lastOutput = outputPath
	p.mu.Unlock()

	return &Result{
		Image:      final,
		OutputPath: outputPath,
		CachePath:  p.caches.FilePath(renderNamespace, key),
		Identifier: req.Identifier,
		Source:     req.Source,
		Theme:      theme,
		Layout:     req.Layout,
		Content:    content,
		FromCache:  fromCache,
	}, nil
}

// LatestOutput returns the most recent output artifact, falling back to
// the newest PNG in the output directory after a restart. The timestamp
// prefix makes lexical order chronological.
func (p *Pipeline) LatestOutput() string {
	p.mu.Lock()
	last := p.lastOutput
	p.mu.Unlock()
	if last != "" && fileExists(last) {
		return last
	}
	matches, _ := filepath.Glob(filepath.Join(p.outputDir, "*.png"))
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[len(matches)-1]
}
