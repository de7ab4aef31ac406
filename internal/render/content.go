// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/RickFBAG/photoframe/internal/surface"
	"github.com/RickFBAG/photoframe/internal/widget"
)

// resolveSource obtains the base bitmap, its display metadata, and the
// version token that keys the cache.
func (p *Pipeline) resolveSource(req Request) (*image.RGBA, Content, string, error) {
	if req.Source == SourceImage {
		return p.resolveImage(req.Identifier)
	}
	return p.resolveWidget(req)
}

func (p *Pipeline) resolveImage(identifier string) (*image.RGBA, Content, string, error) {
	// Base-name the identifier so requests cannot escape the image dir.
	name := filepath.Base(identifier)
	path := filepath.Join(p.imageDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, Content{}, "", fmt.Errorf("%w: %s", ErrSourceNotFound, identifier)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Content{}, "", fmt.Errorf("%w: %s", ErrSourceNotFound, identifier)
	}
	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, Content{}, "", fmt.Errorf("failed to decode %s: %w", name, err)
	}
	base := autoOrient(surface.ToRGBA(decoded), exifOrientation(raw))

	title := strings.ReplaceAll(strings.TrimSuffix(name, filepath.Ext(name)), "_", " ")
	if title == "" {
		title = "Photo"
	}
	content := Content{
		Title:    title,
		Subtitle: "Photo gallery",
		Details: []string{
			fmt.Sprintf("File: %s (%s)", name, humanize.Bytes(uint64(info.Size()))),
			fmt.Sprintf("Updated: %s", info.ModTime().Format("02-01-2006 15:04")),
		},
		Footer: "Photoframe",
	}
	return base, content, FileVersionToken(info), nil
}

func (p *Pipeline) resolveWidget(req Request) (*image.RGBA, Content, string, error) {
	w, ok := p.registry.Lookup(req.Identifier)
	if !ok {
		return nil, Content{}, "", fmt.Errorf("%w: %s", ErrUnknownWidget, req.Identifier)
	}

	resolved := widget.ResolveConfig(w, req.Config)
	rendered, err := w.Render(resolved, p.target)
	if err != nil {
		return nil, Content{}, "", fmt.Errorf("widget %s failed to render: %w", req.Identifier, err)
	}

	details := make([]string, 0, len(resolved))
	keys := make([]string, 0, len(resolved))
	for k := range resolved {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		details = append(details, fmt.Sprintf("%s: %s", k, resolved[k]))
	}
	if len(details) == 0 {
		details = []string{"No configuration"}
	}

	content := Content{
		Title:    w.Name(),
		Subtitle: w.Description(),
		Details:  details,
		Footer:   "Widget",
	}
	return rendered, content, ConfigVersionToken(resolved), nil
}

// exifOrientation extracts the orientation tag, defaulting to 1 when the
// image carries no usable EXIF block.
func exifOrientation(raw []byte) int {
	meta, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return 1
	}
	tag, err := meta.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}
