// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"image"
	"sort"
	"strings"

	"github.com/RickFBAG/photoframe/internal/surface"
)

// Content is the textual metadata a layout places around the bitmap.
// Layouts do not wrap text; callers pre-summarize anything long.
type Content struct {
	Title    string
	Subtitle string
	Details  []string
	Footer   string
}

// LayoutFunc composes the source bitmap and metadata onto a prepared
// canvas and returns the result.
type LayoutFunc func(s *surface.Surface, content *image.RGBA, theme Theme, meta Content, separators bool) *image.RGBA

// All sizes derive from the canvas, never fixed pixels, so one layout
// serves every panel resolution.
const (
	gutterRatio     = 0.05
	textLineSpacing = 6
)

var layouts = map[string]LayoutFunc{
	"single":     renderSingle,
	"2col":       renderTwoColumn,
	"two_column": renderTwoColumn,
	"hero":       renderHero,
}

// GetLayout resolves a layout by name, falling back to single.
func GetLayout(name string) LayoutFunc {
	if layout, ok := layouts[strings.ToLower(name)]; ok {
		return layout
	}
	return layouts["single"]
}

// ListLayouts returns the layout preset names sorted.
func ListLayouts() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func scaledFont(s *surface.Surface, factor float64) int {
	size := s.Size()
	base := size.X
	if size.Y < base {
		base = size.Y
	}
	px := int(float64(base) * factor)
	if px < 16 {
		px = 16
	}
	return px
}

// renderSingle shows the image full bleed with a bottom metadata panel.
func renderSingle(s *surface.Surface, content *image.RGBA, theme Theme, meta Content, separators bool) *image.RGBA {
	size := s.Size()
	scaled := surface.Contain(content, size)
	offset := image.Pt((size.X-scaled.Bounds().Dx())/2, (size.Y-scaled.Bounds().Dy())/2)
	s.Paste(scaled, offset)

	if meta.Title != "" || meta.Subtitle != "" || meta.Footer != "" {
		panelHeight := size.Y * 22 / 100
		if panelHeight < 96 {
			panelHeight = 96
		}
		panelTop := size.Y - panelHeight
		s.Fill(image.Rect(0, panelTop, size.X, size.Y), theme.Background)
		padding := int(float64(size.X) * gutterRatio)
		if separators {
			s.HLine(padding, size.X-padding, panelTop, 2, theme.Separator)
		}
		cursorY := panelTop + panelHeight*18/100
		titleFace := surface.Face(scaledFont(s, 0.09), true)
		subtitleFace := surface.Face(scaledFont(s, 0.05), false)
		footerFace := surface.Face(scaledFont(s, 0.045), false)
		if meta.Title != "" {
			s.Text(image.Pt(padding, cursorY), meta.Title, titleFace, theme.Foreground)
			_, titleH := surface.TextSize(meta.Title, titleFace)
			cursorY += titleH + textLineSpacing
		}
		if meta.Subtitle != "" {
			s.Text(image.Pt(padding, cursorY), meta.Subtitle, subtitleFace, theme.Muted)
		}
		if meta.Footer != "" {
			_, footerH := surface.TextSize(meta.Footer, footerFace)
			s.Text(image.Pt(padding, size.Y-padding-footerH), meta.Footer, footerFace, theme.Accent)
		}
	}

	return s.RGBA
}

// renderTwoColumn puts the image left and the metadata in a right-hand
// column behind a vertical separator.
func renderTwoColumn(s *surface.Surface, content *image.RGBA, theme Theme, meta Content, separators bool) *image.RGBA {
	size := s.Size()
	gutter := int(float64(size.X) * gutterRatio)
	leftWidth := size.X * 58 / 100
	imageHeight := size.Y - 2*gutter
	scaled := surface.Cover(content, image.Pt(leftWidth, imageHeight))
	s.Paste(scaled, image.Pt(gutter, gutter))

	columnX := gutter + leftWidth + gutter
	if separators {
		s.VLine(columnX-gutter/2, gutter, size.Y-gutter, 3, theme.Separator)
	}

	titleFace := surface.Face(scaledFont(s, 0.09), true)
	bodyFace := surface.Face(scaledFont(s, 0.05), false)
	footerFace := surface.Face(scaledFont(s, 0.045), false)

	cursorY := gutter
	if meta.Title != "" {
		s.Text(image.Pt(columnX, cursorY), meta.Title, titleFace, theme.Foreground)
		_, titleH := surface.TextSize(meta.Title, titleFace)
		cursorY += titleH + textLineSpacing
	}
	if meta.Subtitle != "" {
		s.Text(image.Pt(columnX, cursorY), meta.Subtitle, bodyFace, theme.Accent)
		_, subH := surface.TextSize(meta.Subtitle, bodyFace)
		cursorY += subH + textLineSpacing
	}
	if len(meta.Details) > 0 {
		s.MultilineText(image.Pt(columnX, cursorY), meta.Details, bodyFace, theme.Muted, textLineSpacing)
	}
	if meta.Footer != "" {
		_, footerH := surface.TextSize(meta.Footer, footerFace)
		s.Text(image.Pt(columnX, size.Y-gutter-footerH), meta.Footer, footerFace, theme.Separator)
	}

	return s.RGBA
}

// renderHero puts a large image on top and a metadata band below.
func renderHero(s *surface.Surface, content *image.RGBA, theme Theme, meta Content, separators bool) *image.RGBA {
	size := s.Size()
	heroHeight := size.Y * 65 / 100
	scaled := surface.Cover(content, image.Pt(size.X, heroHeight))
	s.Paste(scaled, image.Point{})

	overlayHeight := size.Y - heroHeight
	s.Fill(image.Rect(0, heroHeight, size.X, size.Y), theme.Background)
	padding := int(float64(size.X) * gutterRatio)
	if separators {
		s.HLine(padding, size.X-padding, heroHeight, 2, theme.Separator)
	}

	titleFace := surface.Face(scaledFont(s, 0.1), true)
	subtitleFace := surface.Face(scaledFont(s, 0.055), false)
	bodyFace := surface.Face(scaledFont(s, 0.048), false)

	cursorY := heroHeight + overlayHeight*20/100
	if meta.Title != "" {
		s.Text(image.Pt(padding, cursorY), meta.Title, titleFace, theme.Foreground)
		_, titleH := surface.TextSize(meta.Title, titleFace)
		cursorY += titleH + textLineSpacing
	}
	if meta.Subtitle != "" {
		s.Text(image.Pt(padding, cursorY), meta.Subtitle, subtitleFace, theme.Accent)
		_, subH := surface.TextSize(meta.Subtitle, subtitleFace)
		cursorY += subH + textLineSpacing
	}
	if len(meta.Details) > 0 {
		s.MultilineText(image.Pt(padding, cursorY), meta.Details, bodyFace, theme.Muted, textLineSpacing)
	}

	return s.RGBA
}
