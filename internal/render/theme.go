// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"image/color"
	"sort"
	"strings"
)

// Theme is a named set of semantic colors, immutable once resolved.
type Theme struct {
	Name       string
	Background color.RGBA
	Foreground color.RGBA
	Accent     color.RGBA
	Muted      color.RGBA
	Separator  color.RGBA
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

var themes = map[string]Theme{
	"light": {
		Name:       "light",
		Background: rgb(245, 245, 245),
		Foreground: rgb(34, 34, 34),
		Accent:     rgb(220, 60, 60),
		Muted:      rgb(120, 120, 120),
		Separator:  rgb(200, 200, 200),
	},
	"dark": {
		Name:       "dark",
		Background: rgb(20, 20, 20),
		Foreground: rgb(235, 235, 235),
		Accent:     rgb(255, 120, 80),
		Muted:      rgb(140, 140, 140),
		Separator:  rgb(70, 70, 70),
	},
	"warm": {
		Name:       "warm",
		Background: rgb(250, 244, 232),
		Foreground: rgb(60, 40, 20),
		Accent:     rgb(208, 94, 54),
		Muted:      rgb(160, 132, 96),
		Separator:  rgb(214, 198, 176),
	},
	"cool": {
		Name:       "cool",
		Background: rgb(235, 242, 248),
		Foreground: rgb(24, 48, 72),
		Accent:     rgb(64, 132, 214),
		Muted:      rgb(104, 140, 168),
		Separator:  rgb(180, 204, 220),
	},
}

// GetTheme resolves a theme by name. Unknown names fall back to light,
// never an error.
func GetTheme(name string) Theme {
	if theme, ok := themes[strings.ToLower(name)]; ok {
		return theme
	}
	return themes["light"]
}

// ListThemes returns the available theme names sorted.
func ListThemes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
