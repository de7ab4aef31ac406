// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"image"
	"image/color"
	"sort"
	"strings"
)

// einkPalettes models the ink sets of real panels: 3-color (black/white/
// red), 4-color (adds yellow), and the 7- and 8-color ACeP gamuts.
var einkPalettes = map[string][]color.RGBA{
	"3": {
		rgb(255, 255, 255), rgb(0, 0, 0), rgb(255, 0, 0),
	},
	"4": {
		rgb(255, 255, 255), rgb(0, 0, 0), rgb(255, 0, 0), rgb(255, 255, 0),
	},
	"7": {
		rgb(255, 255, 255), rgb(0, 0, 0), rgb(255, 0, 0), rgb(255, 255, 0),
		rgb(0, 128, 0), rgb(0, 0, 200), rgb(240, 128, 48),
	},
	"8": {
		rgb(255, 255, 255), rgb(0, 0, 0), rgb(255, 0, 0), rgb(255, 255, 0),
		rgb(0, 150, 0), rgb(0, 0, 200), rgb(240, 128, 48), rgb(120, 0, 140),
	},
}

var paletteAliases = map[string]string{
	"tri":   "3",
	"inky3": "3",
	"inky4": "4",
	"inky7": "7",
	"inky8": "8",
}

// diffusionKernel is one neighbor share of the quantization residual.
// dy is always >= 0 so only unvisited pixels receive error.
type diffusionKernel struct {
	dx, dy int
	weight float64
}

// Floyd-Steinberg distributes the full residual; Atkinson hands out six
// eighths and drops the rest, which intentionally lightens the output.
var (
	floydSteinberg = []diffusionKernel{
		{1, 0, 7.0 / 16}, {-1, 1, 3.0 / 16}, {0, 1, 5.0 / 16}, {1, 1, 1.0 / 16},
	}
	atkinson = []diffusionKernel{
		{1, 0, 1.0 / 8}, {2, 0, 1.0 / 8}, {-1, 1, 1.0 / 8},
		{0, 1, 1.0 / 8}, {1, 1, 1.0 / 8}, {0, 2, 1.0 / 8},
	}
)

// ResolvePalette maps a palette name or alias to its ink colors. Unknown
// names fall back to the 7-color preset.
func ResolvePalette(name string) []color.RGBA {
	key := strings.ToLower(name)
	if alias, ok := paletteAliases[key]; ok {
		key = alias
	}
	if palette, ok := einkPalettes[key]; ok {
		return palette
	}
	return einkPalettes["7"]
}

// ListPalettes returns the palette preset names sorted.
func ListPalettes() []string {
	names := make([]string, 0, len(einkPalettes))
	for name := range einkPalettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPalette reduces the image to the named palette. Dither mode "none"
// (and "off"/"false") uses plain nearest-color mapping, "atkinson" uses
// the Atkinson kernel, anything else is Floyd-Steinberg. The output is
// byte-deterministic for identical inputs.
func ApplyPalette(img *image.RGBA, paletteName, dither string) *image.RGBA {
	palette := ResolvePalette(paletteName)
	switch mode := strings.ToLower(dither); {
	case mode == "none" || mode == "off" || mode == "false":
		return mapPalette(img, palette)
	case strings.HasPrefix(mode, "atk"):
		return errorDiffuse(img, palette, atkinson)
	default:
		return errorDiffuse(img, palette, floydSteinberg)
	}
}

// nearestIndex picks the palette entry with the smallest squared RGB
// distance. Strict less-than keeps the first minimum, so ties resolve in
// palette order.
func nearestIndex(r, g, b float64, palette []color.RGBA) int {
	best := 0
	bestDist := 1e18
	for i, p := range palette {
		dr := r - float64(p.R)
		dg := g - float64(p.G)
		db := b - float64(p.B)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

func mapPalette(img *image.RGBA, palette []color.RGBA) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srcRow := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		outRow := out.Pix[out.PixOffset(0, y):]
		for x := 0; x < w; x++ {
			si := x * 4
			p := palette[nearestIndex(float64(srcRow[si]), float64(srcRow[si+1]), float64(srcRow[si+2]), palette)]
			outRow[si] = p.R
			outRow[si+1] = p.G
			outRow[si+2] = p.B
			outRow[si+3] = 255
		}
	}
	return out
}

func clampChannel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func errorDiffuse(img *image.RGBA, palette []color.RGBA, kernel []diffusionKernel) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	// One float buffer for the whole image keeps the inner loop free of
	// allocations and keeps accumulation order strictly row-major.
	buf := make([]float64, w*h*3)
	for y := 0; y < h; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < w; x++ {
			bi := (y*w + x) * 3
			buf[bi] = float64(row[x*4])
			buf[bi+1] = float64(row[x*4+1])
			buf[bi+2] = float64(row[x*4+2])
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bi := (y*w + x) * 3
			r := clampChannel(buf[bi])
			g := clampChannel(buf[bi+1])
			b := clampChannel(buf[bi+2])
			p := palette[nearestIndex(r, g, b, palette)]

			oi := out.PixOffset(x, y)
			out.Pix[oi] = p.R
			out.Pix[oi+1] = p.G
			out.Pix[oi+2] = p.B
			out.Pix[oi+3] = 255

			errR := r - float64(p.R)
			errG := g - float64(p.G)
			errB := b - float64(p.B)
			for _, k := range kernel {
				nx, ny := x+k.dx, y+k.dy
				if nx < 0 || nx >= w || ny >= h {
					continue
				}
				ni := (ny*w + nx) * 3
				buf[ni] += errR * k.weight
				buf[ni+1] += errG * k.weight
				buf[ni+2] += errB * k.weight
			}
		}
	}
	return out
}
