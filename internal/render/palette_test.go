// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradientImage builds a smooth RGB ramp that exercises every diffusion
// path without being trivially mappable.
func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / (w - 1)),
				G: uint8(y * 255 / (h - 1)),
				B: uint8((x + y) * 255 / (w + h - 2)),
				A: 255,
			})
		}
	}
	return img
}

func paletteSet(palette []color.RGBA) map[color.RGBA]bool {
	set := make(map[color.RGBA]bool, len(palette))
	for _, p := range palette {
		set[p] = true
	}
	return set
}

func TestApplyPaletteDeterministic(t *testing.T) {
	src := gradientImage(64, 64)
	for _, dither := range []string{"floyd-steinberg", "atkinson", "none"} {
		a := ApplyPalette(src, "7", dither)
		b := ApplyPalette(src, "7", dither)
		assert.True(t, bytes.Equal(a.Pix, b.Pix), "dither %s", dither)
	}
}

func TestApplyPaletteOutputPixelsInPalette(t *testing.T) {
	src := gradientImage(48, 32)
	for _, name := range ListPalettes() {
		inks := paletteSet(ResolvePalette(name))
		out := ApplyPalette(src, name, "floyd-steinberg")
		bounds := out.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				require.True(t, inks[out.RGBAAt(x, y)], "palette %s pixel (%d,%d)", name, x, y)
			}
		}
	}
}

func TestApplyPaletteDoesNotMutateSource(t *testing.T) {
	src := gradientImage(16, 16)
	before := append([]byte(nil), src.Pix...)

	ApplyPalette(src, "3", "floyd-steinberg")
	assert.Equal(t, before, src.Pix)
}

func TestResolvePaletteAliasesAndFallback(t *testing.T) {
	assert.Equal(t, einkPalettes["3"], ResolvePalette("tri"))
	assert.Equal(t, einkPalettes["7"], ResolvePalette("inky7"))
	assert.Equal(t, einkPalettes["8"], ResolvePalette("INKY8"))

	// Unknown names fall back to the 7-color gamut.
	assert.Equal(t, einkPalettes["7"], ResolvePalette("nonsense"))
	assert.Equal(t, einkPalettes["7"], ResolvePalette(""))
}

func TestApplyPaletteDitherModes(t *testing.T) {
	src := gradientImage(32, 32)

	plain := ApplyPalette(src, "7", "none")
	fs := ApplyPalette(src, "7", "floyd-steinberg")
	atk := ApplyPalette(src, "7", "atkinson")

	// Diffusion visibly changes the result against plain mapping, and the
	// two kernels differ from each other on a gradient.
	assert.False(t, bytes.Equal(plain.Pix, fs.Pix))
	assert.False(t, bytes.Equal(fs.Pix, atk.Pix))

	// Off switches are synonyms for none.
	off := ApplyPalette(src, "7", "OFF")
	assert.True(t, bytes.Equal(plain.Pix, off.Pix))
}

func TestNearestIndexTieBreaksInPaletteOrder(t *testing.T) {
	palette := []color.RGBA{
		rgb(100, 100, 100),
		rgb(100, 100, 100),
		rgb(0, 0, 0),
	}
	// Equidistant duplicates resolve to the first entry.
	assert.Equal(t, 0, nearestIndex(100, 100, 100, palette))

	// Exactly between two grays: first minimum wins.
	between := []color.RGBA{rgb(0, 0, 0), rgb(200, 200, 200)}
	assert.Equal(t, 0, nearestIndex(100, 100, 100, between))
}

func TestListPalettes(t *testing.T) {
	assert.Equal(t, []string{"3", "4", "7", "8"}, ListPalettes())
}
