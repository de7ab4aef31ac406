// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package surface

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestNewFillsBackground(t *testing.T) {
	s := New(image.Pt(10, 8), red)

	assert.Equal(t, image.Pt(10, 8), s.Size())
	assert.Equal(t, red, s.RGBA.RGBAAt(0, 0))
	assert.Equal(t, red, s.RGBA.RGBAAt(9, 7))
}

func TestFillClipsToBounds(t *testing.T) {
	s := New(image.Pt(10, 10), white)
	s.Fill(image.Rect(5, 5, 40, 40), black)

	assert.Equal(t, white, s.RGBA.RGBAAt(0, 0))
	assert.Equal(t, black, s.RGBA.RGBAAt(5, 5))
	assert.Equal(t, black, s.RGBA.RGBAAt(9, 9))
}

func TestLines(t *testing.T) {
	s := New(image.Pt(20, 20), white)
	s.HLine(2, 18, 5, 2, black)
	s.VLine(10, 0, 20, 3, red)

	assert.Equal(t, black, s.RGBA.RGBAAt(2, 5))
	assert.Equal(t, black, s.RGBA.RGBAAt(2, 6))
	assert.Equal(t, white, s.RGBA.RGBAAt(2, 7))
	assert.Equal(t, red, s.RGBA.RGBAAt(10, 0))
	assert.Equal(t, red, s.RGBA.RGBAAt(12, 19))
	assert.Equal(t, white, s.RGBA.RGBAAt(13, 19))
}

func TestPaste(t *testing.T) {
	s := New(image.Pt(20, 20), white)
	s.Paste(solid(4, 4, black), image.Pt(8, 8))

	assert.Equal(t, white, s.RGBA.RGBAAt(7, 7))
	assert.Equal(t, black, s.RGBA.RGBAAt(8, 8))
	assert.Equal(t, black, s.RGBA.RGBAAt(11, 11))
	assert.Equal(t, white, s.RGBA.RGBAAt(12, 12))
}

func TestTextDrawsInk(t *testing.T) {
	s := New(image.Pt(120, 40), white)
	s.Text(image.Pt(4, 4), "Hi", Face(24, true), black)

	inked := 0
	for i := 0; i < len(s.RGBA.Pix); i += 4 {
		if s.RGBA.Pix[i] != 255 {
			inked++
		}
	}
	assert.Greater(t, inked, 0)
}

func TestTextSize(t *testing.T) {
	face := Face(20, false)

	w1, h := TextSize("Hi", face)
	w2, h2 := TextSize("Hi there", face)
	assert.Greater(t, w2, w1)
	assert.Equal(t, h, h2)
	assert.Greater(t, h, 0)
}

func TestMultilineTextReportsHeight(t *testing.T) {
	s := New(image.Pt(200, 100), white)
	face := Face(16, false)

	_, lineH := TextSize("x", face)
	consumed := s.MultilineText(image.Pt(4, 4), []string{"one", "two", "three"}, face, black, 6)
	assert.Equal(t, 3*(lineH+6), consumed)
}

func TestContainPreservesAspectRatio(t *testing.T) {
	// Wide source into a square target: width binds.
	out := Contain(solid(200, 100, red), image.Pt(50, 50))
	assert.Equal(t, 50, out.Bounds().Dx())
	assert.Equal(t, 25, out.Bounds().Dy())

	// Tall source: height binds.
	out = Contain(solid(100, 200, red), image.Pt(50, 50))
	assert.Equal(t, 25, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())

	// Degenerate source stays empty instead of panicking.
	out = Contain(image.NewRGBA(image.Rectangle{}), image.Pt(50, 50))
	assert.Equal(t, 0, out.Bounds().Dx())
}

func TestCoverFillsTargetExactly(t *testing.T) {
	for _, src := range []*image.RGBA{
		solid(200, 100, red),
		solid(100, 200, red),
		solid(64, 64, red),
	} {
		out := Cover(src, image.Pt(80, 48))
		assert.Equal(t, 80, out.Bounds().Dx())
		assert.Equal(t, 48, out.Bounds().Dy())
	}
}

func TestToRGBA(t *testing.T) {
	rgba := solid(4, 4, red)
	assert.Same(t, rgba, ToRGBA(rgba))

	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	converted := ToRGBA(gray)
	require.NotNil(t, converted)
	assert.Equal(t, 4, converted.Bounds().Dx())
}

func TestFaceCacheReturnsSameFace(t *testing.T) {
	a := Face(18, false)
	b := Face(18, false)
	assert.Same(t, a, b)

	bold := Face(18, true)
	assert.NotSame(t, a, bold)

	// Nonsense sizes clamp instead of failing.
	assert.NotNil(t, Face(0, false))
	assert.NotNil(t, Face(-5, true))
}
