// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RickFBAG/photoframe/internal/surface"
)

func composeLayout(t *testing.T, name string, separators bool) *image.RGBA {
	t.Helper()
	theme := GetTheme("light")
	s := surface.New(image.Pt(400, 240), theme.Background)
	meta := Content{
		Title:    "Sunset",
		Subtitle: "Golden hour over the harbor",
		Details:  []string{"1.2 MB", "JPEG"},
		Footer:   "sunset.jpg",
	}
	out := GetLayout(name)(s, gradientImage(320, 200), theme, meta, separators)
	require.NotNil(t, out)
	return out
}

func TestGetLayoutFallsBackToSingle(t *testing.T) {
	unknown := GetLayout("mystery")
	single := GetLayout("single")

	themeA := GetTheme("light")
	a := unknown(surface.New(image.Pt(200, 120), themeA.Background), gradientImage(100, 60), themeA, Content{Title: "x"}, true)
	b := single(surface.New(image.Pt(200, 120), themeA.Background), gradientImage(100, 60), themeA, Content{Title: "x"}, true)
	assert.True(t, bytes.Equal(a.Pix, b.Pix))
}

func TestLayoutsProduceCanvasSizedOutput(t *testing.T) {
	for _, name := range ListLayouts() {
		out := composeLayout(t, name, true)
		assert.Equal(t, 400, out.Bounds().Dx(), "layout %s", name)
		assert.Equal(t, 240, out.Bounds().Dy(), "layout %s", name)
	}
}

func TestLayoutSeparatorsToggle(t *testing.T) {
	for _, name := range []string{"single", "2col", "hero"} {
		with := composeLayout(t, name, true)
		without := composeLayout(t, name, false)
		assert.False(t, bytes.Equal(with.Pix, without.Pix), "layout %s", name)
	}
}

func TestTwoColumnAlias(t *testing.T) {
	a := composeLayout(t, "2col", true)
	b := composeLayout(t, "two_column", true)
	assert.True(t, bytes.Equal(a.Pix, b.Pix))
}

func TestListLayouts(t *testing.T) {
	assert.Equal(t, []string{"2col", "hero", "single", "two_column"}, ListLayouts())
}

func TestGetThemeFallsBackToLight(t *testing.T) {
	assert.Equal(t, "light", GetTheme("nope").Name)
	assert.Equal(t, "light", GetTheme("").Name)
	assert.Equal(t, "dark", GetTheme("DARK").Name)
}

func TestListThemes(t *testing.T) {
	assert.Equal(t, []string{"cool", "dark", "light", "warm"}, ListThemes())
}

func TestThemeColorsAreOpaque(t *testing.T) {
	for _, name := range ListThemes() {
		theme := GetTheme(name)
		assert.EqualValues(t, 255, theme.Background.A, "theme %s", name)
		assert.EqualValues(t, 255, theme.Foreground.A, "theme %s", name)
		assert.NotEqual(t, theme.Background, theme.Foreground, "theme %s", name)
	}
}
