// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

// Package surface provides the RGBA drawing primitives shared by the
// layout compositor and the built-in widgets: filled rectangles,
// separator lines, bitmap pasting, and text drawing with cached font
// faces.
package surface

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Surface wraps a target bitmap with drawing helpers.
type Surface struct {
	RGBA *image.RGBA
}

// New creates a surface of the given size filled with the background
// color.
func New(size image.Point, background color.RGBA) *Surface {
	rgba := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return &Surface{RGBA: rgba}
}

// Size returns the surface dimensions.
func (s *Surface) Size() image.Point {
	b := s.RGBA.Bounds()
	return image.Pt(b.Dx(), b.Dy())
}

// Fill paints a rectangle.
func (s *Surface) Fill(r image.Rectangle, c color.RGBA) {
	draw.Draw(s.RGBA, r.Intersect(s.RGBA.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// HLine draws a horizontal line of the given stroke width with (x0, y) as
// its top-left corner.
func (s *Surface) HLine(x0, x1, y, width int, c color.RGBA) {
	s.Fill(image.Rect(x0, y, x1, y+width), c)
}

// VLine draws a vertical line of the given stroke width with (x, y0) as
// its top-left corner.
func (s *Surface) VLine(x, y0, y1, width int, c color.RGBA) {
	s.Fill(image.Rect(x, y0, x+width, y1), c)
}

// Paste copies src onto the surface with its top-left corner at pos.
func (s *Surface) Paste(src image.Image, pos image.Point) {
	r := src.Bounds().Sub(src.Bounds().Min).Add(pos)
	draw.Draw(s.RGBA, r, src, src.Bounds().Min, draw.Src)
}

// Text draws a single line with pos as the top-left corner of the line
// box.
func (s *Surface) Text(pos image.Point, text string, face font.Face, c color.RGBA) {
	metrics := face.Metrics()
	d := font.Drawer{
		Dst:  s.RGBA,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pos.X, pos.Y+metrics.Ascent.Ceil()),
	}
	d.DrawString(text)
}

// MultilineText draws the lines top to bottom and returns the consumed
// height including spacing.
func (s *Surface) MultilineText(pos image.Point, lines []string, face font.Face, c color.RGBA, lineSpacing int) int {
	height := 0
	for _, line := range lines {
		s.Text(image.Pt(pos.X, pos.Y+height), line, face, c)
		_, lineH := TextSize(line, face)
		height += lineH + lineSpacing
	}
	return height
}

// TextSize measures a single line of text.
func TextSize(text string, face font.Face) (w, h int) {
	metrics := face.Metrics()
	return font.MeasureString(face, text).Ceil(), (metrics.Ascent + metrics.Descent).Ceil()
}

// Contain scales src to fit inside target preserving aspect ratio. The
// result is at most target in each dimension.
func Contain(src image.Image, target image.Point) *image.RGBA {
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	scaleW := float64(target.X) / float64(sw)
	scaleH := float64(target.Y) / float64(sh)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	dw := int(float64(sw)*scale + 0.5)
	dh := int(float64(sh)*scale + 0.5)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, xdraw.Over, nil)
	return dst
}

// Cover center-crops src to the target aspect ratio and scales it to
// exactly target.
func Cover(src image.Image, target image.Point) *image.RGBA {
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, target.X, target.Y))
	if sw == 0 || sh == 0 || target.X == 0 || target.Y == 0 {
		return dst
	}

	targetRatio := float64(target.X) / float64(target.Y)
	sourceRatio := float64(sw) / float64(sh)
	crop := sb
	if sourceRatio > targetRatio {
		cropW := int(float64(sh) * targetRatio)
		left := sb.Min.X + (sw-cropW)/2
		crop = image.Rect(left, sb.Min.Y, left+cropW, sb.Max.Y)
	} else if sourceRatio < targetRatio {
		cropH := int(float64(sw) / targetRatio)
		top := sb.Min.Y + (sh-cropH)/2
		crop = image.Rect(sb.Min.X, top, sb.Max.X, top+cropH)
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Over, nil)
	return dst
}

// ToRGBA returns src as *image.RGBA, copying only when needed.
func ToRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
