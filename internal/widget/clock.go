// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"image"
	"image/color"
	"time"

	"github.com/RickFBAG/photoframe/internal/surface"
)

// Clock renders the current time and date. The clock face is only as
// current as the render moment; the panel refresh cadence decides how
// often it is re-rendered.
type Clock struct {
	// now is swappable so tests render a fixed instant.
	now func() time.Time
}

// NewClock returns the clock widget.
func NewClock() *Clock { return &Clock{now: time.Now} }

func (c *Clock) Slug() string        { return "clock" }
func (c *Clock) Name() string        { return "Clock" }
func (c *Clock) Description() string { return "Shows the current time and date" }

func (c *Clock) Fields() []Field {
	return []Field{
		{Name: "time_format", Label: "Time format", Type: "string", Default: "15:04"},
		{Name: "date_format", Label: "Date format", Type: "string", Default: "Monday 2 January"},
	}
}

func (c *Clock) DefaultConfig() map[string]string {
	return map[string]string{
		"time_format": "15:04",
		"date_format": "Monday 2 January",
	}
}

func (c *Clock) Render(config map[string]string, size image.Point) (*image.RGBA, error) {
	cfg := ResolveConfig(c, config)
	now := c.now()

	s := surface.New(size, color.RGBA{R: 250, G: 250, B: 250, A: 255})
	base := size.X
	if size.Y < base {
		base = size.Y
	}
	ink := color.RGBA{R: 28, G: 28, B: 32, A: 255}
	muted := color.RGBA{R: 120, G: 120, B: 124, A: 255}

	timeText := now.Format(cfg["time_format"])
	timeFace := surface.Face(base/3, true)
	tw, th := surface.TextSize(timeText, timeFace)
	s.Text(image.Pt((size.X-tw)/2, (size.Y-th)/3), timeText, timeFace, ink)

	dateText := now.Format(cfg["date_format"])
	dateFace := surface.Face(base/12, false)
	dw, dh := surface.TextSize(dateText, dateFace)
	s.Text(image.Pt((size.X-dw)/2, size.Y-size.Y/4-dh/2), dateText, dateFace, muted)

	return s.RGBA, nil
}
