// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"image"
	"image/color"

	"github.com/RickFBAG/photoframe/internal/surface"
)

// Message renders a static text card. It fetches nothing, which makes it
// the reference widget for pipeline and cache tests.
type Message struct{}

// NewMessage returns the message widget.
func NewMessage() *Message { return &Message{} }

func (m *Message) Slug() string        { return "message" }
func (m *Message) Name() string        { return "Message" }
func (m *Message) Description() string { return "Shows a configurable message card" }

func (m *Message) Fields() []Field {
	return []Field{
		{Name: "message", Label: "Message", Type: "string", Required: true},
		{Name: "author", Label: "Author", Type: "string"},
	}
}

func (m *Message) DefaultConfig() map[string]string {
	return map[string]string{"message": "Hello from the photoframe"}
}

func (m *Message) Render(config map[string]string, size image.Point) (*image.RGBA, error) {
	cfg := ResolveConfig(m, config)

	s := surface.New(size, color.RGBA{R: 248, G: 246, B: 240, A: 255})
	base := size.X
	if size.Y < base {
		base = size.Y
	}
	padding := base / 12
	accent := color.RGBA{R: 208, G: 94, B: 54, A: 255}
	ink := color.RGBA{R: 40, G: 36, B: 30, A: 255}

	s.Fill(image.Rect(0, 0, size.X, base/40+2), accent)

	messageFace := surface.Face(base/8, true)
	s.Text(image.Pt(padding, size.Y/3), cfg["message"], messageFace, ink)

	if author := cfg["author"]; author != "" {
		authorFace := surface.Face(base/16, false)
		_, h := surface.TextSize(author, authorFace)
		s.Text(image.Pt(padding, size.Y-padding-h), "- "+author, authorFace, accent)
	}
	return s.RGBA, nil
}
