// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package surface

import (
	"sync"

	"github.com/apex/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	parseFonts  sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font

	faceMu sync.Mutex
	faces  = map[faceKey]font.Face{}
)

type faceKey struct {
	size int
	bold bool
}

// Face returns a cached font face at the given pixel size. The Go fonts
// ship embedded, so rendering never depends on system font paths.
func Face(size int, bold bool) font.Face {
	if size < 1 {
		size = 1
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	key := faceKey{size: size, bold: bold}
	if face, ok := faces[key]; ok {
		return face
	}

	parseFonts.Do(func() {
		var err error
		if regularFont, err = opentype.Parse(goregular.TTF); err != nil {
			log.WithError(err).Error("failed to parse embedded regular font")
		}
		if boldFont, err = opentype.Parse(gobold.TTF); err != nil {
			log.WithError(err).Error("failed to parse embedded bold font")
		}
	})

	parsed := regularFont
	if bold {
		parsed = boldFont
	}
	if parsed == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	faces[key] = face
	return face
}
