// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package render

import "errors"

var (
	// ErrSourceNotFound marks a request for an image file that does not
	// exist in the image directory.
	ErrSourceNotFound = errors.New("source image not found")

	// ErrUnknownWidget marks a request for a widget slug that is not
	// registered.
	ErrUnknownWidget = errors.New("unknown widget")
)
