// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RickFBAG/photoframe/internal/cache"
)

// storeOutput writes the already-encoded bitmap into the output directory
// under a deterministic name, appending a numeric suffix instead of ever
// overwriting. The encoded bytes arrive complete, so a failed render can
// never leave a partial file here.
func (p *Pipeline) storeOutput(encoded []byte, req Request, theme Theme, now time.Time) (string, error) {
	identifier := req.Identifier
	if identifier == "" {
		identifier = "render"
	}
	baseName := fmt.Sprintf("%s_%s_%s_%s",
		now.Format("20060102-150405"), cache.Slugify(identifier), req.Layout, theme.Name)

	candidate := filepath.Join(p.outputDir, baseName+".png")
	for counter := 1; fileExists(candidate); counter++ {
		candidate = filepath.Join(p.outputDir, fmt.Sprintf("%s_%d.png", baseName, counter))
	}

	if err := os.WriteFile(candidate, encoded, 0o644); err != nil {
		return "", fmt.Errorf("failed to write output bitmap: %w", err)
	}
	return candidate, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
