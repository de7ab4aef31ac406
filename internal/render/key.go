// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// FileVersionToken fingerprints an image file so cached output goes stale
// exactly when the file changes.
func FileVersionToken(info os.FileInfo) string {
	return fmt.Sprintf("%d:%d", info.ModTime().UnixNano(), info.Size())
}

// ConfigVersionToken fingerprints a resolved widget configuration. Maps
// marshal with sorted keys, so insertion order never changes the token.
func ConfigVersionToken(config map[string]string) string {
	if config == nil {
		config = map[string]string{}
	}
	payload, _ := json.Marshal(config)
	digest := sha1.Sum(payload)
	return hex.EncodeToString(digest[:])
}

// CacheKey derives the stable identity of a render. It covers every field
// that changes the output bytes and nothing else; two requests share a key
// only when their rendered bitmaps are identical.
func CacheKey(req Request, versionToken string) string {
	separators := "0"
	if req.Separators {
		separators = "1"
	}
	payload := strings.Join([]string{
		req.Source,
		req.Identifier,
		versionToken,
		req.Layout,
		req.Theme,
		req.Palette,
		req.Dither,
		separators,
	}, "|")
	digest := sha1.Sum([]byte(payload))
	return hex.EncodeToString(digest[:])
}
