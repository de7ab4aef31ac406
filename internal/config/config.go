// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// DisplaySettings is the target panel resolution. Every layout scales to
// it, so the same configuration drives 5.7" and 7.3" panels alike.
type DisplaySettings struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// MemoryCacheConfig configures the in-process LRU tier.
type MemoryCacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxItems   int  `yaml:"max_items"`
	DefaultTTL int  `yaml:"default_ttl"`
}

// FilesCacheConfig configures the on-disk PNG+sidecar tier.
type FilesCacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Directory  string `yaml:"directory"`
	DefaultTTL int    `yaml:"default_ttl"`
}

// SQLiteCacheConfig configures the embedded relational tier.
type SQLiteCacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Path       string `yaml:"path"`
	DefaultTTL int    `yaml:"default_ttl"`
}

// CacheSettings groups the three tier configurations. A DefaultTTL of zero
// or below means entries never expire in that tier.
type CacheSettings struct {
	Memory MemoryCacheConfig `yaml:"memory"`
	Files  FilesCacheConfig  `yaml:"files"`
	SQLite SQLiteCacheConfig `yaml:"sqlite"`
}

// Settings is the full application configuration.
type Settings struct {
	Display   DisplaySettings `yaml:"display"`
	ImageDir  string          `yaml:"image_dir"`
	OutputDir string          `yaml:"output_dir"`
	StaticDir string          `yaml:"static_dir"`
	Cache     CacheSettings   `yaml:"cache"`

	// Source is the file the settings were loaded from, empty when
	// running on pure defaults.
	Source string `yaml:"-"`
}

// Defaults returns the settings used when no configuration file exists.
// TTLs mirror the tier roles: memory is a short hot cache, files survive a
// restart, sqlite is the long-term record.
func Defaults() Settings {
	return Settings{
		Display:   DisplaySettings{Width: 800, Height: 480},
		ImageDir:  "images",
		StaticDir: "static",
		Cache: CacheSettings{
			Memory: MemoryCacheConfig{Enabled: true, MaxItems: 128, DefaultTTL: 300},
			Files:  FilesCacheConfig{Enabled: true, DefaultTTL: 900},
			SQLite: SQLiteCacheConfig{Enabled: true, DefaultTTL: 86400},
		},
	}
}

// Load reads photoframe.yaml from the standard locations and returns the
// merged settings. A missing file is not an error; defaults apply. Values
// present in the file override defaults field by field.
func Load() (Settings, error) {
	settings := Defaults()

	path, err := getConfigPath()
	if err != nil {
		settings.normalize("")
		return settings, nil
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	if err := yaml.Unmarshal(bytes, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	settings.Source = path
	settings.normalize(filepath.Dir(path))
	return settings, nil
}

// LoadFile reads settings from an explicit path, for callers (and tests)
// that bypass the standard search locations.
func LoadFile(path string) (Settings, error) {
	settings := Defaults()

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	if err := yaml.Unmarshal(bytes, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	settings.Source = path
	settings.normalize(filepath.Dir(path))
	return settings, nil
}

// normalize fills in the derived cache paths and resolves relative
// directories. Relative paths resolve against the config file location
// first and fall back to the image directory.
func (s *Settings) normalize(configDir string) {
	base := s.ImageDir
	if configDir == "" {
		configDir = base
	}

	if s.OutputDir == "" {
		s.OutputDir = base
	} else if !filepath.IsAbs(s.OutputDir) {
		s.OutputDir = filepath.Join(configDir, s.OutputDir)
	}

	if s.Cache.Files.Directory == "" {
		s.Cache.Files.Directory = filepath.Join(base, "cache", "png")
	} else if !filepath.IsAbs(s.Cache.Files.Directory) {
		s.Cache.Files.Directory = filepath.Join(configDir, s.Cache.Files.Directory)
	}

	if s.Cache.SQLite.Path == "" {
		s.Cache.SQLite.Path = filepath.Join(base, "cache", "metadata.sqlite")
	} else if !filepath.IsAbs(s.Cache.SQLite.Path) {
		s.Cache.SQLite.Path = filepath.Join(configDir, s.Cache.SQLite.Path)
	}
}

func getConfigPath() (string, error) {
	if p := os.Getenv("PHOTOFRAME_CONFIG"); p != "" {
		if fileInfo, err := os.Stat(p); err == nil && !fileInfo.IsDir() {
			return p, nil
		}
		return "", fmt.Errorf("PHOTOFRAME_CONFIG points to a missing file: %s", p)
	}

	var candidates = []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, "photoframe.yaml")
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}
	return "", fmt.Errorf("no config file found in standard locations")
}
