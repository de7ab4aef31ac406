// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/RickFBAG/photoframe/internal/cache"
	"github.com/RickFBAG/photoframe/internal/config"
	"github.com/RickFBAG/photoframe/internal/render"
	"github.com/RickFBAG/photoframe/internal/widget"
)

// RenderCommandBuilder assembles the render subcommand.
func RenderCommandBuilder(settings config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render a photo or widget to a palette-quantized bitmap",
		Flags: renderFlags(settings),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return RenderCommandAction(ctx, cmd, settings)
		},
	}
}

// RenderCommandAction runs one render and prints the output path.
func RenderCommandAction(ctx context.Context, cmd *cli.Command, settings config.Settings) error {
	if dir := cmd.String("output-dir"); dir != "" {
		settings.OutputDir = dir
	}

	manager := cache.NewManager(settings.Cache)
	defer manager.Close()

	pipeline, err := render.NewPipeline(settings, manager, widget.Builtin())
	if err != nil {
		return err
	}

	req := render.Request{
		Source:     cmd.String("source"),
		Identifier: cmd.String("id"),
		Config:     parseConfigPairs(cmd.StringSlice("config")),
		Layout:     cmd.String("layout"),
		Theme:      cmd.String("theme"),
		Palette:    cmd.String("palette"),
		Dither:     cmd.String("dither"),
		Separators: cmd.Bool("separators"),
	}
	log.Debugf("render request: %+v", req)

	result, err := pipeline.Render(req)
	if err != nil {
		return err
	}

	log.Infof("rendered %s/%s (fromCache=%t, cachePath=%s)",
		result.Source, result.Identifier, result.FromCache, result.CachePath)
	fmt.Fprintln(cmd.Writer, result.OutputPath)
	return nil
}

// parseConfigPairs turns repeated key=value flags into a widget config.
func parseConfigPairs(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	cfg := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			log.Warnf("ignoring malformed config pair %q", pair)
			continue
		}
		cfg[key] = value
	}
	return cfg
}
