// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/RickFBAG/photoframe/internal/config"
)

// InitApp loads the settings and assembles the CLI command tree.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}

	app := &cli.Command{
		Name:  "photoframe",
		Usage: "Render photos and widgets for an e-ink panel",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "photoframe version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		CleanupCommandBuilder(settings),
		InvalidateCommandBuilder(settings),
		RenderCommandBuilder(settings),
		ThemesCommandBuilder(settings),
		WidgetsCommandBuilder(settings),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
