// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/RickFBAG/photoframe/internal/config"
	"github.com/RickFBAG/photoframe/internal/render"
)

// ThemesCommandBuilder assembles the themes subcommand.
func ThemesCommandBuilder(settings config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "themes",
		Usage: "List available themes, layouts and palettes",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return ThemesCommandAction(ctx, cmd)
		},
	}
}

// ThemesCommandAction prints the render presets.
func ThemesCommandAction(ctx context.Context, cmd *cli.Command) error {
	fmt.Fprintf(cmd.Writer, "themes:   %s\n", strings.Join(render.ListThemes(), ", "))
	fmt.Fprintf(cmd.Writer, "layouts:  %s\n", strings.Join(render.ListLayouts(), ", "))
	fmt.Fprintf(cmd.Writer, "palettes: %s\n", strings.Join(render.ListPalettes(), ", "))
	fmt.Fprintf(cmd.Writer, "dithers:  floyd-steinberg, atkinson, none\n")
	return nil
}
