// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/RickFBAG/photoframe/internal/config"
	"github.com/RickFBAG/photoframe/internal/widget"
)

// WidgetsCommandBuilder assembles the widgets subcommand.
func WidgetsCommandBuilder(settings config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "widgets",
		Usage: "List registered widgets and their configuration fields",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return WidgetsCommandAction(ctx, cmd)
		},
	}
}

// WidgetsCommandAction prints the registry contents.
func WidgetsCommandAction(ctx context.Context, cmd *cli.Command) error {
	for _, w := range widget.Builtin().List() {
		fmt.Fprintf(cmd.Writer, "%s\t%s\t%s\n", w.Slug(), w.Name(), w.Description())
		for _, field := range w.Fields() {
			required := ""
			if field.Required {
				required = " (required)"
			}
			fmt.Fprintf(cmd.Writer, "  %s\t%s%s\n", field.Name, field.Label, required)
		}
	}
	return nil
}
