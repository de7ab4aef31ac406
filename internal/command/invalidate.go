// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/RickFBAG/photoframe/internal/cache"
	"github.com/RickFBAG/photoframe/internal/config"
)

// InvalidateCommandBuilder assembles the invalidate subcommand.
func InvalidateCommandBuilder(settings config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "invalidate",
		Usage: "Drop cached renders for a namespace or a single key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "cache namespace",
				Value:   "renders",
			},
			&cli.StringFlag{
				Name:    "key",
				Aliases: []string{"k"},
				Usage:   "specific cache key, whole namespace when omitted",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return InvalidateCommandAction(ctx, cmd, settings)
		},
	}
}

// InvalidateCommandAction removes cache entries across all tiers.
func InvalidateCommandAction(ctx context.Context, cmd *cli.Command, settings config.Settings) error {
	manager := cache.NewManager(settings.Cache)
	defer manager.Close()

	removed := manager.Invalidate(cmd.String("namespace"), cmd.String("key"))
	fmt.Fprintf(cmd.Writer, "removed %d\n", removed)
	return nil
}
