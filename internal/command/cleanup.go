// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/RickFBAG/photoframe/internal/cache"
	"github.com/RickFBAG/photoframe/internal/config"
)

// CleanupCommandBuilder assembles the cleanup subcommand.
func CleanupCommandBuilder(settings config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "cleanup",
		Usage: "Purge expired entries from every cache tier",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return CleanupCommandAction(ctx, cmd, settings)
		},
	}
}

// CleanupCommandAction purges expired cache entries and reports per-tier
// counts.
func CleanupCommandAction(ctx context.Context, cmd *cli.Command, settings config.Settings) error {
	manager := cache.NewManager(settings.Cache)
	defer manager.Close()

	counts := manager.Cleanup()
	tiers := make([]string, 0, len(counts))
	for tier := range counts {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		fmt.Fprintf(cmd.Writer, "%s: purged %d\n", tier, counts[tier])
	}
	return nil
}
