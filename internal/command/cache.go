// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/primegen/internal/cacheutil"
	"github.com/staranto/primegen/internal/meta"
)

// CacheCommandBuilder constructs the "cache" command and its subcommands.
func CacheCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "manage the sieve result cache",
		Metadata: map[string]any{
			"meta": meta,
		},
		Commands: []*cli.Command{
			{
				Name:      "purge",
				Usage:     "remove cached sieve results",
				UsageText: "primegen cache purge [--hours H | --all]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "hours",
						Usage: "remove entries older than this many hours",
						Value: 24, //nolint:mnd
						Validator: func(value int) error {
							return FlagValidators(value, NonNegativeValidator)
						},
					},
					&cli.BoolFlag{
						Name:        "all",
						Usage:       "remove every entry regardless of age",
						HideDefault: true,
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					var (
						removed int
						err     error
					)
					if c.Bool("all") {
						removed, err = cacheutil.Clear()
					} else {
						removed, err = cacheutil.Purge(c.Int("hours"))
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(stdout(c), "removed %d cache entries\n", removed)
					return nil
				},
			},
			{
				Name:  "dir",
				Usage: "print the cache directory",
				Action: func(ctx context.Context, c *cli.Command) error {
					dir, ok := cacheutil.Dir()
					if !ok || !cacheutil.Enabled() {
						return fmt.Errorf("cache is disabled")
					}
					fmt.Fprintln(stdout(c), dir)
					return nil
				},
			},
		},
	}
}
