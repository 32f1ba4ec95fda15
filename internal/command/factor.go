// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/primegen/internal/factor"
	"github.com/staranto/primegen/internal/meta"
	"github.com/staranto/primegen/internal/output"
	"github.com/staranto/primegen/internal/sieve"
)

// FactorCommandAction factorizes every positional value through one shared
// cache and renders the results.
func FactorCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	values, err := ParseValues(cmd.Args().Slice())
	if err != nil {
		return err
	}

	limit := SieveBound(values, cmd.Int("limit"))
	log.Debugf("sieve bound for %d values: %d", len(values), limit)

	primes, elapsed, err := LoadPrimes(cmd, limit)
	if err != nil {
		return err
	}
	log.Debugf("loaded %d primes in %v", primes.Len(), elapsed)

	cache, err := factor.NewCache(primes, factor.WithCapacity(cmd.Int("capacity")))
	if err != nil {
		return err
	}
	results, err := factor.FactorizeAll(ctx, cache, values, cmd.Int("workers"))
	if err != nil {
		return err
	}

	w := stdout(cmd)
	err = output.EmitFactors(w, output.NewRows(values, results), output.FactorOptions{
		Format: cmd.String("output"),
		Attrs:  cmd.String("attrs"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Color:  cmd.Bool("color") && isTerminal(w),
		Titles: cmd.Bool("titles"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("stats") {
		s := cache.Stats()
		fmt.Fprintf(stderr(cmd), "entries=%d hits=%d misses=%d computations=%d evictions=%d\n",
			s.Entries, s.Hits, s.Misses, s.Computations, s.Evictions)
	}
	return nil
}

// SieveBound returns the smallest sieve limit that fully factorizes every
// value, raised to floor when floor is larger.
func SieveBound(values []int, floor int) int {
	largest := 0
	if len(values) > 0 {
		largest = slices.Max(values)
	}
	return max(sieve.Isqrt(largest)+1, floor)
}

// isTerminal reports whether w is a terminal. Color is only emitted when it
// is.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// FactorCommandBuilder constructs the cli.Command definition for the
// "factor" command.
func FactorCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	return &cli.Command{
		Name:      "factor",
		Usage:     "factorize integers over a sieve",
		UsageText: `primegen factor N [N...] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append([]cli.Flag{
			NewLimitFlag("factor", src, 0, "minimum sieve bound, raised as needed to factorize every N"),
			NewOutputFlag("factor", src, output.FactorFormats),
			&cli.IntFlag{
				Name:    "capacity",
				Usage:   "bound the factorization cache to this many entries, 0 is unbounded",
				Sources: cli.NewValueSourceChain(configSources("factor", "capacity", src)[0]),
				Validator: func(value int) error {
					return FlagValidators(value, NonNegativeValidator)
				},
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "concurrent factorizations, 0 uses every CPU",
				Sources: cli.NewValueSourceChain(configSources("factor", "workers", src)[0]),
				Validator: func(value int) error {
					return FlagValidators(value, NonNegativeValidator)
				},
			},
			&cli.BoolFlag{
				Name:        "stats",
				Usage:       "print cache statistics to stderr",
				HideDefault: true,
			},
		}, NewDisplayFlags("factor", src)...), NewGlobalFlags("factor", src)...),
		Action: FactorCommandAction,
	}
}
