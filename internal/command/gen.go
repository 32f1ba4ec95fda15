// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/primegen/internal/meta"
	"github.com/staranto/primegen/internal/output"
)

// GenCommandAction sieves up to --limit and writes the primes in the
// requested format to every configured sink. Progress goes to stderr so the
// document on stdout stays clean.
func GenCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	limit := cmd.Int("limit")
	format := cmd.String("output")
	quiet := cmd.Bool("quiet")

	errw := stderr(cmd)
	if !quiet {
		fmt.Fprintf(errw, "Finding all primes up to %s.\n", humanize.Comma(int64(limit)))
	}

	primes, elapsed, err := LoadPrimes(cmd, limit)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(errw, "Primes found: %s\n", humanize.Comma(int64(primes.Len())))
		fmt.Fprintf(errw, "Time taken: %.2f seconds\n", elapsed.Seconds())
	}

	var doc bytes.Buffer
	if err := output.EncodePrimes(&doc, primes, format); err != nil {
		return err
	}

	sinks, err := BuildSinks(ctx, cmd)
	if err != nil {
		return err
	}
	if err := output.Fanout(ctx, sinks, doc.Bytes(), output.ContentType(format)); err != nil {
		return err
	}

	if !quiet {
		for _, s := range sinks {
			if _, ok := s.(output.WriterSink); ok {
				continue
			}
			fmt.Fprintf(errw, "Wrote %s to %s\n", humanize.Bytes(uint64(doc.Len())), s)
		}
	}
	return nil
}

// GenCommandBuilder constructs the cli.Command definition for the "gen"
// command.
func GenCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	return &cli.Command{
		Name:      "gen",
		Usage:     "generate the primes up to a limit",
		UsageText: `primegen gen [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append([]cli.Flag{
			NewLimitFlag("gen", src, defaultLimit, "largest value to test for primality"),
			NewOutputFlag("gen", src, output.PrimeFormats),
			&cli.StringFlag{
				Name:    "out",
				Usage:   "write the output to this file instead of stdout",
				Sources: cli.NewValueSourceChain(configSources("gen", "out", src)[0]),
			},
			&cli.BoolFlag{
				Name:        "quiet",
				Aliases:     []string{"q"},
				Usage:       "suppress progress on stderr",
				HideDefault: true,
			},
		}, NewS3Flags("gen", src)...), NewGlobalFlags("gen", src)...),
		Action: GenCommandAction,
	}
}
