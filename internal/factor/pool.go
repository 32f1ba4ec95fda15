// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package factor

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FactorizeAll factorizes every value in ns through c using at most workers
// goroutines and returns the results in input order. workers <= 0 uses
// GOMAXPROCS. The first error cancels the remaining work.
func FactorizeAll(ctx context.Context, c *Cache, ns []int, workers int) ([]Factorization, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Factorization, len(ns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, n := range ns {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := c.Factorize(n)
			if err != nil {
				return err
			}
			results[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Cancellation of the parent context may have stopped the loop early
	// without any goroutine observing it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
