// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"errors"
	"fmt"
	"math"

	"github.com/apex/log"

	"github.com/staranto/primegen/internal/bitset"
)

// DefaultMaxLimit is the largest bound Sieve accepts unless overridden with
// WithMaxLimit. At one bit per integer the working state for this bound is
// 512MiB. Platforms with a 32-bit int are capped just below math.MaxInt.
const DefaultMaxLimit = min(1<<32, math.MaxInt-1)

var (
	// ErrInvalidArgument is returned for inputs outside an operation's domain,
	// such as a negative bound.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResourceExhausted is returned when a bound would need more memory
	// than the configured ceiling allows.
	ErrResourceExhausted = errors.New("resource exhausted")
)

type options struct {
	maxLimit int
}

// Option customizes a Sieve run.
type Option func(*options)

// WithMaxLimit overrides DefaultMaxLimit. Values <= 0 are ignored.
func WithMaxLimit(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.maxLimit = limit
		}
	}
}

// CheckLimit reports whether Sieve would accept limit under opts, without
// sieving. Callers holding a precomputed result use it to honor the same
// ceiling.
func CheckLimit(limit int, opts ...Option) error {
	o := options{maxLimit: DefaultMaxLimit}
	for _, opt := range opts {
		opt(&o)
	}

	if limit < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidArgument, limit)
	}
	// limit+1 bits are needed, so MaxInt itself can never be honored.
	if limit > o.maxLimit || limit == math.MaxInt {
		return fmt.Errorf("%w: limit %d exceeds maximum %d", ErrResourceExhausted, limit, o.maxLimit)
	}
	return nil
}

// Sieve returns every prime <= limit using the Sieve of Eratosthenes.
func Sieve(limit int, opts ...Option) (*Result, error) {
	if err := CheckLimit(limit, opts...); err != nil {
		return nil, err
	}

	if limit < 2 {
		return &Result{limit: limit, primes: []int{}}, nil
	}

	log.Debugf("sieving to %d", limit)

	candidates := bitset.NewFull(limit + 1)
	candidates.Clear(0)
	candidates.Clear(1)

	// Marking starts at p*p since every smaller multiple has a smaller prime
	// factor.
	for p := 2; p <= limit/p; p++ {
		if candidates.Test(p) {
			candidates.ClearStride(p*p, p, limit)
		}
	}

	primes := make([]int, 0, candidates.Count())
	for i, ok := candidates.NextSet(2); ok; i, ok = candidates.NextSet(i + 1) {
		primes = append(primes, i)
	}

	log.Debugf("sieve found %d primes <= %d", len(primes), limit)

	return &Result{limit: limit, primes: primes}, nil
}

// Isqrt returns floor(sqrt(n)) for n >= 0.
func Isqrt(n int) int {
	r := int(math.Sqrt(float64(n)))
	for r > 0 && r > n/r {
		r--
	}
	for (r + 1) <= n/(r+1) {
		r++
	}
	return r
}
