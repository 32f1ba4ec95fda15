// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"fmt"
	"iter"
	"sort"
)

// Result is the immutable, ascending sequence of primes produced by Sieve.
// It is safe for concurrent use.
type Result struct {
	limit  int
	primes []int
}

// FromSlice rebuilds a Result from a previously computed list, such as one
// read back from disk. The list must be strictly ascending, start at 2 and
// not exceed limit. Primes up to sqrt(limit), which trial division depends
// on, are checked against a fresh sieve so a gap there is rejected.
func FromSlice(limit int, primes []int) (*Result, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", ErrInvalidArgument, limit)
	}
	for i, p := range primes {
		if p < 2 || p > limit {
			return nil, fmt.Errorf("%w: prime %d outside [2, %d]", ErrInvalidArgument, p, limit)
		}
		if i > 0 && p <= primes[i-1] {
			return nil, fmt.Errorf("%w: sequence not strictly ascending at index %d", ErrInvalidArgument, i)
		}
	}
	if len(primes) > 0 && primes[0] != 2 {
		return nil, fmt.Errorf("%w: sequence does not start at 2", ErrInvalidArgument)
	}
	if err := checkPrefix(limit, primes); err != nil {
		return nil, err
	}

	owned := make([]int, len(primes))
	copy(owned, primes)
	return &Result{limit: limit, primes: owned}, nil
}

// Limit returns the bound the sequence was sieved to.
func (r *Result) Limit() int {
	return r.limit
}

// Len returns the number of primes.
func (r *Result) Len() int {
	return len(r.primes)
}

// At returns the i'th prime, zero based.
func (r *Result) At(i int) int {
	return r.primes[i]
}

// Max returns the largest prime, or 0 when the sequence is empty.
func (r *Result) Max() int {
	if len(r.primes) == 0 {
		return 0
	}
	return r.primes[len(r.primes)-1]
}

// Slice returns a copy of the sequence.
func (r *Result) Slice() []int {
	out := make([]int, len(r.primes))
	copy(out, r.primes)
	return out
}

// Contains reports whether n is in the sequence.
func (r *Result) Contains(n int) bool {
	i := sort.SearchInts(r.primes, n)
	return i < len(r.primes) && r.primes[i] == n
}

// All iterates the sequence in ascending order.
func (r *Result) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, p := range r.primes {
			if !yield(p) {
				return
			}
		}
	}
}

// checkPrefix compares the primes <= sqrt(limit) in primes with a sieve of
// that range. primes must already be ascending.
func checkPrefix(limit int, primes []int) error {
	root := Isqrt(limit)
	want, err := Sieve(root)
	if err != nil {
		return err
	}

	n := sort.SearchInts(primes, root+1)
	if n != want.Len() {
		return fmt.Errorf("%w: %d primes <= %d, want %d", ErrInvalidArgument, n, root, want.Len())
	}
	for i := range n {
		if primes[i] != want.At(i) {
			return fmt.Errorf("%w: index %d holds %d, want %d", ErrInvalidArgument, i, primes[i], want.At(i))
		}
	}
	return nil
}
