// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package factor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/primegen/internal/sieve"
)

// countingSource wraps a slice and counts every prime handed out.
type countingSource struct {
	primes []int
	reads  atomic.Int64
}

func (s *countingSource) Len() int { return len(s.primes) }

func (s *countingSource) At(i int) int {
	s.reads.Add(1)
	return s.primes[i]
}

func mustSieve(t *testing.T, limit int) *sieve.Result {
	t.Helper()
	r, err := sieve.Sieve(limit)
	require.NoError(t, err)
	return r
}

func mustCache(t *testing.T, src PrimeSource, opts ...Option) *Cache {
	t.Helper()
	c, err := NewCache(src, opts...)
	require.NoError(t, err)
	return c
}

func TestNewCacheCapacity(t *testing.T) {
	_, err := NewCache(mustSieve(t, 10), WithCapacity(-1))
	assert.ErrorIs(t, err, sieve.ErrInvalidArgument)

	c, err := NewCache(mustSieve(t, 10), WithCapacity(0))
	require.NoError(t, err)
	assert.IsType(t, mapStore{}, c.store)

	c, err = NewCache(mustSieve(t, 10), WithCapacity(3))
	require.NoError(t, err)
	assert.IsType(t, &lruStore{}, c.store)
}

func TestFactorizeKnownValues(t *testing.T) {
	c := mustCache(t, mustSieve(t, 30))

	tests := []struct {
		n    int
		want Factorization
	}{
		{n: 0, want: Factorization{}},
		{n: 1, want: Factorization{}},
		{n: 2, want: Factorization{2: 1}},
		{n: 29, want: Factorization{29: 1}},
		{n: 360, want: Factorization{2: 3, 3: 2, 5: 1}},
		{n: 1024, want: Factorization{2: 10}},
		{n: 899, want: Factorization{29: 1, 31: 1}},
	}

	for _, tt := range tests {
		got, err := c.Factorize(tt.n)
		require.NoError(t, err, "n=%d", tt.n)
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
	}
}

func TestFactorizeResidualPrime(t *testing.T) {
	c := mustCache(t, mustSieve(t, 100))

	got, err := c.Factorize(97)
	require.NoError(t, err)
	assert.Equal(t, Factorization{97: 1}, got)

	// Beyond the bound but still reachable: 2 * 101.
	got, err = c.Factorize(202)
	require.NoError(t, err)
	assert.Equal(t, Factorization{2: 1, 101: 1}, got)

	// 9973 is prime and below 100^2.
	got, err = c.Factorize(9973)
	require.NoError(t, err)
	assert.Equal(t, Factorization{9973: 1}, got)
}

func TestFactorizeProductProperty(t *testing.T) {
	const limit = 3000
	primes := mustSieve(t, limit)
	c := mustCache(t, primes)

	for n := 2; n <= limit; n++ {
		f, err := c.Factorize(n)
		require.NoError(t, err)
		assert.Equal(t, n, f.Product(), "n=%d", n)
		for p, e := range f {
			assert.GreaterOrEqual(t, e, 1)
			assert.True(t, primes.Contains(p), "%d is not prime", p)
		}
	}
}

func TestFactorizeNegative(t *testing.T) {
	c := mustCache(t, mustSieve(t, 10))
	_, err := c.Factorize(-4)
	assert.True(t, errors.Is(err, sieve.ErrInvalidArgument))
	assert.Equal(t, 0, c.Len())
}

func TestFactorizeInsufficientPrimes(t *testing.T) {
	c := mustCache(t, mustSieve(t, 10))

	// 121 = 11^2 and 11 is not in the sequence, so the remainder can't be
	// trusted to be prime.
	_, err := c.Factorize(121)
	assert.True(t, errors.Is(err, sieve.ErrInvalidArgument))

	// 113 < 11^2 so it must be prime.
	got, err := c.Factorize(113)
	require.NoError(t, err)
	assert.Equal(t, Factorization{113: 1}, got)
}

func TestFactorizeIdempotent(t *testing.T) {
	src := &countingSource{primes: mustSieve(t, 100).Slice()}
	c := mustCache(t, src)

	first, err := c.Factorize(9240)
	require.NoError(t, err)
	reads := src.reads.Load()
	assert.Positive(t, reads)

	second, err := c.Factorize(9240)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, reads, src.reads.Load(), "second lookup must not divide")

	// Trivial values are cached too.
	_, err = c.Factorize(1)
	require.NoError(t, err)
	_, err = c.Factorize(1)
	require.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, uint64(2), stats.Computations)
	assert.Equal(t, 2, stats.Entries)
}

func TestFactorizeMutationIsolation(t *testing.T) {
	c := mustCache(t, mustSieve(t, 100))

	a, err := c.Factorize(12)
	require.NoError(t, err)
	a[2] = 99
	a[7] = 1

	_, err = c.Factorize(18)
	require.NoError(t, err)

	again, err := c.Factorize(12)
	require.NoError(t, err)
	assert.Equal(t, Factorization{2: 2, 3: 1}, again)
}

func TestClear(t *testing.T) {
	src := &countingSource{primes: []int{2, 3, 5, 7}}
	c := mustCache(t, src)

	_, err := c.Factorize(30)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())

	before := src.reads.Load()
	_, err = c.Factorize(30)
	require.NoError(t, err)
	assert.Greater(t, src.reads.Load(), before)
}

func TestBoundedCacheEvicts(t *testing.T) {
	c := mustCache(t, mustSieve(t, 100), WithCapacity(2))

	for _, n := range []int{10, 20, 30} {
		_, err := c.Factorize(n)
		require.NoError(t, err)
	}

	stats := c.Stats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, uint64(1), stats.Evictions)

	// 10 was least recently used and must be recomputed.
	_, err := c.Factorize(10)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), c.Stats().Computations)
}

func TestConcurrentFactorizeComputesOnce(t *testing.T) {
	c := mustCache(t, mustSieve(t, 1000))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := c.Factorize(997 * 991)
			assert.NoError(t, err)
			assert.Equal(t, Factorization{991: 1, 997: 1}, f)
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(1), c.Stats().Computations)
}

func TestFactorizeAll(t *testing.T) {
	c := mustCache(t, mustSieve(t, 100))

	ns := []int{360, 29, 1, 360, 97}
	got, err := FactorizeAll(context.Background(), c, ns, 3)
	require.NoError(t, err)
	require.Len(t, got, len(ns))

	assert.Equal(t, Factorization{2: 3, 3: 2, 5: 1}, got[0])
	assert.Equal(t, Factorization{29: 1}, got[1])
	assert.Equal(t, Factorization{}, got[2])
	assert.Equal(t, got[0], got[3])
	assert.Equal(t, Factorization{97: 1}, got[4])
}

func TestFactorizeAllErrors(t *testing.T) {
	c := mustCache(t, mustSieve(t, 100))

	_, err := FactorizeAll(context.Background(), c, []int{4, -1, 6}, 2)
	assert.True(t, errors.Is(err, sieve.ErrInvalidArgument))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FactorizeAll(ctx, c, []int{4, 6}, 2)
	assert.True(t, errors.Is(err, context.Canceled))
}
