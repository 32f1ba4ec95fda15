// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package factor

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"

	"github.com/staranto/primegen/internal/sieve"
)

// PrimeSource is a completed, ascending sequence of primes. *sieve.Result
// satisfies it.
type PrimeSource interface {
	Len() int
	At(i int) int
}

// limiter is implemented by sources that know the bound they were sieved to.
type limiter interface {
	Limit() int
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits         uint64
	Misses       uint64
	Evictions    uint64
	Computations uint64
	Entries      int
}

type options struct {
	capacity int
}

// Option customizes a Cache.
type Option func(*options)

// WithCapacity bounds the cache to n entries with least-recently-used
// eviction. 0 keeps the default unbounded cache; a negative n makes NewCache
// fail.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// Cache memoizes factorizations computed by trial division against a fixed
// PrimeSource. It is safe for concurrent use; each distinct n is computed at
// most once while its entry is retained.
type Cache struct {
	src PrimeSource

	mu    sync.RWMutex
	store store
	group singleflight.Group

	hits         atomic.Uint64
	misses       atomic.Uint64
	evictions    atomic.Uint64
	computations atomic.Uint64
}

// NewCache returns an empty cache bound to src.
func NewCache(src PrimeSource, opts ...Option) (*Cache, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.capacity < 0 {
		return nil, fmt.Errorf("%w: negative cache capacity %d", sieve.ErrInvalidArgument, o.capacity)
	}

	c := &Cache{src: src, store: mapStore{}}
	if o.capacity > 0 {
		s, err := newLRUStore(o.capacity)
		if err != nil {
			return nil, fmt.Errorf("failed to create bounded cache: %w", err)
		}
		c.store = s
	}
	log.Debugf("factor cache over %d primes, capacity %d", src.Len(), o.capacity)
	return c, nil
}

// Factorize returns the prime factorization of n. The returned map is a copy
// and may be modified freely.
func (c *Cache) Factorize(n int) (Factorization, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: cannot factorize negative %d", sieve.ErrInvalidArgument, n)
	}

	if f, ok := c.lookup(n); ok {
		c.hits.Add(1)
		return f.clone(), nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(strconv.Itoa(n), func() (any, error) {
		// Another flight may have stored n between our lookup and this one.
		if f, ok := c.lookup(n); ok {
			return f, nil
		}

		f, err := c.compute(n)
		if err != nil {
			return nil, err
		}
		c.computations.Add(1)

		c.mu.Lock()
		if c.store.put(n, f) {
			c.evictions.Add(1)
		}
		c.mu.Unlock()

		return f, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(Factorization).clone(), nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.len()
}

// Clear drops every cached entry. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.clear()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		Evictions:    c.evictions.Load(),
		Computations: c.computations.Load(),
		Entries:      c.Len(),
	}
}

func (c *Cache) lookup(n int) (Factorization, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.get(n)
}

// compute factors n by trial division. Division stops once p*p exceeds the
// remainder, at which point the remainder is 1 or prime.
func (c *Cache) compute(n int) (Factorization, error) {
	f := Factorization{}
	if n <= 1 {
		return f, nil
	}

	rem := n
	exhausted := true
	for i := 0; i < c.src.Len(); i++ {
		p := c.src.At(i)
		if p > rem/p {
			exhausted = false
			break
		}
		for rem%p == 0 {
			f.add(p)
			rem /= p
		}
	}

	if rem > 1 {
		// Running out of primes before reaching sqrt(rem) means rem may still
		// be composite. Sources that report their bound let us catch that.
		if l, ok := c.src.(limiter); ok && exhausted {
			// Any composite remainder has a prime factor above the bound, so it
			// is at least (bound+1)^2.
			next := max(l.Limit()+1, 2)
			if rem/next >= next {
				return nil, fmt.Errorf("%w: primes up to %d cannot factor %d", sieve.ErrInvalidArgument, l.Limit(), n)
			}
		}
		f.add(rem)
	}

	return f, nil
}
