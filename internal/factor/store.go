// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package factor

import (
	lru "github.com/hashicorp/golang-lru"
)

// store holds computed factorizations. Implementations are guarded by the
// Cache's lock.
type store interface {
	get(n int) (Factorization, bool)
	// put reports whether an older entry was evicted to make room.
	put(n int, f Factorization) bool
	len() int
	clear()
}

// mapStore grows without bound and never evicts.
type mapStore map[int]Factorization

func (s mapStore) get(n int) (Factorization, bool) {
	f, ok := s[n]
	return f, ok
}

func (s mapStore) put(n int, f Factorization) bool {
	s[n] = f
	return false
}

func (s mapStore) len() int {
	return len(s)
}

func (s mapStore) clear() {
	for k := range s {
		delete(s, k)
	}
}

// lruStore keeps at most a fixed number of entries, evicting the least
// recently used.
type lruStore struct {
	cache *lru.Cache
}

func newLRUStore(capacity int) (*lruStore, error) {
	c, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &lruStore{cache: c}, nil
}

func (s *lruStore) get(n int) (Factorization, bool) {
	v, ok := s.cache.Get(n)
	if !ok {
		return nil, false
	}
	return v.(Factorization), true
}

func (s *lruStore) put(n int, f Factorization) bool {
	return s.cache.Add(n, f)
}

func (s *lruStore) len() int {
	return s.cache.Len()
}

func (s *lruStore) clear() {
	s.cache.Purge()
}
