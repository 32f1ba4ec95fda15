// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package factor

import (
	"sort"
	"strconv"
	"strings"
)

// Factorization maps each prime factor to its exponent. Exponents are always
// >= 1; the empty map is the factorization of 0 and 1.
type Factorization map[int]int

// add records one more occurrence of p.
func (f Factorization) add(p int) {
	f[p]++
}

// Primes returns the distinct prime factors in ascending order.
func (f Factorization) Primes() []int {
	primes := make([]int, 0, len(f))
	for p := range f {
		primes = append(primes, p)
	}
	sort.Ints(primes)
	return primes
}

// Product multiplies the factors back together. The empty factorization
// yields 1.
func (f Factorization) Product() int {
	product := 1
	for p, e := range f {
		for i := 0; i < e; i++ {
			product *= p
		}
	}
	return product
}

// Count returns the number of prime factors counted with multiplicity.
func (f Factorization) Count() int {
	count := 0
	for _, e := range f {
		count += e
	}
	return count
}

// String renders the factorization as "2^3 * 3^2 * 5".
func (f Factorization) String() string {
	primes := f.Primes()
	parts := make([]string, 0, len(primes))
	for _, p := range primes {
		if e := f[p]; e > 1 {
			parts = append(parts, strconv.Itoa(p)+"^"+strconv.Itoa(e))
		} else {
			parts = append(parts, strconv.Itoa(p))
		}
	}
	return strings.Join(parts, " * ")
}

func (f Factorization) clone() Factorization {
	out := make(Factorization, len(f))
	for p, e := range f {
		out[p] = e
	}
	return out
}
