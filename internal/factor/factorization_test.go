// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package factor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactorizationHelpers(t *testing.T) {
	tests := []struct {
		name    string
		f       Factorization
		str     string
		product int
		count   int
		primes  []int
	}{
		{name: "empty", f: Factorization{}, str: "", product: 1, count: 0, primes: []int{}},
		{name: "prime", f: Factorization{29: 1}, str: "29", product: 29, count: 1, primes: []int{29}},
		{name: "360", f: Factorization{5: 1, 2: 3, 3: 2}, str: "2^3 * 3^2 * 5", product: 360, count: 6, primes: []int{2, 3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.f.String())
			assert.Equal(t, tt.product, tt.f.Product())
			assert.Equal(t, tt.count, tt.f.Count())
			assert.Equal(t, tt.primes, tt.f.Primes())
		})
	}
}
