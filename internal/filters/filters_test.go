// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

const rows = `[
	{"n": 360, "factors": "2^3 * 3^2 * 5", "primes": [2, 3, 5], "exponents": {"2": 3, "3": 2, "5": 1}, "distinct": 3, "prime": false},
	{"n": 29, "factors": "29", "primes": [29], "exponents": {"29": 1}, "distinct": 1, "prime": true},
	{"n": 1, "factors": "", "primes": [], "exponents": {}, "distinct": 0, "prime": false}
]`

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		delimiter string
		want      []Filter
	}{
		{
			name: "empty spec",
			spec: "",
		},
		{
			name: "numeric greater than",
			spec: "n>100",
			want: []Filter{{Key: "n", Operand: ">", Target: "100"}},
		},
		{
			name: "negated equality",
			spec: "prime!=true",
			want: []Filter{{Key: "prime", Operand: "=", Target: "true", Negate: true}},
		},
		{
			name: "multiple filters",
			spec: "primes@5,distinct<3",
			want: []Filter{
				{Key: "primes", Operand: "@", Target: "5"},
				{Key: "distinct", Operand: "<", Target: "3"},
			},
		},
		{
			name:      "custom delimiter",
			spec:      "n>1;factors^2",
			delimiter: ";",
			want: []Filter{
				{Key: "n", Operand: ">", Target: "1"},
				{Key: "factors", Operand: "^", Target: "2"},
			},
		},
		{
			name: "invalid specs are dropped",
			spec: "nooperator,=novalue,n=4",
			want: []Filter{{Key: "n", Operand: "=", Target: "4"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PRIMEGEN_FILTER_DELIM", tt.delimiter)
			got := BuildFilters(tt.spec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckStringOperand(t *testing.T) {
	tests := []struct {
		value  string
		filter Filter
		want   bool
	}{
		{"2^3 * 5", Filter{Operand: "=", Target: "2^3 * 5"}, true},
		{"2^3 * 5", Filter{Operand: "=", Target: "5", Negate: true}, true},
		{"ABC", Filter{Operand: "~", Target: "abc"}, true},
		{"2^3 * 5", Filter{Operand: "^", Target: "2^"}, true},
		{"2^3 * 5", Filter{Operand: "@", Target: "* 5"}, true},
		{"2^3 * 5", Filter{Operand: "/", Target: `\^3`}, true},
		{"2^3 * 5", Filter{Operand: "/", Target: `(`}, false},
		{"b", Filter{Operand: ">", Target: "a"}, true},
		{"b", Filter{Operand: "?", Target: "a"}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, checkStringOperand(tt.value, tt.filter), "%q %+v", tt.value, tt.filter)
	}
}

func TestCheckNumericOperand(t *testing.T) {
	tests := []struct {
		value  float64
		filter Filter
		want   bool
	}{
		{360, Filter{Operand: ">", Target: "100"}, true},
		{360, Filter{Operand: "<", Target: "100"}, false},
		{360, Filter{Operand: "=", Target: " 360 "}, true},
		{360, Filter{Operand: "=", Target: "360", Negate: true}, false},
		{360, Filter{Operand: "=", Target: "abc"}, false},
		{360, Filter{Operand: "^", Target: "3"}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, checkNumericOperand(tt.value, tt.filter), "%v %+v", tt.value, tt.filter)
	}
}

func TestCheckContainsOperand(t *testing.T) {
	primes := []any{2.0, 3.0, 5.0}
	assert.True(t, checkContainsOperand(primes, Filter{Operand: "@", Target: "5"}))
	assert.False(t, checkContainsOperand(primes, Filter{Operand: "@", Target: "7"}))
	assert.True(t, checkContainsOperand(primes, Filter{Operand: "@", Target: "7", Negate: true}))

	exps := map[string]any{"2": 3.0}
	assert.True(t, checkContainsOperand(exps, Filter{Operand: "@", Target: "2"}))
	assert.False(t, checkContainsOperand(exps, Filter{Operand: "@", Target: "2", Negate: true}))

	assert.False(t, checkContainsOperand(42, Filter{Operand: "@", Target: "4"}))
}

func TestSelect(t *testing.T) {
	dataset := gjson.Parse(rows)

	tests := []struct {
		name string
		spec string
		want []int
	}{
		{name: "no filter", spec: "", want: []int{0, 1, 2}},
		{name: "primes only", spec: "prime=true", want: []int{1}},
		{name: "greater than", spec: "n>10", want: []int{0, 1}},
		{name: "contains prime factor", spec: "primes@3", want: []int{0}},
		{name: "nested exponent", spec: "exponents.2>2", want: []int{0}},
		{name: "combined", spec: "n>10,distinct<2", want: []int{1}},
		{name: "negated prefix", spec: "factors!^2", want: []int{2}},
		{name: "negated prefix with operator in target", spec: "factors!^2^", want: []int{1, 2}},
		{name: "missing key rejects", spec: "bogus=1", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(dataset, tt.spec))
		})
	}
}
