// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bitset

import "math/bits"

const wordSize = 64

// BitSet is a fixed-size set of bits backed by a slice of uint64 words.
type BitSet struct {
	size int
	bits []uint64
}

// New returns a BitSet able to hold size bits, all cleared.
func New(size int) *BitSet {
	if size < 0 {
		size = 0
	}
	return &BitSet{
		size: size,
		bits: make([]uint64, (size+wordSize-1)/wordSize),
	}
}

// NewFull returns a BitSet able to hold size bits, all set.
func NewFull(size int) *BitSet {
	bs := New(size)
	for i := range bs.bits {
		bs.bits[i] = ^uint64(0)
	}
	// Keep the unused tail of the last word clear so Count and NextSet never
	// report bits past size.
	if rem := bs.size % wordSize; rem != 0 {
		bs.bits[len(bs.bits)-1] = (uint64(1) << rem) - 1
	}
	return bs
}

// Len returns the number of addressable bits.
func (bs *BitSet) Len() int {
	return bs.size
}

// Clear resets the bit at pos. It panics if pos is out of range, like a
// slice index would.
func (bs *BitSet) Clear(pos int) {
	bs.bits[pos/wordSize] &^= 1 << (uint(pos) % wordSize)
}

// Test reports whether the bit at pos is set.
func (bs *BitSet) Test(pos int) bool {
	return bs.bits[pos/wordSize]&(1<<(uint(pos)%wordSize)) != 0
}

// ClearStride clears every bit from start, stepping by step, up to and
// including last.
func (bs *BitSet) ClearStride(start, step, last int) {
	for i := start; i <= last; i += step {
		bs.bits[i/wordSize] &^= 1 << (uint(i) % wordSize)
	}
}

// NextSet returns the position of the first set bit at or after pos, and
// false when there is none.
func (bs *BitSet) NextSet(pos int) (int, bool) {
	if pos < 0 {
		pos = 0
	}
	if pos >= bs.size {
		return 0, false
	}

	idx := pos / wordSize
	word := bs.bits[idx] >> (uint(pos) % wordSize)
	if word != 0 {
		return pos + bits.TrailingZeros64(word), true
	}

	for idx++; idx < len(bs.bits); idx++ {
		if bs.bits[idx] != 0 {
			return idx*wordSize + bits.TrailingZeros64(bs.bits[idx]), true
		}
	}
	return 0, false
}

// Count returns the number of set bits.
func (bs *BitSet) Count() int {
	count := 0
	for _, word := range bs.bits {
		count += bits.OnesCount64(word)
	}
	return count
}
