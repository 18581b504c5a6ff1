// Package haplotype provides the bit vectors that hold phased solutions.
package haplotype

import (
	"strings"
	"sync/atomic"
)

// Bits is a read-only view of a sequence of 0/1 values.
//
// Local sub-block solutions produced by an optimizer only need to satisfy Bits;
// *Vector implements it as well.
type Bits interface {
	Len() int
	Get(i int) uint8
}

// Vector is a fixed-length bit vector.
//
// Set and Get operate on whole 64-bit words atomically, so goroutines writing disjoint
// index ranges never interfere even when the ranges share a word.
type Vector struct {
	words []uint64
	n     int
}

var _ Bits = (*Vector)(nil)

// NewVector creates a zeroed vector of n bits.
func NewVector(n int) *Vector {
	if n < 0 {
		n = 0
	}

	return &Vector{words: make([]uint64, (n+63)/64), n: n}
}

// FromString builds a vector from a string of '0' and '1' characters.
// Returns false when s contains any other character.
func FromString(s string) (*Vector, bool) {
	v := NewVector(len(s))
	for i := range len(s) {
		switch s[i] {
		case '0':
		case '1':
			v.Set(i, 1)
		default:
			return nil, false
		}
	}

	return v, true
}

// FromBits copies any Bits into a new vector.
func FromBits(b Bits) *Vector {
	v := NewVector(b.Len())
	for i := range b.Len() {
		v.Set(i, b.Get(i))
	}

	return v
}

// Len returns the number of bits.
func (v *Vector) Len() int {
	return v.n
}

// Get returns the bit at i (0 or 1). Indices outside the vector read as 0.
func (v *Vector) Get(i int) uint8 {
	if i < 0 || i >= v.n {
		return 0
	}

	return uint8(atomic.LoadUint64(&v.words[i>>6]) >> uint(i&63) & 1)
}

// Set writes the low bit of value at i. Indices outside the vector are ignored.
func (v *Vector) Set(i int, value uint8) {
	if i < 0 || i >= v.n {
		return
	}
	mask := uint64(1) << uint(i&63)
	if value&1 == 1 {
		atomic.OrUint64(&v.words[i>>6], mask)
	} else {
		atomic.AndUint64(&v.words[i>>6], ^mask)
	}
}

// Invert returns a new vector with every bit flipped.
func (v *Vector) Invert() *Vector {
	out := NewVector(v.n)
	for i := range v.n {
		out.Set(i, v.Get(i)^1)
	}

	return out
}

// Equal reports whether both vectors hold the same bits.
func (v *Vector) Equal(other *Vector) bool {
	if v.n != other.n {
		return false
	}
	for i := range v.n {
		if v.Get(i) != other.Get(i) {
			return false
		}
	}

	return true
}

// String renders the vector as a string of '0' and '1'.
func (v *Vector) String() string {
	var sb strings.Builder
	sb.Grow(v.n)
	for i := range v.n {
		sb.WriteByte('0' + v.Get(i))
	}

	return sb.String()
}
