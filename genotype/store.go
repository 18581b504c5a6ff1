// Package genotype provides the packed storage for read symbols.
//
// Every symbol of the alphabet {0, 1, -} occupies two bits. Reads are stored back to back,
// so the matrix is ragged: only cells covered by a read consume space. The block package
// resolves (row, site) pairs to offsets in the store.
package genotype

import (
	"sync/atomic"

	"github.com/arloliu/haplo/format"
)

const (
	bitsPerSymbol   = 2
	symbolsPerWord  = 64 / bitsPerSymbol
	symbolMask      = uint64(1<<bitsPerSymbol) - 1
	wordShift       = 5 // log2(symbolsPerWord)
	inWordIndexMask = symbolsPerWord - 1
)

// Store is an append-only sequence of 2-bit symbols.
//
// Appends are not safe for concurrent use and happen during ingestion only. After ingestion
// Get and Invert may be called from many goroutines: reads use atomic loads and Invert
// updates the containing word with compare-and-swap, so two goroutines touching adjacent
// symbols never lose each other's writes.
type Store struct {
	words []uint64
	n     int
}

// NewStore creates an empty store with room for capacity symbols.
func NewStore(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}

	return &Store{
		words: make([]uint64, 0, wordsFor(capacity)),
	}
}

// FromWords creates a store over an existing packed word slice holding n symbols.
// The slice is used directly; the caller must not modify it afterwards.
//
// Returns false if words is too short to hold n symbols.
func FromWords(words []uint64, n int) (*Store, bool) {
	if n < 0 || len(words) < wordsFor(n) {
		return nil, false
	}

	return &Store{words: words[:wordsFor(n)], n: n}, true
}

func wordsFor(n int) int {
	return (n + symbolsPerWord - 1) / symbolsPerWord
}

// Len returns the number of stored symbols.
func (s *Store) Len() int {
	return s.n
}

// Append stores sym at the next free offset and returns that offset.
// Only the low two bits of sym are kept.
func (s *Store) Append(sym format.Symbol) int {
	offset := s.n
	wordIdx := offset >> wordShift
	if wordIdx == len(s.words) {
		s.words = append(s.words, 0)
	}
	shift := uint(offset&inWordIndexMask) * bitsPerSymbol
	s.words[wordIdx] |= (uint64(sym) & symbolMask) << shift
	s.n++

	return offset
}

// Get returns the symbol at offset. Offsets outside [0, Len()) yield SymbolOutOfRange.
func (s *Store) Get(offset int) format.Symbol {
	if offset < 0 || offset >= s.n {
		return format.SymbolOutOfRange
	}
	word := atomic.LoadUint64(&s.words[offset>>wordShift])
	shift := uint(offset&inWordIndexMask) * bitsPerSymbol

	return format.Symbol((word >> shift) & symbolMask)
}

// Invert swaps a zero for a one (and a one for a zero) at offset.
// Gaps and offsets outside the store are left untouched and reported with false.
func (s *Store) Invert(offset int) bool {
	if offset < 0 || offset >= s.n {
		return false
	}
	addr := &s.words[offset>>wordShift]
	shift := uint(offset&inWordIndexMask) * bitsPerSymbol

	for {
		old := atomic.LoadUint64(addr)
		sym := format.Symbol((old >> shift) & symbolMask)
		if !sym.IsAllele() {
			return false
		}
		// zero and one differ only in the low bit of the pair
		updated := old ^ (uint64(1) << shift)
		if atomic.CompareAndSwapUint64(addr, old, updated) {
			return true
		}
	}
}

// Words returns the packed words backing the store. Unused high bits of the last word are zero.
//
// The slice aliases internal memory and must be treated as read-only.
func (s *Store) Words() []uint64 {
	return s.words
}

// SizeBytes returns the memory used by the packed symbols.
func (s *Store) SizeBytes() int {
	return len(s.words) * 8
}
