package genotype

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/haplo/format"
)

func appendAll(s *Store, syms ...format.Symbol) {
	for _, sym := range syms {
		s.Append(sym)
	}
}

func TestStoreAppendAndGet(t *testing.T) {
	s := NewStore(4)
	syms := []format.Symbol{format.SymbolZero, format.SymbolOne, format.SymbolGap, format.SymbolOne}

	for i, sym := range syms {
		require.Equal(t, i, s.Append(sym))
	}

	require.Equal(t, len(syms), s.Len())
	for i, sym := range syms {
		require.Equal(t, sym, s.Get(i))
	}
}

func TestStoreCrossesWordBoundary(t *testing.T) {
	s := NewStore(0)
	for i := range 100 {
		s.Append(format.Symbol(i % 3))
	}

	require.Equal(t, 100, s.Len())
	require.Len(t, s.Words(), 4)
	require.Equal(t, 32, s.SizeBytes())
	for i := range 100 {
		require.Equal(t, format.Symbol(i%3), s.Get(i), "offset %d", i)
	}
}

func TestStoreOutOfRange(t *testing.T) {
	s := NewStore(2)
	appendAll(s, format.SymbolOne)

	require.Equal(t, format.SymbolOutOfRange, s.Get(-1))
	require.Equal(t, format.SymbolOutOfRange, s.Get(1))
	require.False(t, s.Invert(1))
}

func TestStoreInvert(t *testing.T) {
	s := NewStore(3)
	appendAll(s, format.SymbolZero, format.SymbolOne, format.SymbolGap)

	require.True(t, s.Invert(0))
	require.True(t, s.Invert(1))
	require.False(t, s.Invert(2))

	require.Equal(t, format.SymbolOne, s.Get(0))
	require.Equal(t, format.SymbolZero, s.Get(1))
	require.Equal(t, format.SymbolGap, s.Get(2))

	// inverting twice restores the original symbols
	s.Invert(0)
	s.Invert(1)
	require.Equal(t, format.SymbolZero, s.Get(0))
	require.Equal(t, format.SymbolOne, s.Get(1))
}

func TestStoreConcurrentInvertSameWord(t *testing.T) {
	s := NewStore(32)
	for range 32 {
		s.Append(format.SymbolZero)
	}

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			s.Invert(offset)
		}(i)
	}
	wg.Wait()

	for i := range 32 {
		require.Equal(t, format.SymbolOne, s.Get(i))
	}
}

func TestFromWords(t *testing.T) {
	src := NewStore(40)
	for i := range 40 {
		src.Append(format.Symbol(i % 2))
	}

	words := append([]uint64(nil), src.Words()...)
	dst, ok := FromWords(words, src.Len())
	require.True(t, ok)
	require.Equal(t, src.Len(), dst.Len())
	for i := range 40 {
		require.Equal(t, src.Get(i), dst.Get(i))
	}

	_, ok = FromWords(words[:1], 40)
	require.False(t, ok)
}

func BenchmarkStoreGet(b *testing.B) {
	s := NewStore(1 << 16)
	for i := range 1 << 16 {
		s.Append(format.Symbol(i % 3))
	}

	b.ResetTimer()
	var sink format.Symbol
	for i := range b.N {
		sink ^= s.Get(i & (1<<16 - 1))
	}
	_ = sink
}
