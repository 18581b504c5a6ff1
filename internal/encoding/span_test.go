package encoding

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/haplo/internal/pool"
)

type span struct{ first, last int }

func encodeSpans(spans []span) []byte {
	buf := pool.NewByteBuffer(0)
	enc := NewSpanDeltaEncoder(buf)
	for _, s := range spans {
		enc.Write(s.first, s.last)
	}

	return buf.Bytes()
}

func TestSpanDeltaRoundTrip(t *testing.T) {
	spans := []span{{0, 2}, {0, 2}, {2, 4}, {1, 300}, {5000, 5000}, {4, 9}}
	data := encodeSpans(spans)

	dec := NewSpanDeltaDecoder(data)
	for i, want := range spans {
		first, last, ok := dec.Next()
		require.True(t, ok, "span %d", i)
		require.Equal(t, want, span{first, last})
	}
	require.Equal(t, len(data), dec.Offset())

	_, _, ok := dec.Next()
	require.False(t, ok)
}

func TestSpanDeltaCompact(t *testing.T) {
	spans := make([]span, 100)
	for i := range spans {
		spans[i] = span{i, i + 10}
	}

	require.Len(t, encodeSpans(spans), 200)
}

func TestSpanDeltaRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	spans := make([]span, 500)
	for i := range spans {
		first := rng.IntN(1 << 20)
		spans[i] = span{first, first + rng.IntN(1<<12)}
	}
	data := encodeSpans(spans)

	dec := NewSpanDeltaDecoder(data)
	for _, want := range spans {
		first, last, ok := dec.Next()
		require.True(t, ok)
		require.Equal(t, want, span{first, last})
	}
}

func TestSpanDeltaMalformed(t *testing.T) {
	data := encodeSpans([]span{{3, 900}})

	// truncated inside the length varint
	dec := NewSpanDeltaDecoder(data[:len(data)-1])
	_, _, ok := dec.Next()
	require.False(t, ok)
	require.Equal(t, 0, dec.Offset())

	// a first site below zero
	dec = NewSpanDeltaDecoder([]byte{0x01, 0x00})
	_, _, ok = dec.Next()
	require.False(t, ok)

	// unterminated varint
	dec = NewSpanDeltaDecoder([]byte{0x80, 0x80})
	_, _, ok = dec.Next()
	require.False(t, ok)
}

func BenchmarkSpanDeltaEncode(b *testing.B) {
	buf := pool.NewByteBuffer(1 << 16)
	for b.Loop() {
		buf.Reset()
		enc := NewSpanDeltaEncoder(buf)
		for i := range 1000 {
			enc.Write(i*3, i*3+150)
		}
	}
}
