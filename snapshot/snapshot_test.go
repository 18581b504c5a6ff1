package snapshot

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/haplo/block"
	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/format"
	"github.com/arloliu/haplo/internal/hash"
	"github.com/arloliu/haplo/section"
)

const input = `0 2 010
0 2 1-1
2 4 011
2 5 100-
4 5 10
`

func parseBlock(t *testing.T) *block.Block {
	t.Helper()

	blk, err := block.Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	return blk
}

func requireSameBlock(t *testing.T, want, got *block.Block) {
	t.Helper()

	require.Equal(t, want.NumReads(), got.NumReads())
	require.Equal(t, want.NumSites(), got.NumSites())
	require.Equal(t, want.Splittable(), got.Splittable())
	for row := range want.NumReads() {
		wr, _ := want.Read(row)
		gr, _ := got.Read(row)
		require.Equal(t, wr, gr)
		for site := wr.First; site <= wr.Last; site++ {
			require.Equal(t, want.ValueAt(row, site), got.ValueAt(row, site), "row %d site %d", row, site)
		}
	}
	for site := range want.NumSites() {
		ws, _ := want.Site(site)
		gs, _ := got.Site(site)
		require.Equal(t, ws, gs)
	}
}

func TestRoundTrip(t *testing.T) {
	blk := parseBlock(t)

	compressions := []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	}
	for _, ct := range compressions {
		for _, big := range []bool{false, true} {
			for _, spans := range []format.SpanEncoding{format.SpanRaw, format.SpanDelta} {
				name := ct.String() + "/" + spans.String()
				opts := []Option{WithCompression(ct), WithSpanEncoding(spans)}
				if big {
					name += "/big"
					opts = append(opts, WithBigEndian())
				}

				t.Run(name, func(t *testing.T) {
					data, err := Encode(blk, opts...)
					require.NoError(t, err)

					header, err := section.ParseHeader(data)
					require.NoError(t, err)
					require.Equal(t, big, header.Flag.IsBigEndian())
					require.Equal(t, ct, header.Flag.CompressionType())
					require.Equal(t, spans, header.Flag.SpanEncoding())
					require.Equal(t, uint32(5), header.ReadCount)
					require.Equal(t, uint32(6), header.SiteCount)
					require.Equal(t, uint64(15), header.SymbolCount)

					got, err := Decode(context.Background(), data)
					require.NoError(t, err)
					requireSameBlock(t, blk, got)
				})
			}
		}
	}
}

func TestDeltaSpansAreSmaller(t *testing.T) {
	blk := parseBlock(t)

	raw, err := Encode(blk, WithCompression(format.CompressionNone), WithSpanEncoding(format.SpanRaw))
	require.NoError(t, err)
	delta, err := Encode(blk, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	// 5 reads: 40 bytes raw, 10 bytes delta coded
	require.Equal(t, len(raw)-30, len(delta))
}

func TestWriteRead(t *testing.T) {
	blk := parseBlock(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, blk, WithCompression(format.CompressionLZ4), WithLittleEndian()))

	got, err := Read(context.Background(), &buf, block.WithParallelism(2))
	require.NoError(t, err)
	requireSameBlock(t, blk, got)
}

func TestDecodeKeepsFlippedSymbols(t *testing.T) {
	blk := parseBlock(t)
	require.NoError(t, blk.FlipSite(1))

	data, err := Encode(blk)
	require.NoError(t, err)
	got, err := Decode(context.Background(), data)
	require.NoError(t, err)

	require.Equal(t, blk.ValueAt(0, 1), got.ValueAt(0, 1))
	require.False(t, got.IsFlipped(1), "flip history is not stored")
}

func TestEncodeOptionErrors(t *testing.T) {
	_, err := Encode(parseBlock(t), WithCompression(format.CompressionType(42)))
	require.Error(t, err)
	require.Contains(t, err.Error(), "compression")

	_, err = Encode(parseBlock(t), WithSpanEncoding(format.SpanEncoding(7)))
	require.Error(t, err)
	require.Contains(t, err.Error(), "span encoding")
}

func TestDecodeRejectsFarSpan(t *testing.T) {
	blk := parseBlock(t)
	data, err := Encode(blk, WithCompression(format.CompressionNone), WithSpanEncoding(format.SpanRaw))
	require.NoError(t, err)

	// move the first read to a site far past every stored symbol and reseal the payload
	header, err := section.ParseHeader(data)
	require.NoError(t, err)
	payload := data[section.HeaderSize:]
	engine := header.Flag.Engine()
	engine.PutUint32(payload[0:4], 4_000_000_000)
	engine.PutUint32(payload[4:8], 4_000_000_002)
	header.Checksum = hash.Checksum(payload)
	copy(data, header.Bytes())

	_, err = Decode(context.Background(), data)
	require.ErrorIs(t, err, errs.ErrUncoveredSite)
}

func TestDecodeCorruption(t *testing.T) {
	blk := parseBlock(t)
	data, err := Encode(blk, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	t.Run("short header", func(t *testing.T) {
		_, err := Decode(context.Background(), data[:20])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[1] ^= 0xff
		_, err := Decode(context.Background(), bad)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("flipped payload bit", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)-1] ^= 0x01
		_, err := Decode(context.Background(), bad)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := Decode(context.Background(), data[:len(data)-8])
		require.ErrorIs(t, err, errs.ErrTruncatedPayload)
	})

	t.Run("truncated compressed payload", func(t *testing.T) {
		packed, err := Encode(blk, WithCompression(format.CompressionZstd))
		require.NoError(t, err)
		_, err = Decode(context.Background(), packed[:len(packed)-4])
		require.Error(t, err)
	})
}
