package snapshot

import (
	"context"
	"fmt"
	"io"

	"github.com/arloliu/haplo/block"
	"github.com/arloliu/haplo/compress"
	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/format"
	"github.com/arloliu/haplo/genotype"
	"github.com/arloliu/haplo/internal/encoding"
	"github.com/arloliu/haplo/internal/hash"
	"github.com/arloliu/haplo/section"
)

// Decode rebuilds a block from a snapshot. opts configure the rebuilt block as for
// block.NewBuilder.
//
// Returns:
//   - *block.Block: the reclassified block
//   - error: a header error, ErrChecksumMismatch, ErrTruncatedPayload, a codec error or any
//     error of block.Builder
func Decode(ctx context.Context, data []byte, opts ...block.Option) (*block.Block, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	codec, err := compress.Get(header.Flag.CompressionType())
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(data[section.HeaderSize:], int(header.PayloadLen))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrTruncatedPayload, err)
	}
	if !hash.Verify(payload, header.Checksum) {
		return nil, errs.ErrChecksumMismatch
	}

	engine := header.Flag.Engine()
	firsts, lasts, spanLen, err := decodeSpans(payload, int(header.ReadCount), header.Flag)
	if err != nil {
		return nil, err
	}

	numWords := int((header.SymbolCount + 31) / 32)
	if len(payload) != spanLen+numWords*8 {
		return nil, fmt.Errorf("payload of %d bytes for %d reads and %d symbols: %w",
			len(payload), header.ReadCount, header.SymbolCount, errs.ErrTruncatedPayload)
	}

	words := make([]uint64, numWords)
	for i := range words {
		words[i] = engine.Uint64(payload[spanLen+i*8:])
	}
	store, ok := genotype.FromWords(words, int(header.SymbolCount))
	if !ok {
		return nil, errs.ErrTruncatedPayload
	}

	b, err := block.NewBuilder(opts...)
	if err != nil {
		return nil, err
	}

	offset := 0
	var symbols []format.Symbol
	for i := range firsts {
		first, last := firsts[i], lasts[i]
		if last < first || offset+last-first+1 > store.Len() {
			return nil, fmt.Errorf("read %d: span [%d, %d]: %w", i, first, last, errs.ErrTruncatedPayload)
		}

		symbols = symbols[:0]
		for range last - first + 1 {
			symbols = append(symbols, store.Get(offset))
			offset++
		}
		if err := b.AddRead(first, last, symbols); err != nil {
			return nil, err
		}
	}
	if offset != store.Len() {
		return nil, fmt.Errorf("%d of %d symbols used: %w", offset, store.Len(), errs.ErrTruncatedPayload)
	}

	blk, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	if blk.NumSites() != int(header.SiteCount) {
		return nil, fmt.Errorf("rebuilt %d sites, header records %d: %w",
			blk.NumSites(), header.SiteCount, errs.ErrTruncatedPayload)
	}

	return blk, nil
}

// decodeSpans reads count read spans from the start of payload and returns them with the
// number of bytes they occupy.
func decodeSpans(payload []byte, count int, flag section.Flag) (firsts, lasts []int, n int, err error) {
	minLen := count * 8
	if flag.SpanEncoding() == format.SpanDelta {
		minLen = count * 2 // two one-byte varints at least
	}
	if len(payload) < minLen {
		return nil, nil, 0, fmt.Errorf("%d read spans: %w", count, errs.ErrTruncatedPayload)
	}
	firsts = make([]int, count)
	lasts = make([]int, count)

	if flag.SpanEncoding() == format.SpanDelta {
		dec := encoding.NewSpanDeltaDecoder(payload)
		for i := range count {
			first, last, ok := dec.Next()
			if !ok {
				return nil, nil, 0, fmt.Errorf("span of read %d: %w", i, errs.ErrTruncatedPayload)
			}
			firsts[i], lasts[i] = first, last
		}

		return firsts, lasts, dec.Offset(), nil
	}

	engine := flag.Engine()
	for i := range count {
		firsts[i] = int(engine.Uint32(payload[i*8:]))
		lasts[i] = int(engine.Uint32(payload[i*8+4:]))
	}

	return firsts, lasts, count * 8, nil
}

// Read reads a whole snapshot from r and decodes it.
func Read(ctx context.Context, r io.Reader, opts ...block.Option) (*block.Block, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return Decode(ctx, data, opts...)
}
