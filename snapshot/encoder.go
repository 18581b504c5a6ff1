// Package snapshot stores ingested blocks in a compact binary form.
//
// A snapshot holds the reads of a block exactly as stored: the span of every read, either as
// fixed-width uint32 pairs or delta coded, followed by the packed genotype words. Decoding rebuilds the block through block.Builder, so site
// metadata and the splittable list are recomputed rather than trusted. Flip history and
// haplotypes are not part of a snapshot.
package snapshot

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/haplo/block"
	"github.com/arloliu/haplo/compress"
	"github.com/arloliu/haplo/format"
	"github.com/arloliu/haplo/internal/encoding"
	"github.com/arloliu/haplo/internal/hash"
	"github.com/arloliu/haplo/internal/pool"
	"github.com/arloliu/haplo/section"
)

// Encode serializes the reads and packed symbols of blk.
//
// Returns:
//   - []byte: header followed by the compressed payload
//   - error: an option error, a codec error, or an error if the block exceeds the
//     32-bit limits of the format
func Encode(blk *block.Block, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	codec, err := compress.Get(cfg.compression)
	if err != nil {
		return nil, err
	}

	header := section.NewHeader(cfg.compression)
	if cfg.bigEndian {
		header.Flag.WithBigEndian()
	}
	header.Flag.WithSpanEncoding(cfg.spans)
	engine := header.Flag.Engine()

	store := blk.Store()
	words := store.Words()
	if uint64(blk.NumReads()) > math.MaxUint32 || uint64(blk.NumSites()) > math.MaxUint32 {
		return nil, fmt.Errorf("block of %d reads and %d sites is too large for a snapshot",
			blk.NumReads(), blk.NumSites())
	}

	bb := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(bb)
	bb.Grow(blk.NumReads()*8 + len(words)*8)

	var spans *encoding.SpanDeltaEncoder
	if cfg.spans == format.SpanDelta {
		spans = encoding.NewSpanDeltaEncoder(bb)
	}
	for row := range blk.NumReads() {
		read, err := blk.Read(row)
		if err != nil {
			return nil, err
		}
		if spans != nil {
			spans.Write(read.First, read.Last)
			continue
		}
		bb.B = engine.AppendUint32(bb.B, uint32(read.First))
		bb.B = engine.AppendUint32(bb.B, uint32(read.Last))
	}
	for _, w := range words {
		bb.B = engine.AppendUint64(bb.B, w)
	}

	if uint64(bb.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("payload of %d bytes is too large for a snapshot", bb.Len())
	}

	header.ReadCount = uint32(blk.NumReads())
	header.SiteCount = uint32(blk.NumSites())
	header.SymbolCount = uint64(store.Len())
	header.PayloadLen = uint32(bb.Len())
	header.Checksum = hash.Checksum(bb.Bytes())

	packed, err := codec.Compress(bb.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	out := make([]byte, 0, section.HeaderSize+len(packed))
	out = append(out, header.Bytes()...)
	out = append(out, packed...)

	return out, nil
}

// Write encodes blk and writes the snapshot to w.
func Write(w io.Writer, blk *block.Block, opts ...Option) error {
	data, err := Encode(blk, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)

	return err
}
