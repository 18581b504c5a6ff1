// Package encoding provides the compact coding of read spans used by block snapshots.
//
// Reads are ingested roughly sorted by their first site, so consecutive first sites differ
// by small amounts. SpanDeltaEncoder stores every read as
//
//  1. the difference between its first site and the previous read's first site,
//     zigzag + varint encoded (the first read is compared against site 0)
//  2. its length minus one, varint encoded
//
// A typical short-read block needs two or three bytes per read instead of eight.
package encoding

import (
	"encoding/binary"

	"github.com/arloliu/haplo/internal/pool"
)

// SpanDeltaEncoder appends delta-coded read spans to a byte buffer.
type SpanDeltaEncoder struct {
	buf       *pool.ByteBuffer
	prevFirst int64
	count     int
}

// NewSpanDeltaEncoder creates an encoder appending to buf. The buffer stays owned by the caller.
func NewSpanDeltaEncoder(buf *pool.ByteBuffer) *SpanDeltaEncoder {
	return &SpanDeltaEncoder{buf: buf}
}

// Write encodes the span [first, last] of one read. last must not be smaller than first.
func (e *SpanDeltaEncoder) Write(first, last int) {
	delta := int64(first) - e.prevFirst
	e.prevFirst = int64(first)

	e.buf.Grow(2 * binary.MaxVarintLen64)
	e.appendUnsigned(uint64((delta << 1) ^ (delta >> 63))) //nolint:gosec
	e.appendUnsigned(uint64(last - first))                 //nolint:gosec
	e.count++
}

func (e *SpanDeltaEncoder) appendUnsigned(value uint64) {
	if value <= 0x7F {
		e.buf.B = append(e.buf.B, byte(value))
		return
	}
	e.buf.B = binary.AppendUvarint(e.buf.B, value)
}

// Count returns the number of spans written.
func (e *SpanDeltaEncoder) Count() int {
	return e.count
}

// SpanDeltaDecoder reads spans written by SpanDeltaEncoder.
type SpanDeltaDecoder struct {
	data      []byte
	offset    int
	prevFirst int64
}

// NewSpanDeltaDecoder creates a decoder over data.
func NewSpanDeltaDecoder(data []byte) *SpanDeltaDecoder {
	return &SpanDeltaDecoder{data: data}
}

// Next decodes the next span. It returns false when data ends early, a varint is malformed
// or the decoded first site is negative.
func (d *SpanDeltaDecoder) Next() (first, last int, ok bool) {
	zigzag, offset, ok := decodeVarint64(d.data, d.offset)
	if !ok {
		return 0, 0, false
	}
	length, offset, ok := decodeVarint64(d.data, offset)
	if !ok {
		return 0, 0, false
	}

	f := d.prevFirst + decodeZigZag64(zigzag)
	if f < 0 || length > uint64(maxSpan) {
		return 0, 0, false
	}
	d.prevFirst = f
	d.offset = offset

	return int(f), int(f) + int(length), true
}

// Offset returns the number of bytes consumed so far.
func (d *SpanDeltaDecoder) Offset() int {
	return d.offset
}

const maxSpan = 1<<31 - 1

// decodeVarint64 decodes a uint64 varint from data starting at offset, with a fast path for
// single-byte values.
func decodeVarint64(data []byte, offset int) (uint64, int, bool) {
	if offset >= len(data) {
		return 0, offset, false
	}
	if b := data[offset]; b < 0x80 {
		return uint64(b), offset + 1, true
	}

	value, n := binary.Uvarint(data[offset:])
	if n <= 0 {
		return 0, offset, false
	}

	return value, offset + n, true
}

func decodeZigZag64(value uint64) int64 {
	return int64((value >> 1) ^ -(value & 1)) //nolint:gosec
}
