package section

import (
	"github.com/arloliu/haplo/endian"
	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/format"
)

// Flag is the first four bytes of a snapshot header.
type Flag struct {
	Options     uint16
	Version     uint8
	Compression uint8
}

// NewFlag returns a little-endian version 1 flag with the given compression.
func NewFlag(compression format.CompressionType) Flag {
	return Flag{
		Options:     MagicSnapshotV1,
		Version:     VersionV1,
		Compression: uint8(compression),
	}
}

// IsBigEndian reports whether the header and payload are big-endian.
func (f Flag) IsBigEndian() bool {
	return f.Options&EndiannessMask != 0
}

// WithBigEndian selects big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// WithLittleEndian selects little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// SpanEncoding returns how the read spans of the payload are stored.
func (f Flag) SpanEncoding() format.SpanEncoding {
	if f.Options&SpanDeltaMask != 0 {
		return format.SpanDelta
	}

	return format.SpanRaw
}

// WithSpanEncoding records how the read spans are stored.
func (f *Flag) WithSpanEncoding(e format.SpanEncoding) {
	if e == format.SpanDelta {
		f.Options |= SpanDeltaMask
	} else {
		f.Options &^= SpanDeltaMask
	}
}

// Engine returns the byte order engine selected by the flag.
func (f Flag) Engine() endian.Engine {
	if f.IsBigEndian() {
		return endian.Big()
	}

	return endian.Little()
}

// CompressionType returns the payload compression.
func (f Flag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// Validate checks the magic number, version, reserved bits and compression type.
func (f Flag) Validate() error {
	if f.Options&MagicNumberMask != MagicSnapshotV1 {
		return errs.ErrInvalidMagicNumber
	}
	if f.Version != VersionV1 || f.Options&ReservedMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}
	switch f.CompressionType() {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return nil
	default:
		return errs.ErrInvalidHeaderFlags
	}
}
