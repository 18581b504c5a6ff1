package section

import (
	"encoding/binary"

	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/format"
)

// Header is the fixed-size header of a block snapshot.
type Header struct {
	Flag        Flag   // byte offset 0-3
	ReadCount   uint32 // byte offset 4-7
	SiteCount   uint32 // byte offset 8-11
	SymbolCount uint64 // byte offset 12-19
	PayloadLen  uint32 // byte offset 20-23, before compression
	Checksum    uint64 // byte offset 24-31, xxHash64 of the uncompressed payload
}

// NewHeader creates a little-endian header for a payload compressed with compression.
// Counts and checksum are filled in by the encoder.
func NewHeader(compression format.CompressionType) *Header {
	return &Header{Flag: NewFlag(compression)}
}

// Parse decodes the header from exactly HeaderSize bytes.
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber or ErrInvalidHeaderFlags
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// the options word is little-endian regardless of the payload byte order
	h.Flag.Options = binary.LittleEndian.Uint16(data[0:2])
	h.Flag.Version = data[2]
	h.Flag.Compression = data[3]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.Engine()
	h.ReadCount = engine.Uint32(data[4:8])
	h.SiteCount = engine.Uint32(data[8:12])
	h.SymbolCount = engine.Uint64(data[12:20])
	h.PayloadLen = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint64(data[24:32])

	return nil
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Flag.Engine()

	binary.LittleEndian.PutUint16(b[0:2], h.Flag.Options)
	b[2] = h.Flag.Version
	b[3] = h.Flag.Compression
	engine.PutUint32(b[4:8], h.ReadCount)
	engine.PutUint32(b[8:12], h.SiteCount)
	engine.PutUint64(b[12:20], h.SymbolCount)
	engine.PutUint32(b[20:24], h.PayloadLen)
	engine.PutUint64(b[24:32], h.Checksum)

	return b
}

// ParseHeader decodes the header at the start of data, which may be longer than HeaderSize.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	var h Header
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
