package format

type (
	Symbol          uint8
	SiteType        uint8
	CompressionType uint8
	SpanEncoding    uint8
)

const (
	SymbolZero       Symbol = 0x0 // SymbolZero is the reference allele observation.
	SymbolOne        Symbol = 0x1 // SymbolOne is the alternate allele observation.
	SymbolGap        Symbol = 0x2 // SymbolGap marks a covered cell without a base call.
	SymbolOutOfRange Symbol = 0x3 // SymbolOutOfRange is returned for cells a read does not cover.

	SiteIH  SiteType = 0x0 // SiteIH represents an intrinsically heterozygous site.
	SiteNIH SiteType = 0x1 // SiteNIH represents a site that is not intrinsically heterozygous.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	SpanRaw   SpanEncoding = 0x1 // SpanRaw stores read spans as fixed-width pairs.
	SpanDelta SpanEncoding = 0x2 // SpanDelta stores read spans as zigzag varint deltas.
)

// SymbolFromByte converts an input character into a symbol.
// The second result is false for characters outside {'0', '1', '-'}.
func SymbolFromByte(c byte) (Symbol, bool) {
	switch c {
	case '0':
		return SymbolZero, true
	case '1':
		return SymbolOne, true
	case '-':
		return SymbolGap, true
	default:
		return SymbolOutOfRange, false
	}
}

// IsAllele reports whether s is an observed zero or one.
func (s Symbol) IsAllele() bool {
	return s <= SymbolOne
}

// Byte returns the input character for s, '?' for the out-of-range sentinel.
func (s Symbol) Byte() byte {
	switch s {
	case SymbolZero:
		return '0'
	case SymbolOne:
		return '1'
	case SymbolGap:
		return '-'
	default:
		return '?'
	}
}

func (s Symbol) String() string {
	switch s {
	case SymbolZero:
		return "Zero"
	case SymbolOne:
		return "One"
	case SymbolGap:
		return "Gap"
	case SymbolOutOfRange:
		return "OutOfRange"
	default:
		return "Unknown"
	}
}

func (t SiteType) String() string {
	switch t {
	case SiteIH:
		return "IH"
	case SiteNIH:
		return "NIH"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression converts a lowercase name ("none", "zstd", "s2", "lz4") into a CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (e SpanEncoding) String() string {
	switch e {
	case SpanRaw:
		return "Raw"
	case SpanDelta:
		return "Delta"
	default:
		return "Unknown"
	}
}
