package section

const (
	EndiannessMask  = 0x0002 // bit 1, set for big-endian
	SpanDeltaMask   = 0x0004 // bit 2, set when read spans are delta coded
	ReservedMask    = 0x0009 // bits 0 and 3, must be zero
	MagicNumberMask = 0xFFF0

	MagicSnapshotV1 = 0x4A70 // magic number of snapshot format version 1
	VersionV1       = 1

	HeaderSize = 32
)
