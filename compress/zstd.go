package compress

// ZstdCodec compresses with Zstandard, the best ratio of the built-in codecs.
//
// The pure Go implementation from klauspost/compress is used unless the package is built
// with the gozstd tag and cgo, which selects valyala/gozstd.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}
