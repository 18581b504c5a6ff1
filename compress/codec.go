package compress

import (
	"fmt"

	"github.com/arloliu/haplo/format"
)

// Compressor compresses one snapshot payload.
//
// The returned slice is owned by the caller. The input is never modified, but the
// no-op codec returns it as is.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload compressed by the matching Compressor.
//
// size is the length of the original payload as recorded in the snapshot header. It sizes
// the output buffer and a result of any other length is reported as an error.
type Decompressor interface {
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NoOpCodec{},
	format.CompressionZstd: ZstdCodec{},
	format.CompressionS2:   S2Codec{},
	format.CompressionLZ4:  LZ4Codec{},
}

// Get returns the built-in codec for compressionType.
func Get(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

func checkSize(name string, out []byte, size int) ([]byte, error) {
	if len(out) != size {
		return nil, fmt.Errorf("%s: decompressed %d bytes, expected %d", name, len(out), size)
	}

	return out, nil
}
