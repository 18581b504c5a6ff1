// Package compress provides the payload codecs of block snapshots.
//
// A snapshot payload is mostly packed genotype words: long runs of identical 2-bit
// symbols from monotone sites interleaved with noisier heterozygous columns. All codecs
// share one contract, selected by format.CompressionType:
//
//	codec, err := compress.Get(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//	...
//	payload, err = codec.Decompress(packed, header.PayloadLen)
//
// Available codecs:
//   - None: returns the input unchanged
//   - Zstd: best ratio, the default for archived snapshots (pure Go by default,
//     valyala/gozstd when built with the gozstd tag and cgo)
//   - S2: fast Snappy-compatible compression from klauspost/compress
//   - LZ4: fastest decompression, block format from pierrec/lz4
//
// Every codec is safe for concurrent use.
package compress
