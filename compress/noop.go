package compress

// NoOpCodec stores payloads uncompressed.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// Compress returns data itself.
func (NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself after checking its length.
func (NoOpCodec) Decompress(data []byte, size int) ([]byte, error) {
	return checkSize("none", data, size)
}
