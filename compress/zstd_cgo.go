//go:build gozstd && cgo

package compress

import (
	"github.com/valyala/gozstd"
)

const gozstdLevel = 3

func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, gozstdLevel), nil
}

func (ZstdCodec) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return checkSize("zstd", nil, size)
	}

	out, err := gozstd.Decompress(make([]byte, 0, size), data)
	if err != nil {
		return nil, err
	}

	return checkSize("zstd", out, size)
}
