package snapshot

import (
	"fmt"

	"github.com/arloliu/haplo/compress"
	"github.com/arloliu/haplo/format"
	"github.com/arloliu/haplo/internal/options"
)

// Config holds the encoder settings.
type Config struct {
	compression format.CompressionType
	spans       format.SpanEncoding
	bigEndian   bool
}

// Option configures Encode.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{compression: format.CompressionZstd, spans: format.SpanDelta}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCompression selects the payload codec. Defaults to Zstd.
func WithCompression(t format.CompressionType) Option {
	return options.Named("compression", func(c *Config) error {
		if _, err := compress.Get(t); err != nil {
			return err
		}
		c.compression = t

		return nil
	})
}

// WithSpanEncoding selects how read spans are stored. Defaults to SpanDelta.
func WithSpanEncoding(e format.SpanEncoding) Option {
	return options.Named("span encoding", func(c *Config) error {
		switch e {
		case format.SpanRaw, format.SpanDelta:
			c.spans = e
			return nil
		default:
			return fmt.Errorf("unknown span encoding %d", e)
		}
	})
}

// WithBigEndian writes header fields and payload big-endian.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = true
	})
}

// WithLittleEndian writes header fields and payload little-endian, the default.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = false
	})
}
