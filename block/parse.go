package block

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/haplo/errs"
)

const maxLineSize = 64 * 1024 * 1024

// Parse reads newline-delimited records from r and builds a block.
//
// Returns:
//   - *Block: the classified block
//   - error: *errs.ParseError for the first bad record, an error wrapping ErrIO when r fails,
//     or any error returned by Builder.Build
func Parse(ctx context.Context, r io.Reader, opts ...Option) (*Block, error) {
	b, err := NewBuilder(opts...)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err := b.AddRecord(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return b.Build(ctx)
}

// ParseFile opens path and builds a block from its records.
func ParseFile(ctx context.Context, path string, opts ...Option) (*Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	defer f.Close()

	return Parse(ctx, f, opts...)
}
