// Package errs defines the sentinel errors returned by haplo packages.
//
// Callers match them with errors.Is; parse failures are reported as *ParseError,
// which wraps one of the sentinels and carries the offending line.
package errs

import (
	"errors"
	"fmt"
)

// Input errors.
var (
	ErrIO              = errors.New("cannot read input")
	ErrEmptyInput      = errors.New("input contains no reads")
	ErrInvalidSymbol   = errors.New("invalid genotype symbol")
	ErrMalformedRecord = errors.New("malformed read record")
	ErrUncoveredSite   = errors.New("site has no observed symbol")
	ErrCorruptSite     = errors.New("site metadata references an unknown read")
	ErrBlockFinished   = errors.New("builder already produced a block")
	ErrInvalidConfig   = errors.New("invalid run configuration")
)

// Range errors.
var (
	ErrReadOutOfRange     = errors.New("read index out of range")
	ErrSiteOutOfRange     = errors.New("site index out of range")
	ErrSubblockOutOfRange = errors.New("sub-block index out of range")
	ErrNodeOutOfRange     = errors.New("node index out of range")
	ErrLinkOrder          = errors.New("link indices must satisfy a < b < nodes")
	ErrHaplotypeLength    = errors.New("haplotype length mismatch")
)

// Snapshot errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	ErrChecksumMismatch   = errors.New("payload checksum mismatch")
	ErrTruncatedPayload   = errors.New("payload is truncated")
)

// ParseError reports a record that could not be ingested.
type ParseError struct {
	Line   int    // 1-based line number
	Text   string // the offending line
	Column int    // 0-based position of the offending character, -1 when not applicable
	Err    error  // ErrInvalidSymbol, ErrMalformedRecord or ErrUncoveredSite
}

func (e *ParseError) Error() string {
	if e.Column >= 0 {
		return fmt.Sprintf("line %d, column %d: %v: %q", e.Line, e.Column, e.Err, e.Text)
	}

	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
