package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("ingest: %w", &ParseError{Line: 3, Text: "0 1 0x", Column: 5, Err: ErrInvalidSymbol})

	require.ErrorIs(t, err, ErrInvalidSymbol)
	require.NotErrorIs(t, err, ErrMalformedRecord)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, 3, perr.Line)
	require.Contains(t, perr.Error(), "line 3, column 5")
}

func TestParseErrorWithoutColumn(t *testing.T) {
	err := &ParseError{Line: 7, Text: "1 x", Column: -1, Err: ErrMalformedRecord}
	require.Equal(t, `line 7: malformed read record: "1 x"`, err.Error())
}
