package block

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/haplo/haplotype"
)

// scenarioInput is three reads over four sites.
const scenarioInput = `0 3 0011
0 2 001
1 3 110
`

// stitchInput has boundaries at sites 0, 2, 4 and 5.
const stitchInput = `0 2 010
0 2 101
2 4 011
2 4 100
4 5 10
`

func mustParse(t *testing.T, input string, opts ...Option) *Block {
	t.Helper()

	blk, err := Parse(context.Background(), strings.NewReader(input), opts...)
	require.NoError(t, err)

	return blk
}

func bits(t *testing.T, s string) *haplotype.Vector {
	t.Helper()

	v, ok := haplotype.FromString(s)
	require.True(t, ok, "bad bit string %q", s)

	return v
}

func totalReadLength(blk *Block) uint64 {
	var n uint64
	for row := range blk.NumReads() {
		r, _ := blk.Read(row)
		n += uint64(r.Length())
	}

	return n
}
