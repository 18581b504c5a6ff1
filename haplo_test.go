package haplo

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/haplo/block"
	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/format"
	"github.com/arloliu/haplo/haplotype"
	"github.com/arloliu/haplo/snapshot"
)

const reads = `0 2 010
0 2 101
2 4 011
2 4 100
4 5 10
`

func TestParseAndSolve(t *testing.T) {
	ctx := context.Background()
	blk, err := Parse(ctx, strings.NewReader(reads), block.WithParallelism(2))
	require.NoError(t, err)
	require.Equal(t, 5, blk.NumReads())
	require.Equal(t, 6, blk.NumSites())

	one, _ := haplotype.FromString("010110")
	two, _ := haplotype.FromString("101001")
	require.NoError(t, blk.SetHaplotypes(one, two))
	require.Equal(t, blk.ScorePair(one, two), blk.MECScore())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.txt")
	require.NoError(t, os.WriteFile(path, []byte(reads), 0o600))

	blk, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 5, blk.NumReads())

	_, err = LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestSaveRestore(t *testing.T) {
	ctx := context.Background()
	blk, err := Parse(ctx, strings.NewReader(reads))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, blk, snapshot.WithCompression(format.CompressionS2)))

	got, err := Restore(ctx, &buf)
	require.NoError(t, err)
	require.Equal(t, blk.NumReads(), got.NumReads())
	require.Equal(t, blk.Splittable(), got.Splittable())
}
