package graph

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/haplo/block"
)

const stitchInput = `0 2 010
0 2 101
2 4 011
2 4 100
4 5 10
`

func parseBlock(t *testing.T, input string) *block.Block {
	t.Helper()

	blk, err := block.Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	return blk
}

func linkCounts(t *testing.T, c Container, a, b int) (uint64, uint64) {
	t.Helper()

	link, err := c.Link(a, b)
	require.NoError(t, err)

	return link.Same(), link.Opposite()
}

func TestPopulate(t *testing.T) {
	blk := parseBlock(t, stitchInput)

	for name, newContainer := range backends() {
		t.Run(name, func(t *testing.T) {
			c := newContainer(0)

			sites, err := Populate(context.Background(), c, blk, 0, 2)
			require.NoError(t, err)
			require.Equal(t, []int{0, 1, 2}, sites)
			require.Equal(t, 3, c.NumNodes())

			same, opp := linkCounts(t, c, 0, 1)
			require.Equal(t, [2]uint64{0, 2}, [2]uint64{same, opp})
			same, opp = linkCounts(t, c, 0, 2)
			require.Equal(t, [2]uint64{2, 0}, [2]uint64{same, opp})
			same, opp = linkCounts(t, c, 1, 2)
			require.Equal(t, [2]uint64{0, 2}, [2]uint64{same, opp})

			for i := range 3 {
				w, err := c.Weight(i)
				require.NoError(t, err)
				require.Equal(t, uint64(4), w)
			}

			// repopulating resizes and resets
			sites, err = Populate(context.Background(), c, blk, 2, 5)
			require.NoError(t, err)
			require.Equal(t, []int{2, 3, 4}, sites)
			same, opp = linkCounts(t, c, 0, 1)
			require.Equal(t, [2]uint64{0, 2}, [2]uint64{same, opp})
			same, opp = linkCounts(t, c, 1, 2)
			require.Equal(t, [2]uint64{2, 0}, [2]uint64{same, opp})
		})
	}
}

func TestPopulateSmallRanges(t *testing.T) {
	blk := parseBlock(t, stitchInput)
	c := NewCPUContainer(4)

	sites, err := Populate(context.Background(), c, blk, 5, 5)
	require.NoError(t, err)
	require.Empty(t, sites)
	require.Equal(t, 0, c.NumNodes())

	sites, err = Populate(context.Background(), c, blk, 4, 5)
	require.NoError(t, err)
	require.Equal(t, []int{4}, sites)
	require.Equal(t, 0, c.NumLinks())
}

func TestPopulateCancelled(t *testing.T) {
	blk := parseBlock(t, stitchInput)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Populate(ctx, NewCPUContainer(0), blk, 0, 5)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteDOT(t *testing.T) {
	blk := parseBlock(t, stitchInput)
	c := NewCPUContainer(0)
	_, err := Populate(context.Background(), c, blk, 0, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, c, []string{"site0", "site1"}))

	out := buf.String()
	require.Contains(t, out, "graph G")
	require.NotContains(t, out, "digraph")
	require.Contains(t, out, "site0 w=4")
	require.Contains(t, out, "2 w=4", "unlabelled nodes fall back to their position")
	require.Contains(t, out, "0/2")
	require.Contains(t, out, "2/0")
	require.Contains(t, out, "bold")
}
