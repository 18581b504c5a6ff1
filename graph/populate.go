package graph

import (
	"context"
	"sync"

	"github.com/exascience/pargo/parallel"

	"github.com/arloliu/haplo/block"
)

// Populate resizes c to the non-monotone sites of [start, end] and fills it from the reads
// of blk.
//
// For every read and every pair of nodes the read observes with a base call, the pair's link
// counts one agreement or one disagreement and both nodes gain one unit of weight. Reads are
// processed in parallel. Worst-case values are left to the optimizer.
//
// Returns:
//   - []int: the site of every node, indexed by node position
//   - error: ctx.Err() if ctx was cancelled, or the first container error
func Populate(ctx context.Context, c Container, blk *block.Block, start, end int) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sites := blk.NonMonotoneIn(start, end)
	c.Resize(len(sites))
	if len(sites) < 2 {
		return sites, nil
	}

	nodeOf := make(map[int]int, len(sites))
	for i, site := range sites {
		nodeOf[site] = i
	}
	lo, hi := sites[0], sites[len(sites)-1]

	var (
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	parallel.Range(0, blk.NumReads(), 0, func(low, high int) {
		nodes := make([]int, 0, 16)
		values := make([]uint8, 0, 16)
		for row := low; row < high; row++ {
			if ctx.Err() != nil {
				return
			}
			read, err := blk.Read(row)
			if err != nil {
				fail(err)
				return
			}
			if read.Last < lo || read.First > hi {
				continue
			}

			nodes, values = nodes[:0], values[:0]
			for site := max(read.First, lo); site <= min(read.Last, hi); site++ {
				node, ok := nodeOf[site]
				if !ok {
					continue
				}
				if sym := blk.ValueAt(row, site); sym.IsAllele() {
					nodes = append(nodes, node)
					values = append(values, uint8(sym))
				}
			}

			if err := addPairs(c, nodes, values); err != nil {
				fail(err)
				return
			}
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return sites, firstErr
}

func addPairs(c Container, nodes []int, values []uint8) error {
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			link, err := c.Link(nodes[i], nodes[j])
			if err != nil {
				return err
			}
			if values[i] == values[j] {
				link.AddSame(1)
			} else {
				link.AddOpposite(1)
			}
			if err := c.AddWeight(nodes[i], 1); err != nil {
				return err
			}
			if err := c.AddWeight(nodes[j], 1); err != nil {
				return err
			}
		}
	}

	return nil
}
