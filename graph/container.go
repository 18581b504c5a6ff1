// Package graph provides the pairwise graph consumed by haplotype optimizers.
//
// Nodes are the non-monotone sites of a sub-block and every unordered pair of nodes owns one
// Link. Two backends share the Container contract: CPUContainer stores nodes as an array of
// structs, DeviceContainer as a struct of arrays laid out for upload to an accelerator.
// Accumulators are atomic, so any number of goroutines may add to them concurrently.
package graph

import (
	"fmt"

	"github.com/arloliu/haplo/errs"
)

// Container is the node and link store shared by both backends.
type Container interface {
	// Resize reallocates the container for n nodes. Positions are reset to the slot index
	// and every accumulator to zero.
	Resize(n int)
	NumNodes() int
	NumLinks() int

	Position(i int) (int, error)

	AddWeight(i int, d uint64) error
	Weight(i int) (uint64, error)

	AddWorstCaseValue(i int, d uint64) error
	// RaiseWorstCaseValue stores v if it exceeds the current worst-case value.
	RaiseWorstCaseValue(i int, v uint64) error
	WorstCaseValue(i int) (uint64, error)

	// Link returns the link of nodes a and b, which must satisfy 0 <= a < b < NumNodes().
	Link(a, b int) (*Link, error)
}

func checkNode(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("node %d of %d: %w", i, n, errs.ErrNodeOutOfRange)
	}

	return nil
}

func checkLink(a, b, n int) error {
	if err := checkNode(a, n); err != nil {
		return err
	}
	if err := checkNode(b, n); err != nil {
		return err
	}
	if a >= b {
		return fmt.Errorf("link (%d, %d): %w", a, b, errs.ErrLinkOrder)
	}

	return nil
}
