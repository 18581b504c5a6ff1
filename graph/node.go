package graph

import "sync/atomic"

// Node is one site of a sub-block as seen by the optimizer.
type Node struct {
	position  int
	weight    atomic.Uint64
	worstCase atomic.Uint64
}

// Position returns the node's position in the haplotype.
func (n *Node) Position() int {
	return n.position
}

// Weight returns the accumulated weight.
func (n *Node) Weight() uint64 {
	return n.weight.Load()
}

// WorstCaseValue returns the accumulated worst-case value.
func (n *Node) WorstCaseValue() uint64 {
	return n.worstCase.Load()
}

// raiseMax stores v into a if it is larger than the current value.
func raiseMax(a *atomic.Uint64, v uint64) {
	for {
		cur := a.Load()
		if v <= cur || a.CompareAndSwap(cur, v) {
			return
		}
	}
}
