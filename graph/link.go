package graph

import "sync/atomic"

// Link holds the pairwise agreement counts of two sites.
//
// Same counts reads observing equal alleles at both sites, Opposite counts reads observing
// different alleles. Counters are updated with relaxed atomic adds and are meant to be read
// after the writers have joined.
type Link struct {
	same     atomic.Uint64
	opposite atomic.Uint64
}

// AddSame adds d to the same-allele count.
func (l *Link) AddSame(d uint64) {
	l.same.Add(d)
}

// AddOpposite adds d to the opposite-allele count.
func (l *Link) AddOpposite(d uint64) {
	l.opposite.Add(d)
}

// Same returns the same-allele count.
func (l *Link) Same() uint64 {
	return l.same.Load()
}

// Opposite returns the opposite-allele count.
func (l *Link) Opposite() uint64 {
	return l.opposite.Load()
}

// Total returns the number of reads informative for the pair.
func (l *Link) Total() uint64 {
	return l.Same() + l.Opposite()
}

func (l *Link) reset() {
	l.same.Store(0)
	l.opposite.Store(0)
}

// NumLinks returns the number of unordered pairs among n nodes.
func NumLinks(n int) int {
	if n < 2 {
		return 0
	}

	return n * (n - 1) / 2
}

// LinkIndex maps the pair a < b of an n-node container to its slot in the flattened upper
// triangle. The mapping is a bijection onto [0, NumLinks(n)). Arguments are not validated.
func LinkIndex(n, a, b int) int {
	return NumLinks(n) - (n-a)*(n-a-1)/2 + (b - a - 1)
}
