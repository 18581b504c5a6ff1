package haplotype

// Pair is the two haplotype copies of a diploid solution, one bit per site.
type Pair struct {
	One *Vector
	Two *Vector
}

// NewPair allocates a zeroed pair for n sites.
func NewPair(n int) Pair {
	return Pair{One: NewVector(n), Two: NewVector(n)}
}

// Len returns the number of sites covered by the pair.
func (p Pair) Len() int {
	if p.One == nil {
		return 0
	}

	return p.One.Len()
}

// Set writes both copies at site i.
func (p Pair) Set(i int, one, two uint8) {
	p.One.Set(i, one)
	p.Two.Set(i, two)
}

// Swapped returns the pair with its copies exchanged. The vectors are shared, not copied.
func (p Pair) Swapped() Pair {
	return Pair{One: p.Two, Two: p.One}
}

// Inverted returns a new pair with both copies bit-inverted.
func (p Pair) Inverted() Pair {
	return Pair{One: p.One.Invert(), Two: p.Two.Invert()}
}
