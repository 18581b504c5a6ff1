package block

// ReadInfo describes one ingested read (a row of the genotype matrix).
type ReadInfo struct {
	Row    int // row index, the read's position in the input
	First  int // first covered site
	Last   int // last covered site, inclusive
	Offset int // offset of the read's first symbol in the packed store
}

// Length returns the number of sites the read spans.
func (r ReadInfo) Length() int {
	return r.Last - r.First + 1
}

// Covers reports whether site lies within the read's span.
func (r ReadInfo) Covers(site int) bool {
	return site >= r.First && site <= r.Last
}

// Straddles reports whether the read starts before site and ends after it,
// i.e. cutting the block at site would split the read.
func (r ReadInfo) Straddles(site int) bool {
	return r.First < site && r.Last > site
}

func (r ReadInfo) offsetOf(site int) int {
	return r.Offset + site - r.First
}
