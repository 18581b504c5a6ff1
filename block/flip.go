package block

import (
	"fmt"
	"sync/atomic"

	"github.com/arloliu/haplo/errs"
)

// FlipSite inverts every zero and one observed at site and records the site as flipped.
//
// Flipping twice restores the stored symbols: IsFlipped keeps reporting true while IsInverted
// goes back to false. The zero and one counts of the site are swapped. Distinct sites may be
// flipped concurrently.
func (b *Block) FlipSite(site int) error {
	if site < 0 || site >= len(b.sites) {
		return fmt.Errorf("site %d of %d: %w", site, len(b.sites), errs.ErrSiteOutOfRange)
	}
	b.flipSite(site)

	return nil
}

func (b *Block) flipSite(site int) {
	info := &b.sites[site]
	for row := info.StartRow; row <= info.EndRow; row++ {
		read := &b.reads[row]
		if read.Covers(site) {
			b.store.Invert(read.offsetOf(site))
		}
	}
	info.Zeros, info.Ones = info.Ones, info.Zeros

	mask := uint64(1) << uint(site&63)
	atomic.OrUint64(&b.flipped[site>>6], mask)
	for word := &b.inverted[site>>6]; ; {
		old := atomic.LoadUint64(word)
		if atomic.CompareAndSwapUint64(word, old, old^mask) {
			break
		}
	}
}

// IsFlipped reports whether site has been flipped at least once.
func (b *Block) IsFlipped(site int) bool {
	if site < 0 || site >= len(b.sites) {
		return false
	}

	return atomic.LoadUint64(&b.flipped[site>>6])>>uint(site&63)&1 == 1
}

// IsInverted reports whether the stored symbols of site are the complement of the input,
// that is whether it has been flipped an odd number of times. Haplotypes and MEC scores are
// expressed in input orientation.
func (b *Block) IsInverted(site int) bool {
	if site < 0 || site >= len(b.sites) {
		return false
	}

	return atomic.LoadUint64(&b.inverted[site>>6])>>uint(site&63)&1 == 1
}

// NumFlipped returns the number of sites flipped at least once.
func (b *Block) NumFlipped() int {
	n := 0
	for site := range b.sites {
		if b.IsFlipped(site) {
			n++
		}
	}

	return n
}
