package block

import (
	"fmt"
	"sync/atomic"

	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/format"
	"github.com/arloliu/haplo/genotype"
	"github.com/arloliu/haplo/haplotype"
)

// Block is a classified set of reads over a shared range of sites, together with the
// global haplotype pair being assembled for it.
type Block struct {
	cfg   *Config
	store *genotype.Store
	reads []ReadInfo
	sites []SiteInfo

	flipped     []uint64 // bitset of sites flipped at least once
	inverted    []uint64 // bitset of sites flipped an odd number of times
	splittable  []int
	firstUsable int
	lastAligned atomic.Int64

	haplo haplotype.Pair
}

// NumReads returns the number of reads (rows).
func (b *Block) NumReads() int {
	return len(b.reads)
}

// NumSites returns the number of sites (columns).
func (b *Block) NumSites() int {
	return len(b.sites)
}

// Store returns the packed genotype store. It must be treated as read-only.
func (b *Block) Store() *genotype.Store {
	return b.store
}

// Config returns the configuration the block was built with.
func (b *Block) Config() *Config {
	return b.cfg
}

// ValueAt returns the symbol of the read at row for site.
//
// Cells the read does not cover, and rows outside the block, yield format.SymbolOutOfRange.
// This is the hot accessor of the scoring loops and reports misses with the sentinel
// instead of an error.
func (b *Block) ValueAt(row, site int) format.Symbol {
	if row < 0 || row >= len(b.reads) {
		return format.SymbolOutOfRange
	}
	read := &b.reads[row]
	if !read.Covers(site) {
		return format.SymbolOutOfRange
	}

	return b.store.Get(read.offsetOf(site))
}

// Read returns the metadata of the read at row.
func (b *Block) Read(row int) (ReadInfo, error) {
	if row < 0 || row >= len(b.reads) {
		return ReadInfo{}, fmt.Errorf("row %d of %d: %w", row, len(b.reads), errs.ErrReadOutOfRange)
	}

	return b.reads[row], nil
}

// Site returns the metadata of site.
func (b *Block) Site(site int) (SiteInfo, error) {
	if site < 0 || site >= len(b.sites) {
		return SiteInfo{}, fmt.Errorf("site %d of %d: %w", site, len(b.sites), errs.ErrSiteOutOfRange)
	}

	return b.sites[site], nil
}

// IsMonotone reports whether site was observed with a single allele.
// Sites outside the block report false.
func (b *Block) IsMonotone(site int) bool {
	return site >= 0 && site < len(b.sites) && b.sites[site].IsMonotone()
}

// IsIntrinsicallyHeterozygous reports whether site is classified IH.
// Sites outside the block report false.
func (b *Block) IsIntrinsicallyHeterozygous(site int) bool {
	return site >= 0 && site < len(b.sites) && b.sites[site].Type == format.SiteIH
}

// Haplotypes returns the global haplotype pair. Callers must not write to it directly;
// use MergeSubblock or SetHaplotypes.
func (b *Block) Haplotypes() haplotype.Pair {
	return b.haplo
}

// LastAligned returns the alignment anchor recorded when sub-block 0 was merged
// (its base row minus two), or -2 before that.
func (b *Block) LastAligned() int {
	return int(b.lastAligned.Load())
}

// seedMonotone writes the observed allele of every monotone site into both haplotypes.
func (b *Block) seedMonotone() {
	for site := range b.sites {
		if b.sites[site].IsMonotone() {
			v := uint8(b.monotoneValue(site))
			b.haplo.Set(site, v, v)
		}
	}
	b.lastAligned.Store(-2)
}

// monotoneValue returns the observed allele of a monotone site in input orientation.
func (b *Block) monotoneValue(site int) format.Symbol {
	v := b.ValueAt(b.sites[site].StartRow, site)
	if v.IsAllele() && b.IsInverted(site) {
		v ^= 1
	}

	return v
}
