package block

import (
	"fmt"

	"github.com/arloliu/haplo/errs"
)

// SubblockCount returns the number of usable entries in the splittable-sites list.
//
// Sub-block i spans [SubblockBoundary(i), SubblockBoundary(i+1)], so the mergeable indices
// are 0 through SubblockCount()-2.
func (b *Block) SubblockCount() int {
	return len(b.splittable) - b.firstUsable
}

// SubblockBoundary returns the i-th usable splittable site.
//
// Returns:
//   - int: the site index
//   - error: ErrSubblockOutOfRange if i is not in [0, SubblockCount())
func (b *Block) SubblockBoundary(i int) (int, error) {
	if i < 0 || i >= b.SubblockCount() {
		return 0, fmt.Errorf("boundary %d of %d: %w", i, b.SubblockCount(), errs.ErrSubblockOutOfRange)
	}

	return b.splittable[b.firstUsable+i], nil
}

// SubblockRange returns the inclusive site range [start, end] solved by sub-block i.
func (b *Block) SubblockRange(i int) (start, end int, err error) {
	if i < 0 || i+1 >= b.SubblockCount() {
		return 0, 0, fmt.Errorf("sub-block %d of %d: %w", i, max(b.SubblockCount()-1, 0), errs.ErrSubblockOutOfRange)
	}

	return b.splittable[b.firstUsable+i], b.splittable[b.firstUsable+i+1], nil
}

// FirstUsable returns the number of leading monotone entries skipped in the splittable list.
func (b *Block) FirstUsable() int {
	return b.firstUsable
}

// Splittable returns a copy of the full sorted splittable-sites list, including any skipped
// leading entries.
func (b *Block) Splittable() []int {
	return append([]int(nil), b.splittable...)
}

// NonMonotoneIn returns the non-monotone sites of [start, end] in ascending order.
// These are the sites an optimizer assigns bits to, one per local haplotype position.
func (b *Block) NonMonotoneIn(start, end int) []int {
	start = max(start, 0)
	end = min(end, len(b.sites)-1)

	var out []int
	for site := start; site <= end; site++ {
		if !b.sites[site].IsMonotone() {
			out = append(out, site)
		}
	}

	return out
}
