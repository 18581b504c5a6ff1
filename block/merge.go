package block

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/haplotype"
)

// SolvedSubblock is a sub-block phased by an optimizer.
//
// HaploOne and HaploTwo hold one bit per non-monotone site of the sub-block's range, in
// ascending site order.
type SolvedSubblock interface {
	Index() int
	BaseRow() int
	HaploOne() haplotype.Bits
	HaploTwo() haplotype.Bits
}

// Solution is a plain SolvedSubblock.
type Solution struct {
	Idx  int
	Base int
	One  haplotype.Bits
	Two  haplotype.Bits
}

var _ SolvedSubblock = Solution{}

func (s Solution) Index() int               { return s.Idx }
func (s Solution) BaseRow() int             { return s.Base }
func (s Solution) HaploOne() haplotype.Bits { return s.One }
func (s Solution) HaploTwo() haplotype.Bits { return s.Two }

// MergeSubblock writes the local solution of a sub-block into the global haplotype pair over
// [SubblockBoundary(i), SubblockBoundary(i+1)].
//
// Local bits are read in stored orientation, as an optimizer sees them through ValueAt, and
// written back in input orientation. Monotone sites take their observed allele. Non-monotone
// sites take the next local bit, inverted when the site is inverted or when the whole
// sub-block is out of phase with the value already assigned to its first site.
//
// Sub-blocks whose ranges do not share a site may be merged concurrently. Adjacent sub-blocks
// share their boundary site and must be merged in index order, see MergeAll.
//
// Returns:
//   - error: ErrSubblockOutOfRange for a bad index, ErrHaplotypeLength if the local vectors
//     differ in length or hold fewer bits than the range has non-monotone sites
func (b *Block) MergeSubblock(sub SolvedSubblock) error {
	start, end, err := b.SubblockRange(sub.Index())
	if err != nil {
		return err
	}

	one, two := sub.HaploOne(), sub.HaploTwo()
	if one == nil || two == nil || one.Len() != two.Len() {
		return fmt.Errorf("sub-block %d: local copies differ in length: %w", sub.Index(), errs.ErrHaplotypeLength)
	}
	need := 0
	for site := start; site <= end; site++ {
		if !b.sites[site].IsMonotone() {
			need++
		}
	}
	if one.Len() < need {
		return fmt.Errorf("sub-block %d: %d local bits for %d sites: %w",
			sub.Index(), one.Len(), need, errs.ErrHaplotypeLength)
	}

	if sub.Index() == 0 {
		b.lastAligned.Store(int64(sub.BaseRow() - 2))
	}

	flipAll := false
	if need > 0 && !b.sites[start].IsMonotone() {
		first := one.Get(0)
		if b.IsInverted(start) {
			first ^= 1
		}
		flipAll = b.haplo.One.Get(start) != first
	}

	local := 0
	for site := start; site <= end; site++ {
		if b.sites[site].IsMonotone() {
			v := uint8(b.monotoneValue(site))
			b.haplo.Set(site, v, v)
			continue
		}
		v1, v2 := one.Get(local), two.Get(local)
		if flipAll != b.IsInverted(site) {
			v1, v2 = v1^1, v2^1
		}
		b.haplo.Set(site, v1, v2)
		local++
	}

	b.cfg.metrics.SubblockMerged()
	b.cfg.logger.Debug("merged sub-block",
		"index", sub.Index(), "start", start, "end", end, "sites", need, "flip_all", flipAll)

	return nil
}

// MergeAll merges subs in ascending Index order, so each sub-block's phase decision reads
// the result of its predecessor at their shared boundary.
func (b *Block) MergeAll(subs []SolvedSubblock) error {
	ordered := slices.Clone(subs)
	slices.SortStableFunc(ordered, func(x, y SolvedSubblock) int {
		return cmp.Compare(x.Index(), y.Index())
	})

	for _, sub := range ordered {
		if err := b.MergeSubblock(sub); err != nil {
			return err
		}
	}

	return nil
}

// SetHaplotypes installs a hand-assigned pair. Both copies must have NumSites bits.
func (b *Block) SetHaplotypes(one, two haplotype.Bits) error {
	if one.Len() != len(b.sites) || two.Len() != len(b.sites) {
		return fmt.Errorf("copies of %d and %d bits for %d sites: %w",
			one.Len(), two.Len(), len(b.sites), errs.ErrHaplotypeLength)
	}
	for site := range b.sites {
		b.haplo.Set(site, one.Get(site), two.Get(site))
	}

	return nil
}
