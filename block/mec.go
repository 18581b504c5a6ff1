package block

import (
	"fmt"

	"github.com/exascience/pargo/parallel"

	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/haplotype"
)

// MECScore returns the minimum-error-correction score of the current haplotype pair.
//
// For every read, the covered non-gap sites disagreeing with each copy are counted and the
// smaller count is added. Reads are scored in parallel.
func (b *Block) MECScore() uint64 {
	score := b.ScorePair(b.haplo.One, b.haplo.Two)
	b.cfg.metrics.MECScore(score)

	return score
}

// ScorePair returns the MEC score of an arbitrary pair without installing it.
// Sites beyond the length of a copy read as zero.
func (b *Block) ScorePair(one, two haplotype.Bits) uint64 {
	if len(b.reads) == 0 {
		return 0
	}

	total := parallel.RangeReduce(0, len(b.reads), 0, func(low, high int) interface{} {
		var sum uint64
		for row := low; row < high; row++ {
			sum += b.readMEC(row, one, two)
		}

		return sum
	}, func(x, y interface{}) interface{} {
		return x.(uint64) + y.(uint64)
	})

	return total.(uint64)
}

// ReadMEC returns the contribution of the read at row to the current MEC score.
func (b *Block) ReadMEC(row int) (uint64, error) {
	if row < 0 || row >= len(b.reads) {
		return 0, fmt.Errorf("row %d of %d: %w", row, len(b.reads), errs.ErrReadOutOfRange)
	}

	return b.readMEC(row, b.haplo.One, b.haplo.Two), nil
}

func (b *Block) readMEC(row int, one, two haplotype.Bits) uint64 {
	read := &b.reads[row]

	var c1, c2 uint64
	for site := read.First; site <= read.Last; site++ {
		sym := b.store.Get(read.offsetOf(site))
		if !sym.IsAllele() {
			continue
		}
		v := uint8(sym)
		if b.IsInverted(site) {
			v ^= 1
		}
		if one.Get(site) != v {
			c1++
		}
		if two.Get(site) != v {
			c2++
		}
	}

	return min(c1, c2)
}
