package block

import (
	"math/rand/v2"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/format"
	"github.com/arloliu/haplo/haplotype"
)

func TestMECScenario(t *testing.T) {
	reg := prometheus.NewRegistry()
	blk := mustParse(t, scenarioInput, WithMetrics(reg))
	require.NoError(t, blk.SetHaplotypes(bits(t, "0011"), bits(t, "0111")))

	require.Equal(t, uint64(1), blk.MECScore())
	require.InDelta(t, 1, gatherValues(t, reg)["haplo_mec_score"], 0)

	for row, want := range []uint64{0, 0, 1} {
		got, err := blk.ReadMEC(row)
		require.NoError(t, err)
		require.Equal(t, want, got, "row %d", row)
	}
	_, err := blk.ReadMEC(3)
	require.ErrorIs(t, err, errs.ErrReadOutOfRange)
}

func TestMECIgnoresGaps(t *testing.T) {
	blk := mustParse(t, "0 2 0-1\n0 2 1-0\n1 1 1\n")
	require.NoError(t, blk.SetHaplotypes(bits(t, "000"), bits(t, "000")))

	// read 0 disagrees at site 2, read 1 at site 0, read 2 at site 1
	require.Equal(t, uint64(3), blk.MECScore())
}

func TestMECProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for range 30 {
		blk := mustParse(t, randomInput(rng, 3+rng.IntN(50), rng.IntN(80)))

		one, two := haplotype.NewVector(blk.NumSites()), haplotype.NewVector(blk.NumSites())
		for site := range blk.NumSites() {
			one.Set(site, uint8(rng.IntN(2)))
			two.Set(site, uint8(rng.IntN(2)))
		}
		require.NoError(t, blk.SetHaplotypes(one, two))

		score := blk.MECScore()
		require.LessOrEqual(t, score, totalReadLength(blk))

		pair := blk.Haplotypes()
		swapped := pair.Swapped()
		require.Equal(t, score, blk.ScorePair(swapped.One, swapped.Two))

		var sum uint64
		for row := range blk.NumReads() {
			v, err := blk.ReadMEC(row)
			require.NoError(t, err)
			sum += v
		}
		require.Equal(t, score, sum)
	}
}

func TestMECComplementaryPairInversion(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	blk := mustParse(t, randomInput(rng, 40, 60))

	one := haplotype.NewVector(blk.NumSites())
	for site := range blk.NumSites() {
		one.Set(site, uint8(rng.IntN(2)))
	}
	require.NoError(t, blk.SetHaplotypes(one, one.Invert()))

	// inverting a complementary pair only exchanges its copies
	inverted := blk.Haplotypes().Inverted()
	require.Equal(t, blk.MECScore(), blk.ScorePair(inverted.One, inverted.Two))
}

func randomSymbols(rng *rand.Rand, n int) []format.Symbol {
	out := make([]format.Symbol, n)
	for i := range out {
		out[i] = format.Symbol(rng.IntN(2))
	}

	return out
}

func BenchmarkMECScore(b *testing.B) {
	rng := rand.New(rand.NewPCG(9, 9))
	bld, err := NewBuilder()
	require.NoError(b, err)
	for range 1 << 12 {
		first := rng.IntN(1024)
		last := min(first+rng.IntN(64), 1023)
		require.NoError(b, bld.AddRead(first, last, randomSymbols(rng, last-first+1)))
	}
	for site := range 1024 {
		require.NoError(b, bld.AddRead(site, site, randomSymbols(rng, 1)))
	}
	built, err := bld.Build(b.Context())
	require.NoError(b, err)

	b.ResetTimer()
	for range b.N {
		_ = built.MECScore()
	}
}
