// Package block implements the haplotype block engine.
//
// A Block is built once from a complete set of reads. Building ingests every read into a
// 2-bit packed genotype store, then classifies every site in parallel:
//
//   - monotone sites were observed with a single allele and are trivially phased;
//   - non-monotone sites are intrinsically heterozygous (IH) unless their minority allele
//     support is small compared to the informative reads covering them (NIH);
//   - sites that no read straddles are splittable and become sub-block boundaries.
//
// An external optimizer solves each sub-block independently. Its local haplotypes are
// stitched into the block's global haplotype pair with MergeSubblock, which reconciles
// the arbitrary local phase of every sub-block with the running global phase. MECScore
// evaluates the resulting pair against all reads.
//
// # Basic Usage
//
//	blk, err := block.ParseFile(ctx, "reads.txt", block.WithParallelism(8))
//	if err != nil {
//	    return err
//	}
//
//	for i := 0; i+1 < blk.SubblockCount(); i++ {
//	    start, end, _ := blk.SubblockRange(i)
//	    one, two := solve(blk, start, end) // external optimizer
//	    if err := blk.MergeSubblock(block.Solution{Idx: i, One: one, Two: two}); err != nil {
//	        return err
//	    }
//	}
//	score := blk.MECScore()
//
// # Thread Safety
//
// Building is sequential apart from the classification pass. A built Block may be read
// from many goroutines. MergeSubblock calls for sub-blocks with disjoint column ranges may
// run concurrently; consecutive sub-blocks share their boundary column and must be merged
// in order (MergeAll does this). FlipSite must not run concurrently with readers of the
// same site.
package block
