// Package haplo is the classification and merge engine of a diploid haplotype assembler.
//
// A block holds the sequencing reads of one genomic region in a packed 2-bit store. Building
// a block classifies every site (SNP position) as monotone, intrinsically heterozygous or
// not intrinsically heterozygous, and lists the splittable sites that cut the block into
// independent sub-blocks. An external optimizer solves each sub-block; the block stitches
// the local solutions into one global haplotype pair and scores it with the MEC
// (minimum error correction) criterion.
//
// # Basic Usage
//
//	blk, _ := haplo.LoadFile(ctx, "reads.txt", block.WithParallelism(8))
//
//	for i := range blk.SubblockCount() - 1 {
//	    start, end, _ := blk.SubblockRange(i)
//	    one, two := solve(blk, start, end) // external optimizer
//	    _ = blk.MergeSubblock(block.Solution{Idx: i, Base: start, One: one, Two: two})
//	}
//
//	fmt.Println(blk.MECScore())
//
// # Package Structure
//
// This package provides thin wrappers around the block and snapshot packages for the
// common cases. Use those packages directly for fine-grained control.
package haplo

import (
	"context"
	"io"

	"github.com/arloliu/haplo/block"
	"github.com/arloliu/haplo/snapshot"
)

// LoadFile reads a text matrix from path and builds a classified block.
//
// Each line of the file holds one read: "<first> <last> <symbols>", where symbols is a
// string over {0, 1, -} of length last-first+1.
//
// Returns an error wrapping errs.ErrIO if the file cannot be read, a *errs.ParseError for
// a malformed record, or a classification error.
func LoadFile(ctx context.Context, path string, opts ...block.Option) (*block.Block, error) {
	return block.ParseFile(ctx, path, opts...)
}

// Parse builds a classified block from a text matrix read from r.
func Parse(ctx context.Context, r io.Reader, opts ...block.Option) (*block.Block, error) {
	return block.Parse(ctx, r, opts...)
}

// Save writes blk to w as a snapshot compressed with Zstd unless opts say otherwise.
func Save(w io.Writer, blk *block.Block, opts ...snapshot.Option) error {
	return snapshot.Write(w, blk, opts...)
}

// Restore reads a snapshot written by Save and rebuilds the classified block.
//
// Flip history is not part of a snapshot: the restored block classifies the stored
// symbols as they are, with the build options given here.
func Restore(ctx context.Context, r io.Reader, opts ...block.Option) (*block.Block, error) {
	return snapshot.Read(ctx, r, opts...)
}
