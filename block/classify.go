package block

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/format"
)

// laneResult is what one classifier lane hands back at the join.
type laneResult struct {
	splittable []int
	nih        int
	monotone   int
}

// classify runs the site classifier over all sites.
//
// Lane k owns sites k, k+L, k+2L, ... where L = min(parallelism, sites). Each lane keeps its own
// splittable buffer; the buffers are concatenated and sorted once every lane has finished.
func (b *Block) classify(ctx context.Context) error {
	numSites := len(b.sites)
	lanes := min(b.cfg.parallelism, numSites)
	results := make([]laneResult, lanes)

	g, gctx := errgroup.WithContext(ctx)
	for lane := range lanes {
		g.Go(func() error {
			res := &results[lane]
			for site := lane; site < numSites; site += lanes {
				if err := gctx.Err(); err != nil {
					return err
				}
				splittable, err := b.classifySite(site)
				if err != nil {
					return err
				}
				switch {
				case b.sites[site].IsMonotone():
					res.monotone++
				case b.sites[site].Type == format.SiteNIH:
					res.nih++
				}
				if splittable && !b.sites[site].IsMonotone() {
					res.splittable = append(res.splittable, site)
				}
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var total, nih, monotone int
	for i := range results {
		total += len(results[i].splittable)
		nih += results[i].nih
		monotone += results[i].monotone
	}
	splittable := make([]int, 0, total+1)
	for i := range results {
		splittable = append(splittable, results[i].splittable...)
	}
	b.finalizeSplittable(splittable)

	b.cfg.metrics.SitesClassified("monotone", monotone)
	b.cfg.metrics.SitesClassified("nih", nih)
	b.cfg.metrics.SitesClassified("ih", numSites-monotone-nih)
	b.cfg.metrics.SplittableSites(len(b.splittable) - b.firstUsable)
	b.cfg.logger.Debug("classified sites",
		"lanes", lanes, "sites", numSites, "monotone", monotone, "nih", nih,
		"splittable", len(b.splittable)-b.firstUsable, "flip_policy", b.cfg.flipPolicy.String())

	return nil
}

// classifySite walks the covering-row range of site, updates its type and applies the
// flip policy. It reports whether no read straddles the site.
func (b *Block) classifySite(site int) (bool, error) {
	info := &b.sites[site]
	if info.StartRow < 0 || info.EndRow >= len(b.reads) || info.StartRow > info.EndRow {
		return false, fmt.Errorf("site %d: rows [%d, %d] of %d: %w",
			site, info.StartRow, info.EndRow, len(b.reads), errs.ErrCorruptSite)
	}

	nonSingle := 0
	splittable := true
	for row := info.StartRow; row <= info.EndRow; row++ {
		read := &b.reads[row]
		if read.Length() > 1 && b.ValueAt(row, site).IsAllele() {
			nonSingle++
		}
		if read.Straddles(site) {
			splittable = false
		}
	}

	if !info.IsMonotone() && min(info.Zeros, info.Ones) < nonSingle/2 {
		info.Type = format.SiteNIH
	}
	if b.cfg.flipPolicy == FlipMajorityOnes && !info.IsMonotone() && info.Ones > info.Zeros {
		b.flipSite(site)
	}

	return splittable, nil
}

// finalizeSplittable sorts the joined lane buffers, skips the leading monotone run and closes
// the list with the last site.
func (b *Block) finalizeSplittable(splittable []int) {
	slices.Sort(splittable)

	first := 0
	for first < len(splittable) && b.sites[splittable[first]].IsMonotone() {
		first++
	}

	last := len(b.sites) - 1
	if len(splittable) == 0 || splittable[len(splittable)-1] != last {
		splittable = append(splittable, last)
	}

	b.splittable = splittable
	b.firstUsable = first
}
