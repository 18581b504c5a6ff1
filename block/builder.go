package block

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/format"
	"github.com/arloliu/haplo/genotype"
	"github.com/arloliu/haplo/haplotype"
)

// Builder ingests reads one at a time and produces a classified Block.
//
// Reads must be added in row order; the row index of a read is the number of reads
// added before it. A Builder is not safe for concurrent use and builds a single Block.
type Builder struct {
	cfg     *Config
	store   *genotype.Store
	reads   []ReadInfo
	alleles int // non-gap symbols stored
	maxSite int // highest site holding a non-gap symbol, -1 if none
	maxLine int // input line that set maxSite, 0 for typed reads
	maxText string
	line    int
	scratch []format.Symbol
	done    bool
}

// NewBuilder creates a builder with the given options.
func NewBuilder(opts ...Option) (*Builder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Builder{
		cfg:     cfg,
		store:   genotype.NewStore(0),
		maxSite: -1,
	}, nil
}

// NumReads returns the number of reads added so far.
func (b *Builder) NumReads() int {
	return len(b.reads)
}

// AddRead appends a read covering sites [first, last] with one symbol per site.
//
// Returns:
//   - error: ErrMalformedRecord for an invalid span or a symbol count that does not match it,
//     ErrInvalidSymbol for a symbol outside {zero, one, gap}, ErrBlockFinished after Build
func (b *Builder) AddRead(first, last int, symbols []format.Symbol) error {
	if b.done {
		return errs.ErrBlockFinished
	}
	if first < 0 || last < first {
		return fmt.Errorf("read %d: span [%d, %d]: %w", len(b.reads), first, last, errs.ErrMalformedRecord)
	}
	if len(symbols) != last-first+1 {
		return fmt.Errorf("read %d: %d symbols for span of %d: %w",
			len(b.reads), len(symbols), last-first+1, errs.ErrMalformedRecord)
	}
	for i, sym := range symbols {
		if sym > format.SymbolGap {
			return fmt.Errorf("read %d, site %d: %w", len(b.reads), first+i, errs.ErrInvalidSymbol)
		}
	}

	b.appendRead(first, last, symbols)

	return nil
}

// AddRecord parses one input line of the form "<first> <last> <symbols>" and appends
// the read. Lines holding only whitespace are skipped.
//
// Returns:
//   - error: *errs.ParseError wrapping ErrMalformedRecord or ErrInvalidSymbol, ErrBlockFinished after Build
func (b *Builder) AddRecord(line string) error {
	if b.done {
		return errs.ErrBlockFinished
	}
	b.line++

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	if len(fields) != 3 {
		return b.parseError(line, -1, errs.ErrMalformedRecord)
	}

	first, err := strconv.Atoi(fields[0])
	if err != nil || first < 0 {
		return b.parseError(line, -1, errs.ErrMalformedRecord)
	}
	last, err := strconv.Atoi(fields[1])
	if err != nil || last < first {
		return b.parseError(line, -1, errs.ErrMalformedRecord)
	}

	data := fields[2]
	symbols := b.scratch[:0]
	for i := range len(data) {
		sym, ok := format.SymbolFromByte(data[i])
		if !ok {
			return b.parseError(line, strings.LastIndex(line, data)+i, errs.ErrInvalidSymbol)
		}
		symbols = append(symbols, sym)
	}
	b.scratch = symbols

	if len(symbols) != last-first+1 {
		return b.parseError(line, -1, errs.ErrMalformedRecord)
	}
	prevMax := b.maxSite
	b.appendRead(first, last, symbols)
	if b.maxSite != prevMax {
		b.maxLine, b.maxText = b.line, line
	}

	return nil
}

func (b *Builder) parseError(line string, column int, err error) error {
	return &errs.ParseError{Line: b.line, Text: line, Column: column, Err: err}
}

func (b *Builder) appendRead(first, last int, symbols []format.Symbol) {
	row := len(b.reads)
	offset := b.store.Len()

	for i, sym := range symbols {
		b.store.Append(sym)
		if sym != format.SymbolGap {
			b.alleles++
			if first+i > b.maxSite {
				b.maxSite = first + i
				b.maxLine = 0
			}
		}
	}

	b.reads = append(b.reads, ReadInfo{Row: row, First: first, Last: last, Offset: offset})
}

// observeSites replays the stored reads into a site table of numSites entries.
func (b *Builder) observeSites(numSites int) []SiteInfo {
	sites := make([]SiteInfo, numSites)
	for row := range b.reads {
		read := &b.reads[row]
		end := min(read.Last, numSites-1)
		for site := read.First; site <= end; site++ {
			if sym := b.store.Get(read.offsetOf(site)); sym.IsAllele() {
				sites[site].observe(row, sym)
			}
		}
	}

	return sites
}

// Build classifies the ingested sites and returns the block.
//
// The number of sites is one past the highest site observed with a non-gap symbol; every
// site below it must have been observed at least once.
//
// Returns:
//   - *Block: the classified block with monotone sites already written to both haplotypes
//   - error: ErrEmptyInput, ErrUncoveredSite, ErrCorruptSite, a context error, or ErrBlockFinished.
//     A site beyond the number of base calls stored is reported as a *errs.ParseError naming
//     the record that introduced it when that record came through AddRecord.
func (b *Builder) Build(ctx context.Context) (*Block, error) {
	if b.done {
		return nil, errs.ErrBlockFinished
	}
	b.done = true

	if len(b.reads) == 0 {
		return nil, errs.ErrEmptyInput
	}

	if b.maxSite < 0 {
		return nil, fmt.Errorf("no site carries a base call: %w", errs.ErrEmptyInput)
	}
	// every site up to maxSite needs its own base call
	if b.maxSite >= b.alleles {
		if b.maxLine > 0 {
			return nil, &errs.ParseError{Line: b.maxLine, Text: b.maxText, Column: -1, Err: errs.ErrUncoveredSite}
		}

		return nil, fmt.Errorf("site %d is beyond the %d base calls stored: %w",
			b.maxSite, b.alleles, errs.ErrUncoveredSite)
	}
	numSites := b.maxSite + 1
	sites := b.observeSites(numSites)
	for site := range sites {
		if sites[site].Elements() == 0 {
			return nil, fmt.Errorf("site %d: %w", site, errs.ErrUncoveredSite)
		}
	}

	blk := &Block{
		cfg:      b.cfg,
		store:    b.store,
		reads:    b.reads,
		sites:    sites,
		flipped:  make([]uint64, (numSites+63)/64),
		inverted: make([]uint64, (numSites+63)/64),
	}
	b.cfg.metrics.ReadsIngested(len(b.reads))
	b.cfg.logger.Debug("ingested reads",
		"reads", len(b.reads), "sites", numSites, "symbols", b.store.Len(), "bytes", b.store.SizeBytes())

	start := time.Now()
	if err := blk.classify(ctx); err != nil {
		return nil, err
	}
	b.cfg.metrics.ObserveClassify(time.Since(start))

	blk.haplo = haplotype.NewPair(numSites)
	blk.seedMonotone()

	return blk, nil
}
