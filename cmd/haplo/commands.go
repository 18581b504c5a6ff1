package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jwaldrip/odin/cli"

	"github.com/arloliu/haplo"
	"github.com/arloliu/haplo/block"
	"github.com/arloliu/haplo/endian"
	"github.com/arloliu/haplo/format"
	"github.com/arloliu/haplo/graph"
	"github.com/arloliu/haplo/haplotype"
	"github.com/arloliu/haplo/snapshot"
)

func runClassify(c cli.Command) {
	printSites := c.Flag("sites").Get().(bool)

	run(c, func(s *session, path string) error {
		return classify(s, os.Stdout, path, printSites)
	})
}

// classify prints the read, site and sub-block summary of the block at path.
func classify(s *session, w io.Writer, path string, printSites bool) error {
	blk, err := s.load(path)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(w)
	defer out.Flush()

	fmt.Fprintf(out, "reads\t%d\nsites\t%d\nflipped\t%d\n", blk.NumReads(), blk.NumSites(), blk.NumFlipped())
	fmt.Fprintf(out, "splittable\t%v\n", blk.Splittable())

	for i := range blk.SubblockCount() - 1 {
		start, end, err := blk.SubblockRange(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "subblock\t%d\t%d..%d\t%d open sites\n", i, start, end, len(blk.NonMonotoneIn(start, end)))
	}

	if printSites {
		for site := range blk.NumSites() {
			info, err := blk.Site(site)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "site\t%d\t%s\tzeros=%d\tones=%d\trows=%d..%d\n",
				site, siteLabel(info), info.Zeros, info.Ones, info.StartRow, info.EndRow)
		}
	}

	return nil
}

func siteLabel(info block.SiteInfo) string {
	if info.IsMonotone() {
		return "monotone"
	}

	return info.Type.String()
}

type scoreArgs struct {
	h1, h2  string
	perRead bool
}

func runScore(c cli.Command) {
	args := scoreArgs{
		h1:      c.Flag("h1").String(),
		h2:      c.Flag("h2").String(),
		perRead: c.Flag("reads").Get().(bool),
	}

	run(c, func(s *session, path string) error {
		return score(s, os.Stdout, path, args)
	})
}

// score installs the pair given by args and prints its MEC score.
func score(s *session, w io.Writer, path string, args scoreArgs) error {
	one, ok := haplotype.FromString(args.h1)
	if !ok || args.h1 == "" {
		return fmt.Errorf("-h1: expected a non-empty 0/1 string, got %q", args.h1)
	}
	two := one.Invert()
	if args.h2 != "" {
		if two, ok = haplotype.FromString(args.h2); !ok {
			return fmt.Errorf("-h2: expected a 0/1 string, got %q", args.h2)
		}
	}

	blk, err := s.load(path)
	if err != nil {
		return err
	}
	if err := blk.SetHaplotypes(one, two); err != nil {
		return err
	}

	out := bufio.NewWriter(w)
	defer out.Flush()

	fmt.Fprintf(out, "mec\t%d\n", blk.MECScore())
	if args.perRead {
		for row := range blk.NumReads() {
			score, err := blk.ReadMEC(row)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "read\t%d\t%d\n", row, score)
		}
	}

	return nil
}

type snapshotArgs struct {
	output      string
	compression string
	bigEndian   bool
}

func runSnapshot(c cli.Command) {
	args := snapshotArgs{
		output:      c.Flag("o").String(),
		compression: c.Flag("compression").String(),
		bigEndian:   c.Flag("big-endian").Get().(bool),
	}

	run(c, func(s *session, path string) error {
		return writeSnapshot(s, path, args)
	})
}

// writeSnapshot encodes the block at path into args.output.
func writeSnapshot(s *session, path string, args snapshotArgs) error {
	if args.output == "" {
		return fmt.Errorf("-o: output file is required")
	}

	opts := s.cfg.SnapshotOptions()
	if args.compression != "" {
		ct, ok := format.ParseCompression(args.compression)
		if !ok {
			return fmt.Errorf("-compression: unknown codec %q", args.compression)
		}
		opts = append(opts, snapshot.WithCompression(ct))
	}
	if args.bigEndian {
		opts = append(opts, snapshot.WithBigEndian())
	}

	blk, err := s.load(path)
	if err != nil {
		return err
	}

	f, err := os.Create(args.output)
	if err != nil {
		return err
	}
	if err := haplo.Save(f, blk, opts...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	s.logger.Info("snapshot written", "path", args.output, "reads", blk.NumReads(), "sites", blk.NumSites())

	return nil
}

type graphArgs struct {
	index  int
	output string // "-" writes to the command's writer
	device bool
}

func runGraph(c cli.Command) {
	args := graphArgs{
		index:  c.Flag("subblock").Get().(int),
		output: c.Flag("o").String(),
		device: c.Flag("device").Get().(bool),
	}

	run(c, func(s *session, path string) error {
		return exportGraph(s, os.Stdout, path, args)
	})
}

// exportGraph writes the pairwise graph of one sub-block as DOT.
func exportGraph(s *session, w io.Writer, path string, args graphArgs) error {
	blk, err := s.load(path)
	if err != nil {
		return err
	}
	start, end, err := blk.SubblockRange(args.index)
	if err != nil {
		return err
	}

	var container graph.Container = graph.NewCPUContainer(0)
	if args.device {
		container = graph.NewDeviceContainer(0)
	}
	sites, err := graph.Populate(s.ctx, container, blk, start, end)
	if err != nil {
		return err
	}
	if dev, ok := container.(*graph.DeviceContainer); ok {
		s.logger.Info("device container filled",
			"nodes", dev.NumNodes(),
			"links", dev.NumLinks(),
			"transfer_bytes", len(dev.Transfer(endian.Native())))
	}

	labels := make([]string, len(sites))
	for i, site := range sites {
		labels[i] = "site " + strconv.Itoa(site)
	}

	if args.output != "-" {
		f, err := os.Create(args.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	return graph.WriteDOT(w, container, labels)
}
