// Command haplo classifies, scores and exports blocks of phased sequencing reads.
//
// Usage:
//
//	haplo [-C haplo.hcl] [-t N] [-log-level L] [-log-format F] <command> [flags] <file>
//
// <file> is either a text read matrix or a snapshot written by "haplo snapshot".
package main

import (
	"fmt"
	"os"

	"github.com/jwaldrip/odin/cli"
)

const version = "0.4.0"

var app = cli.New(version, "Haplotype block classification and merge engine", func(c cli.Command) {
	c.Usage()
})

func init() {
	app.DefineStringFlag("C", "haplo.hcl", "run configuration file")
	app.DefineIntFlag("t", 0, "number of classifier lanes (0 uses the configuration)")
	app.DefineStringFlag("log-level", "", "debug, info, warn or error")
	app.DefineStringFlag("log-format", "", "text or json")
	app.DefineStringFlag("metrics", "", "write Prometheus metrics in text format to this file")

	classify := app.DefineSubCommand("classify", "classify sites and list sub-blocks", runClassify)
	{
		classify.DefineParams("file")
		classify.DefineBoolFlag("sites", false, "print one line per site")
	}

	score := app.DefineSubCommand("score", "compute the MEC score of a haplotype pair", runScore)
	{
		score.DefineParams("file")
		score.DefineStringFlag("h1", "", "first haplotype as a 0/1 string")
		score.DefineStringFlag("h2", "", "second haplotype as a 0/1 string (default: complement of h1)")
		score.DefineBoolFlag("reads", false, "print the contribution of every read")
	}

	snap := app.DefineSubCommand("snapshot", "write the block as a binary snapshot", runSnapshot)
	{
		snap.DefineParams("file")
		snap.DefineStringFlag("o", "", "output file")
		snap.DefineStringFlag("compression", "", "zstd, s2, lz4 or none (default: the configuration)")
		snap.DefineBoolFlag("big-endian", false, "write big-endian")
	}

	graph := app.DefineSubCommand("graph", "export the pairwise graph of one sub-block as DOT", runGraph)
	{
		graph.DefineParams("file")
		graph.DefineIntFlag("subblock", 0, "sub-block index")
		graph.DefineStringFlag("o", "-", "output file, - for stdout")
		graph.DefineBoolFlag("device", false, "fill the device container and report its transfer size")
	}
}

func main() {
	app.Start()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "haplo: %v\n", err)
	os.Exit(1)
}
