package main

/*
transform-matrix replaces, at every variant position of a read matrix, the
raw set of overlapping reads with synthetic per-read cluster assignments
suitable for cost-based polyploid phasing. Reads are grouped into connected
components of linked positions, every covered position is clustered with a
cluster-editing solver over pairwise read similarities, and the resulting
assignments are written as a transformed matrix.
*/

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/haplotools/polyphase/transform"
)

var (
	ploidy      = flag.Int("ploidy", transform.DefaultOpts.Ploidy, "Number of expected haplotype copies")
	errorRate   = flag.Float64("error-rate", transform.DefaultOpts.ErrorRate, "Per-allele read error rate in [0,1); any other value selects the locality-sensitive approximate scorer")
	minOverlap  = flag.Int("min-overlap", transform.DefaultOpts.MinOverlap, "Minimum shared positions for two reads to be compared")
	parallelism = flag.Int("parallelism", transform.DefaultOpts.Parallelism, "Number of connected components processed concurrently")
	outPath     = flag.String("out", "transformed.tsv", "Output path for the transformed matrix; .gz compresses")
	countsPath  = flag.String("counts", "", "Optional output path for per-column cluster counts; .gz compresses")
)

func usage() {
	fmt.Printf("Usage: %s [OPTIONS] reads.tsv\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("Exactly one positional argument (reads.tsv) expected, got %d", flag.NArg())
	}
	ctx := vcontext.Background()

	reads, err := readMatrix(ctx, flag.Arg(0))
	if err != nil {
		log.Fatalf("read %s: %v", flag.Arg(0), err)
	}
	log.Printf("read %d reads from %s", reads.Len(), flag.Arg(0))

	opts := transform.DefaultOpts
	opts.Ploidy = *ploidy
	opts.ErrorRate = *errorRate
	opts.MinOverlap = *minOverlap
	opts.Parallelism = *parallelism

	components := transform.PositionComponents(reads)
	result, err := transform.Transform(reads, components, opts)
	if err != nil {
		log.Fatalf("transform: %v", err)
	}
	log.Printf("transformed %d components, %d columns (%d > ploidy, %d < ploidy), %d output reads",
		result.Stats.Components, result.Stats.Positions,
		result.Stats.AbovePloidy, result.Stats.BelowPloidy, result.Matrix.Len())

	if err := createAndWrite(ctx, *outPath, func(w io.Writer) error {
		return writeMatrixTo(w, result.Matrix)
	}); err != nil {
		log.Fatalf("%v", err)
	}
	if *countsPath != "" {
		if err := createAndWrite(ctx, *countsPath, func(w io.Writer) error {
			return writeCountsTo(w, result.ClusterCounts)
		}); err != nil {
			log.Fatalf("%v", err)
		}
	}
}
