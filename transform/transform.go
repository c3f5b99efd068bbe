// Package transform builds a transformed read-by-variant matrix for
// haplotype phasing: at every variant position, the raw set of overlapping
// reads is replaced by per-read cluster assignments, one synthetic cluster
// per haplotype copy when the solver agrees with the ploidy. Reads are first
// split into independent connected components; within each component, every
// covered position yields a column of reads that is scored pairwise and
// partitioned by a cluster-editing solver.
package transform

import (
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"

	"github.com/haplotools/polyphase/clustering"
	"github.com/haplotools/polyphase/readset"
	"github.com/haplotools/polyphase/scoring"
)

// Oracle computes pairwise similarity weights for the reads of one column.
// Implementations must be safe for concurrent use when components are
// processed in parallel.
type Oracle interface {
	// Score is the calibrated error-model scorer.
	Score(column *readset.ReadSet, ploidy int, errorRate float64, minOverlap int) scoring.Similarities
	// LocalitySensitiveScore is the approximate fallback scorer; it has no
	// error-rate parameter.
	LocalitySensitiveScore(column *readset.ReadSet, ploidy, minOverlap int) scoring.Similarities
}

// Solver partitions a similarity graph into disjoint non-empty clusters. The
// cluster count is solver-determined and may differ from the ploidy.
type Solver interface {
	Run(graph *clustering.Graph) (clustering.Partition, error)
}

// Opts configures a transformation run.
type Opts struct {
	// Ploidy is the number of expected haplotype copies.
	Ploidy int
	// ErrorRate selects the scorer: a value in [0.0, 1.0) selects the
	// calibrated scorer with that per-allele error rate; any other value is
	// a sentinel selecting the locality-sensitive fallback scorer.
	ErrorRate float64
	// MinOverlap is the minimum number of shared covered positions for two
	// reads to be compared.
	MinOverlap int
	// Parallelism is the number of components processed concurrently;
	// values below 2 mean sequential processing.
	Parallelism int
	// Oracle and Solver override the default scorer and cluster-editing
	// implementations; nil selects scoring.DefaultOracle and
	// clustering.GreedyClusterEditing.
	Oracle Oracle
	Solver Solver
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	Ploidy:      2,
	ErrorRate:   0.07,
	MinOverlap:  2,
	Parallelism: 1,
}

// otherClusterPenalty is the cost assigned against every cluster a read was
// not assigned to; the assigned cluster carries cost zero.
const otherClusterPenalty = 10

// Result is the output of a transformation run.
type Result struct {
	// Matrix is the transformed read set: one read per input read that
	// covered at least one clustered column, sorted canonically, with one
	// variant per clustered position carrying the cluster id and cost
	// vector.
	Matrix *readset.ReadSet
	// ClusterCounts lists max(ploidy, solver cluster count) for every
	// clustered column, across all components in processing order.
	ClusterCounts []int
	// Components holds per-component statistics in processing order.
	Components []ComponentStats
	// Stats aggregates the component statistics.
	Stats Stats
}

// Transform partitions reads into connected components, clusters the column
// of every covered position, and assembles the per-position cluster
// assignments into the transformed matrix. positionToComponent must map the
// first variant position of every read; a missing entry yields a
// MissingMappingError. Input reads without variants are ignored.
func Transform(reads *readset.ReadSet, positionToComponent map[int]int, opts Opts) (*Result, error) {
	if opts.Oracle == nil {
		opts.Oracle = scoring.DefaultOracle{}
	}
	if opts.Solver == nil {
		opts.Solver = clustering.GreedyClusterEditing{}
	}

	// Group read indices by the component of their first variant position.
	componentReads := map[int][]int{}
	for i := 0; i < reads.Len(); i++ {
		read := reads.Get(i)
		if read.Len() == 0 {
			log.Debug.Printf("transform: ignoring read %q with no variants", read.Name)
			continue
		}
		position := read.FirstPosition()
		component, ok := positionToComponent[position]
		if !ok {
			return nil, &MissingMappingError{ReadName: read.Name, Position: position}
		}
		componentReads[component] = append(componentReads[component], i)
	}
	componentIDs := make([]int, 0, len(componentReads))
	for id := range componentReads {
		componentIDs = append(componentIDs, id)
	}
	sort.Ints(componentIDs)

	// Components are independent: process them in parallel, sharding the
	// component list over the requested number of jobs. Results land in a
	// slice indexed by component order, so the assembly below is
	// deterministic regardless of scheduling.
	results := make([]*componentResult, len(componentIDs))
	jobs := opts.Parallelism
	if jobs < 1 {
		jobs = 1
	}
	if jobs > len(componentIDs) {
		jobs = len(componentIDs)
	}
	if len(componentIDs) > 0 {
		err := traverse.Each(jobs, func(job int) error {
			for k := job; k < len(componentIDs); k += jobs {
				id := componentIDs[k]
				res, err := transformComponent(reads.Subset(componentReads[id]), id, opts)
				if err != nil {
					return err
				}
				results[k] = res
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Assemble the final matrix: non-empty reads only, canonical order, and
	// the strictly-increasing-positions invariant checked per read.
	out := &Result{Matrix: readset.New()}
	for _, res := range results {
		for _, read := range res.reads {
			if read.Len() == 0 {
				continue
			}
			for v := 1; v < len(read.Variants); v++ {
				if read.Variants[v].Position <= read.Variants[v-1].Position {
					return nil, &DuplicatePositionError{ReadName: read.Name, Position: read.Variants[v].Position}
				}
			}
			out.Matrix.Add(read)
		}
		out.ClusterCounts = append(out.ClusterCounts, res.clusterCounts...)
		out.Components = append(out.Components, res.stats)
		out.Stats = out.Stats.Merge(Stats{
			Components:  1,
			Positions:   res.stats.Positions,
			AbovePloidy: res.stats.AbovePloidy,
			BelowPloidy: res.stats.BelowPloidy,
		})
	}
	out.Matrix.Sort()
	return out, nil
}

type componentResult struct {
	stats         ComponentStats
	clusterCounts []int
	reads         []*readset.Read
}

// transformComponent clusters every covered position of one component and
// accumulates the per-read cluster assignments.
func transformComponent(componentReads *readset.ReadSet, componentID int, opts Opts) (*componentResult, error) {
	// One in-progress output read per input read, keyed by name.
	accumulated := make(map[string]*readset.Read, componentReads.Len())
	order := make([]string, 0, componentReads.Len())
	for i := 0; i < componentReads.Len(); i++ {
		read := componentReads.Get(i)
		if _, ok := accumulated[read.Name]; !ok {
			order = append(order, read.Name)
		}
		accumulated[read.Name] = readset.NewRead(read.Name, read.MapQ, read.SourceID, read.SampleID)
	}

	stats := ComponentStats{Component: componentID}
	var clusterCounts []int
	for _, position := range componentReads.Positions() {
		// Build the column of reads covering this position.
		var covering []int
		for i := 0; i < componentReads.Len(); i++ {
			if componentReads.Get(i).Covers(position) {
				covering = append(covering, i)
			}
		}
		if len(covering) == 0 {
			continue
		}
		column := componentReads.Subset(covering)

		var sims scoring.Similarities
		if 0.0 <= opts.ErrorRate && opts.ErrorRate < 1.0 {
			sims = opts.Oracle.Score(column, opts.Ploidy, opts.ErrorRate, opts.MinOverlap)
		} else {
			sims = opts.Oracle.LocalitySensitiveScore(column, opts.Ploidy, opts.MinOverlap)
		}

		graph := clustering.NewGraph(column.Len())
		for pair, weight := range sims {
			graph.AddEdge(pair.A, pair.B, weight)
		}
		partition, err := opts.Solver.Run(graph)
		if err != nil {
			return nil, err
		}

		numClusters := len(partition)
		stats.ClusterCounts = append(stats.ClusterCounts, numClusters)
		if numClusters > opts.Ploidy {
			stats.AbovePloidy++
		} else if numClusters < opts.Ploidy {
			stats.BelowPloidy++
		}
		width := numClusters
		if opts.Ploidy > width {
			width = opts.Ploidy
		}

		for c, cluster := range partition {
			for _, id := range cluster {
				quality := make([]int, width)
				for q := range quality {
					quality[q] = otherClusterPenalty
				}
				quality[c] = 0
				accumulated[column.Get(id).Name].AddVariant(position, c, quality)
			}
		}
		clusterCounts = append(clusterCounts, width)
	}
	stats.Positions = len(stats.ClusterCounts)

	log.Printf("transform: component %d: %d columns clustered, %.2f clusters on average (%d > ploidy, %d < ploidy)",
		componentID, stats.Positions, stats.AvgClusters(), stats.AbovePloidy, stats.BelowPloidy)

	res := &componentResult{stats: stats, clusterCounts: clusterCounts}
	for _, name := range order {
		res.reads = append(res.reads, accumulated[name])
	}
	return res, nil
}

// PositionComponents derives the position-to-component mapping consumed by
// Transform: positions covered by a common read are merged into one
// component, and each position maps to its component's smallest position.
func PositionComponents(reads *readset.ReadSet) map[int]int {
	finder := clustering.NewComponentFinder()
	for i := 0; i < reads.Len(); i++ {
		read := reads.Get(i)
		for v := 0; v < read.Len(); v++ {
			if v == 0 {
				finder.Find(read.Variants[0].Position)
				continue
			}
			finder.Merge(read.Variants[v-1].Position, read.Variants[v].Position)
		}
	}
	components := map[int]int{}
	for i := 0; i < reads.Len(); i++ {
		for _, v := range reads.Get(i).Variants {
			components[v.Position] = finder.Find(v.Position)
		}
	}
	return components
}
