package transform

// ComponentStats summarizes the clustering of one connected component.
// Positions counts only columns with at least one covering read; columns
// nobody covers are skipped entirely and appear in no statistic.
type ComponentStats struct {
	// Component is the component id from the position-to-component mapping.
	Component int
	// Positions is the number of columns that were clustered.
	Positions int
	// ClusterCounts holds the raw solver cluster count per clustered column,
	// in position order.
	ClusterCounts []int
	// AbovePloidy counts columns where the solver returned more clusters
	// than the ploidy, BelowPloidy where it returned fewer.
	AbovePloidy int
	BelowPloidy int
}

// AvgClusters returns the arithmetic mean of ClusterCounts, or 0 for a
// component in which no column was clustered.
func (s ComponentStats) AvgClusters() float64 {
	if s.Positions == 0 {
		return 0
	}
	total := 0
	for _, c := range s.ClusterCounts {
		total += c
	}
	return float64(total) / float64(s.Positions)
}

// Stats aggregates component statistics over a whole transformation run.
type Stats struct {
	Components  int
	Positions   int
	AbovePloidy int
	BelowPloidy int
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Components += o.Components
	s.Positions += o.Positions
	s.AbovePloidy += o.AbovePloidy
	s.BelowPloidy += o.BelowPloidy
	return s
}
