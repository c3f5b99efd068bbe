package clustering

import "sort"

// Partition divides the nodes of a graph into disjoint non-empty clusters.
// Every node appears in exactly one cluster.
type Partition [][]int

// NumClusters returns the number of clusters.
func (p Partition) NumClusters() int { return len(p) }

// GreedyClusterEditing is an agglomerative cluster-editing heuristic: every
// node starts as its own cluster, and the pair of clusters with the largest
// positive total inter-cluster weight is merged until no positive pair
// remains. Missing edges contribute nothing to the merge score, so reads
// with no computed similarity neither attract nor repel each other.
//
// The output is deterministic: members within a cluster are ascending, and
// clusters are ordered by their smallest member.
type GreedyClusterEditing struct{}

// Run partitions the graph's nodes into clusters.
func (GreedyClusterEditing) Run(g *Graph) (Partition, error) {
	n := g.NumNodes()
	if n == 0 {
		return Partition{}, nil
	}

	clusters := make([][]int, n)
	active := make([]bool, n)
	// weight[i][j] is the total weight of known edges between clusters i and
	// j; maintained for i, j among active cluster slots.
	weight := make([][]float64, n)
	for i := 0; i < n; i++ {
		clusters[i] = []int{i}
		active[i] = true
		weight[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if w, ok := g.Weight(i, j); ok {
				weight[i][j] = w
				weight[j][i] = w
			}
		}
	}

	for {
		best, bestI, bestJ := 0.0, -1, -1
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !active[j] {
					continue
				}
				if weight[i][j] > best {
					best, bestI, bestJ = weight[i][j], i, j
				}
			}
		}
		if bestI < 0 {
			break
		}
		// Merge bestJ into bestI.
		clusters[bestI] = append(clusters[bestI], clusters[bestJ]...)
		active[bestJ] = false
		for k := 0; k < n; k++ {
			if !active[k] || k == bestI {
				continue
			}
			weight[bestI][k] += weight[bestJ][k]
			weight[k][bestI] = weight[bestI][k]
		}
	}

	var out Partition
	for i := 0; i < n; i++ {
		if !active[i] {
			continue
		}
		members := clusters[i]
		sort.Ints(members)
		out = append(out, members)
	}
	sort.Slice(out, func(a, b int) bool { return out[a][0] < out[b][0] })
	return out, nil
}
