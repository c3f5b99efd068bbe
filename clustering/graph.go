// Package clustering provides the weighted similarity graph built per column,
// a cluster-editing solver over it, and the union-find used to derive
// position connected components.
package clustering

import (
	"github.com/grailbio/base/log"
)

// Graph is a weighted undirected graph over nodes 0..n-1. Edges are sparse;
// a missing edge means no similarity was computed, which solvers must not
// conflate with a zero weight.
type Graph struct {
	n   int
	adj []map[int]float64
}

// NewGraph returns an edgeless graph over n nodes.
func NewGraph(n int) *Graph {
	return &Graph{n: n, adj: make([]map[int]float64, n)}
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return g.n }

// AddEdge sets the weight of the undirected edge (i, j), replacing any
// previous weight. Self-loops and out-of-range nodes are programming errors.
func (g *Graph) AddEdge(i, j int, w float64) {
	if i == j || i < 0 || j < 0 || i >= g.n || j >= g.n {
		log.Panicf("clustering: bad edge (%d, %d) in graph of %d nodes", i, j, g.n)
	}
	if g.adj[i] == nil {
		g.adj[i] = map[int]float64{}
	}
	if g.adj[j] == nil {
		g.adj[j] = map[int]float64{}
	}
	g.adj[i][j] = w
	g.adj[j][i] = w
}

// Weight returns the weight of edge (i, j) and whether the edge exists.
func (g *Graph) Weight(i, j int) (float64, bool) {
	if i < 0 || j < 0 || i >= g.n || j >= g.n || g.adj[i] == nil {
		return 0, false
	}
	w, ok := g.adj[i][j]
	return w, ok
}

// NumEdges returns the number of distinct undirected edges.
func (g *Graph) NumEdges() int {
	total := 0
	for _, nbrs := range g.adj {
		total += len(nbrs)
	}
	return total / 2
}
