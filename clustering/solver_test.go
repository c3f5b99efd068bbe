package clustering

import (
	"sort"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphEdges(t *testing.T) {
	g := NewGraph(3)
	expect.EQ(t, g.NumNodes(), 3)
	expect.EQ(t, g.NumEdges(), 0)

	g.AddEdge(0, 2, -1.5)
	w, ok := g.Weight(2, 0)
	expect.True(t, ok)
	expect.EQ(t, w, -1.5)
	expect.EQ(t, g.NumEdges(), 1)

	// A missing edge is unknown, not zero.
	_, ok = g.Weight(0, 1)
	expect.False(t, ok)

	// Re-adding replaces the weight.
	g.AddEdge(0, 2, 4.0)
	w, _ = g.Weight(0, 2)
	expect.EQ(t, w, 4.0)
	expect.EQ(t, g.NumEdges(), 1)
}

func TestGreedyTwoGroups(t *testing.T) {
	g := NewGraph(4)
	g.AddEdge(0, 1, 5)
	g.AddEdge(2, 3, 5)
	g.AddEdge(0, 2, -5)
	g.AddEdge(0, 3, -5)
	g.AddEdge(1, 2, -5)
	g.AddEdge(1, 3, -5)

	partition, err := GreedyClusterEditing{}.Run(g)
	require.NoError(t, err)
	assert.Equal(t, Partition{{0, 1}, {2, 3}}, partition)
	assert.Equal(t, 2, partition.NumClusters())
}

func TestGreedyAllPositive(t *testing.T) {
	g := NewGraph(3)
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(0, 2, 1)

	partition, err := GreedyClusterEditing{}.Run(g)
	require.NoError(t, err)
	assert.Equal(t, Partition{{0, 1, 2}}, partition)
}

func TestGreedyNoEdges(t *testing.T) {
	partition, err := GreedyClusterEditing{}.Run(NewGraph(3))
	require.NoError(t, err)
	assert.Equal(t, Partition{{0}, {1}, {2}}, partition)
}

func TestGreedyEmptyGraph(t *testing.T) {
	partition, err := GreedyClusterEditing{}.Run(NewGraph(0))
	require.NoError(t, err)
	assert.Equal(t, 0, partition.NumClusters())
}

// Every node must land in exactly one cluster, whatever the weights.
func TestGreedyCoversAllNodes(t *testing.T) {
	const n = 7
	g := NewGraph(n)
	g.AddEdge(0, 3, 2)
	g.AddEdge(1, 4, -1)
	g.AddEdge(2, 5, 0.5)
	g.AddEdge(3, 6, -3)
	g.AddEdge(5, 6, 1)

	partition, err := GreedyClusterEditing{}.Run(g)
	require.NoError(t, err)
	var all []int
	for _, cluster := range partition {
		assert.True(t, len(cluster) > 0)
		all = append(all, cluster...)
	}
	sort.Ints(all)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, all)
}
