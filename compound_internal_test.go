package dagre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNestingGraphWiresChildrenToClusterBand(t *testing.T) {
	t.Parallel()

	g := NewGraph(true, false)
	g.SetNode("cluster", NodeLabel{})
	g.SetNode("a", NodeLabel{Width: 1, Height: 1})
	g.SetNode("b", NodeLabel{Width: 1, Height: 1})
	require.NoError(t, g.SetParent("a", "cluster"))
	require.NoError(t, g.SetParent("b", "cluster"))
	g.SetEdge("a", "b", "", EdgeLabel{Weight: 1, Minlen: 1})

	ng := addNestingGraph(g)
	require.NotEmpty(t, ng.root, "a compound graph gets a synthetic nesting root")

	// cluster itself never receives a rank directly; only its
	// descendants and the nesting scaffolding do.
	var ids []string
	for _, id := range sortedIDs(g.nodes) {
		if len(g.Children(id)) == 0 {
			ids = append(ids, id)
		}
	}
	edges := buildSimpleEdges(g)
	ranks := longestPathRanks(ids, edges)

	// a and b must sit in the same band, strictly below the root,
	// since both are wired through cluster's top/bottom dummies.
	assert.Less(t, ranks[ng.root], ranks["a"])
	assert.Less(t, ranks[ng.root], ranks["b"])

	removeNestingGraph(g, ng)
	assert.False(t, g.HasNode(ng.root), "nesting scaffolding must not survive removal")
	assert.True(t, g.HasNode("a"))
	assert.True(t, g.HasNode("b"))
}

func TestAddNestingGraphNoopWithoutCompoundNodes(t *testing.T) {
	t.Parallel()

	g := NewGraph(true, false)
	g.SetNode("a", NodeLabel{})
	g.SetNode("b", NodeLabel{})
	g.SetEdge("a", "b", "", EdgeLabel{Weight: 1, Minlen: 1})

	ng := addNestingGraph(g)
	assert.Empty(t, ng.root, "no cluster means no synthetic root is needed")
	assert.Equal(t, 2, g.NodeCount())
}

func TestBorderSegmentsSpanChildRankRangeAndChainVertically(t *testing.T) {
	t.Parallel()

	g := NewGraph(true, false)
	g.SetNode("cluster", NodeLabel{})
	g.SetNode("a", NodeLabel{})
	g.SetNode("b", NodeLabel{})
	require.NoError(t, g.SetParent("a", "cluster"))
	require.NoError(t, g.SetParent("b", "cluster"))
	g.Node("a").Label.Rank = 0
	g.Node("b").Label.Rank = 2

	addBorderSegmentsForNode(g, "cluster", 0)

	cluster := g.Node("cluster")
	assert.Equal(t, 0, cluster.Label.MinRank)
	assert.Equal(t, 2, cluster.Label.MaxRank)
	require.Len(t, cluster.Label.BorderLeft, 3)
	require.Len(t, cluster.Label.BorderRight, 3)

	left0 := cluster.Label.BorderLeft[0]
	left1 := cluster.Label.BorderLeft[1]
	require.NotEmpty(t, left0)
	require.NotEmpty(t, left1)
	assert.NotNil(t, g.Edge(left0, left1, ""), "consecutive left border dummies are chained rank to rank")

	assert.NotEmpty(t, cluster.Label.BorderTop)
	assert.NotEmpty(t, cluster.Label.BorderBottom)
	assert.Equal(t, "cluster", g.Parent(left0))
}

func TestRemoveBorderSegmentsComputesBoundingBoxAndCleansUp(t *testing.T) {
	t.Parallel()

	g := NewGraph(true, false)
	g.SetNode("cluster", NodeLabel{})
	g.SetNode("a", NodeLabel{})
	require.NoError(t, g.SetParent("a", "cluster"))
	g.Node("a").Label.Rank = 0

	addBorderSegmentsForNode(g, "cluster", 0)
	cluster := g.Node("cluster")

	g.Node(cluster.Label.BorderLeft[0]).Label.X = -5
	g.Node(cluster.Label.BorderRight[0]).Label.X = 15
	g.Node(cluster.Label.BorderTop).Label.Y = 0
	g.Node(cluster.Label.BorderBottom).Label.Y = 10

	removeBorderSegments(g)

	assert.Equal(t, 5.0, cluster.Label.X)
	assert.Equal(t, 5.0, cluster.Label.Y)
	assert.Equal(t, 20.0, cluster.Label.Width)
	assert.Equal(t, 10.0, cluster.Label.Height)
	assert.Empty(t, cluster.Label.BorderTop)
	assert.Empty(t, cluster.Label.BorderLeft)
	assert.Equal(t, 2, g.NodeCount(), "cluster and a remain; every border dummy is gone")
}

func TestAssignDummyChainParentsUsesLowestCommonAncestor(t *testing.T) {
	t.Parallel()

	g := NewGraph(true, false)
	g.SetNode("root", NodeLabel{})
	g.SetNode("left", NodeLabel{})
	g.SetNode("right", NodeLabel{})
	g.SetNode("a", NodeLabel{})
	g.SetNode("b", NodeLabel{})
	require.NoError(t, g.SetParent("left", "root"))
	require.NoError(t, g.SetParent("right", "root"))
	require.NoError(t, g.SetParent("a", "left"))
	require.NoError(t, g.SetParent("b", "right"))

	g.SetNode("d1", NodeLabel{Dummy: DummyEdge})
	e := &Edge{V: "a", W: "b", chain: []string{"d1"}}

	assignDummyChainParents(g, []*Edge{e})

	assert.Equal(t, "root", g.Parent("d1"), "a and b's LCA is root, so the chain dummy is reparented there")
}

func TestAssignDummyChainParentsSkipsNonCompoundGraphs(t *testing.T) {
	t.Parallel()

	g := NewGraph(false, false)
	g.SetNode("a", NodeLabel{})
	g.SetNode("b", NodeLabel{})
	g.SetNode("d1", NodeLabel{Dummy: DummyEdge})
	e := &Edge{V: "a", W: "b", chain: []string{"d1"}}

	assignDummyChainParents(g, []*Edge{e})

	assert.Equal(t, "", g.Parent("d1"))
}
