package dagre_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2dagre/layout"
)

func newNode(g *dagre.Graph, id string) {
	g.SetNode(id, dagre.NodeLabel{Width: 20, Height: 10})
}

func TestLayoutTwoNodeChain(t *testing.T) {
	t.Parallel()

	g := dagre.NewGraph(false, false)
	newNode(g, "a")
	newNode(g, "b")
	g.SetEdge("a", "b", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})

	require.NoError(t, dagre.Layout(context.Background(), g, nil))

	a, b := g.Node("a"), g.Node("b")
	assert.Equal(t, 0, a.Label.Rank)
	assert.Equal(t, 1, b.Label.Rank)
	assert.Less(t, a.Label.Y, b.Label.Y)
	assert.Greater(t, g.Label.Width, 0.0)
	assert.Greater(t, g.Label.Height, 0.0)
}

func TestLayoutTriangleWithBackEdge(t *testing.T) {
	t.Parallel()

	// a -> b -> c, c -> a closes a cycle; acyclicization must reverse
	// exactly one edge (the greedy heuristic picks c -> a), and every
	// edge must come back in its original orientation.
	g := dagre.NewGraph(false, false)
	newNode(g, "a")
	newNode(g, "b")
	newNode(g, "c")
	g.SetEdge("a", "b", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})
	g.SetEdge("b", "c", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})
	g.SetEdge("c", "a", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})

	require.NoError(t, dagre.Layout(context.Background(), g, nil))

	assert.NotNil(t, g.Edge("a", "b", ""))
	assert.NotNil(t, g.Edge("b", "c", ""))
	assert.NotNil(t, g.Edge("c", "a", ""))
	assert.False(t, g.Edge("a", "b", "").Label.Reversed)
	assert.False(t, g.Edge("b", "c", "").Label.Reversed)
	assert.True(t, g.Edge("c", "a", "").Label.Reversed)
}

func TestLayoutLongEdgeGetsPolyline(t *testing.T) {
	t.Parallel()

	// a -> d spans three ranks once b, c force a -> b -> c -> d's
	// length on the other path; normalize/denormalize must leave a
	// multi-point polyline behind.
	g := dagre.NewGraph(false, false)
	for _, id := range []string{"a", "b", "c", "d"} {
		newNode(g, id)
	}
	g.SetEdge("a", "b", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})
	g.SetEdge("b", "c", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})
	g.SetEdge("c", "d", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})
	g.SetEdge("a", "d", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})

	require.NoError(t, dagre.Layout(context.Background(), g, nil))

	direct := g.Edge("a", "d", "")
	require.NotNil(t, direct)
	assert.GreaterOrEqual(t, len(direct.Label.Points), 2)
}

func TestLayoutSelfLoop(t *testing.T) {
	t.Parallel()

	g := dagre.NewGraph(false, false)
	newNode(g, "a")
	newNode(g, "b")
	g.SetEdge("a", "b", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})
	g.SetEdge("a", "a", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})

	require.NoError(t, dagre.Layout(context.Background(), g, nil))

	loop := g.Edge("a", "a", "")
	require.NotNil(t, loop)
	assert.Equal(t, 5, len(loop.Label.Points))
}

func TestLayoutCompoundParentChild(t *testing.T) {
	t.Parallel()

	g := dagre.NewGraph(true, false)
	newNode(g, "cluster")
	newNode(g, "a")
	newNode(g, "b")
	require.NoError(t, g.SetParent("a", "cluster"))
	require.NoError(t, g.SetParent("b", "cluster"))
	g.SetEdge("a", "b", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})

	require.NoError(t, dagre.Layout(context.Background(), g, nil))

	cluster := g.Node("cluster")
	a, b := g.Node("a"), g.Node("b")
	assert.GreaterOrEqual(t, cluster.Label.Width, 0.0)
	assert.LessOrEqual(t, cluster.Label.X-cluster.Label.Width/2, a.Label.X)
	assert.LessOrEqual(t, cluster.Label.X-cluster.Label.Width/2, b.Label.X)
	assert.GreaterOrEqual(t, cluster.Label.X+cluster.Label.Width/2, a.Label.X)
	assert.GreaterOrEqual(t, cluster.Label.X+cluster.Label.Width/2, b.Label.X)
}

func TestLayoutK22CrossingReduction(t *testing.T) {
	t.Parallel()

	// complete bipartite K(2,2): a1,a2 -> b1,b2 with every combination.
	// Every two-layer drawing of it has exactly one crossing (a1->b2
	// against a2->b1 once both layers are ordered), so no order beats
	// another.
	g := dagre.NewGraph(false, false)
	for _, id := range []string{"a1", "a2", "b1", "b2"} {
		newNode(g, id)
	}
	g.SetEdge("a1", "b1", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})
	g.SetEdge("a1", "b2", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})
	g.SetEdge("a2", "b1", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})
	g.SetEdge("a2", "b2", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})

	require.NoError(t, dagre.Layout(context.Background(), g, nil))

	orders := map[string]int{}
	for _, id := range []string{"a1", "a2", "b1", "b2"} {
		orders[id] = g.Node(id).Label.Order
	}
	// K(2,2) is fully connected both ways, so any relative order
	// between the two ranks has the same (one) crossing; what
	// matters is that ordering assigned a valid 0..1 permutation per
	// rank, not a particular arrangement.
	assert.ElementsMatch(t, []int{0, 1}, []int{orders["a1"], orders["a2"]})
	assert.ElementsMatch(t, []int{0, 1}, []int{orders["b1"], orders["b2"]})
}

func TestLayoutRejectsNegativeWidth(t *testing.T) {
	t.Parallel()

	g := dagre.NewGraph(false, false)
	g.SetNode("a", dagre.NodeLabel{Width: -1, Height: 10})

	err := dagre.Layout(context.Background(), g, nil)
	require.Error(t, err)
}

func TestLayoutRejectsSubOneMinlen(t *testing.T) {
	t.Parallel()

	g := dagre.NewGraph(false, false)
	newNode(g, "a")
	newNode(g, "b")
	g.SetEdge("a", "b", "", dagre.EdgeLabel{Weight: 1, Minlen: 0})

	err := dagre.Layout(context.Background(), g, nil)
	require.Error(t, err)
}

func TestLayoutRejectsDanglingEdge(t *testing.T) {
	t.Parallel()

	g := dagre.NewGraph(false, false)
	newNode(g, "a")
	g.SetEdge("a", "ghost", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})

	err := dagre.Layout(context.Background(), g, nil)
	require.Error(t, err)
}

func TestLayoutRankDirLeftRight(t *testing.T) {
	t.Parallel()

	g := dagre.NewGraph(false, false)
	newNode(g, "a")
	newNode(g, "b")
	g.SetEdge("a", "b", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})

	require.NoError(t, dagre.Layout(context.Background(), g, &dagre.Options{RankDir: "lr"}))

	// with rankdir=lr the rank axis becomes X instead of Y.
	assert.Less(t, g.Node("a").Label.X, g.Node("b").Label.X)
}

func TestLayoutRankDirLeftRightReportsUntransposedCanvas(t *testing.T) {
	t.Parallel()

	// b and c share a rank, so with rankdir=lr they're spread apart
	// along the final Y axis. If Width/Height were computed from the
	// pre-undo (rotated) bounding box, the graph's reported canvas
	// would still have the two siblings' separation baked into Width
	// instead of Height, and some node would fall outside
	// [marginy, height-marginy].
	g := dagre.NewGraph(false, false)
	newNode(g, "a")
	newNode(g, "b")
	newNode(g, "c")
	g.SetEdge("a", "b", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})
	g.SetEdge("a", "c", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})

	opts := &dagre.Options{RankDir: "lr", MarginX: 5, MarginY: 5}
	require.NoError(t, dagre.Layout(context.Background(), g, opts))

	assert.Greater(t, g.Label.Height, g.Node("b").Label.Height+g.Node("c").Label.Height,
		"two siblings sharing a rank must be reflected in Height, not Width, under rankdir=lr")

	for _, id := range []string{"a", "b", "c"} {
		n := g.Node(id)
		assert.GreaterOrEqual(t, n.Label.X-n.Label.Width/2, 0.0, id)
		assert.LessOrEqual(t, n.Label.X+n.Label.Width/2, g.Label.Width, id)
		assert.GreaterOrEqual(t, n.Label.Y-n.Label.Height/2, 0.0, id)
		assert.LessOrEqual(t, n.Label.Y+n.Label.Height/2, g.Label.Height, id)
	}
}
