package dagre_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2dagre/layout"
)

func TestGraphBasics(t *testing.T) {
	t.Parallel()

	g := dagre.NewGraph(true, false)
	g.SetNode("a", dagre.NodeLabel{Width: 10, Height: 10})
	g.SetNode("b", dagre.NodeLabel{Width: 10, Height: 10})
	g.SetEdge("a", "b", "", dagre.EdgeLabel{Weight: 1, Minlen: 1})

	assert.True(t, g.HasNode("a"))
	assert.False(t, g.HasNode("c"))
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, []string{"b"}, g.Successors("a"))
	assert.Equal(t, []string{"a"}, g.Predecessors("b"))

	require.NoError(t, g.SetParent("a", "b"))
	assert.Equal(t, "b", g.Parent("a"))
	assert.Equal(t, []string{"a"}, g.Children("b"))

	g.RemoveNode("b")
	assert.False(t, g.HasNode("b"))
	assert.Nil(t, g.Edge("a", "b", ""))
	assert.Equal(t, "", g.Parent("a"))
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	def := dagre.DefaultOptions()
	assert.Equal(t, "tb", def.RankDir)
	assert.Equal(t, "network-simplex", def.Ranker)
	assert.Equal(t, "greedy", def.Acyclicer)
}
