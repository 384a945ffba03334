package dagre

import "sort"

// normalize replaces every edge spanning more than one rank with a
// chain of single-rank dummy edges, one dummy node per intermediate
// rank, so every later stage (ordering, position assignment) only
// ever has to deal with adjacent-rank edges (§2 step 8, §4.4). The
// original edges are removed from the graph but returned so
// denormalize can restore them once the dummies have coordinates.
func normalize(g *Graph) []*Edge {
	var longEdges []*Edge
	for _, key := range sortedEdgeKeys(g) {
		e := g.edges[key]
		if e.V == e.W {
			continue
		}
		vRank := g.Node(e.V).Label.Rank
		wRank := g.Node(e.W).Label.Rank
		if wRank-vRank <= 1 {
			continue
		}

		labelRank := vRank + (wRank-vRank)/2
		weight := e.Label.Weight
		if weight <= 0 {
			weight = 1
		}

		prev := e.V
		chain := make([]string, 0, wRank-vRank-1)
		for r := vRank + 1; r < wRank; r++ {
			id := g.nextDummyID("d")
			width, height := 1.0, 1.0
			kind := DummyEdge
			if r == labelRank && e.Label.HasLabel {
				kind = DummyEdgeProxy
				width, height = e.Label.Width, e.Label.Height
			}
			g.SetNode(id, NodeLabel{Dummy: kind, Rank: r, Width: width, Height: height})
			g.SetEdge(prev, id, "", EdgeLabel{Weight: weight, Minlen: 1})
			chain = append(chain, id)
			prev = id
		}
		g.SetEdge(prev, e.W, "", EdgeLabel{Weight: weight, Minlen: 1})

		e.chain = chain
		g.RemoveEdge(e)
		longEdges = append(longEdges, e)
	}
	return longEdges
}

// denormalize collapses each long edge's dummy chain back into a
// polyline on the original edge and restores that edge to the graph
// (§2 step 16).
func denormalize(g *Graph, longEdges []*Edge) {
	for _, e := range longEdges {
		points := make([]Point, 0, len(e.chain))
		for _, id := range e.chain {
			n := g.Node(id)
			points = append(points, Point{X: n.Label.X, Y: n.Label.Y})
			if n.Label.Dummy == DummyEdgeProxy {
				e.Label.X, e.Label.Y = n.Label.X, n.Label.Y
			}
			g.RemoveNode(id)
		}
		e.Label.Points = points
		e.chain = nil

		key := edgeKey(e.V, e.W, e.Name)
		g.edges[key] = e
		g.outEdges[e.V] = append(g.outEdges[e.V], e)
		g.inEdges[e.W] = append(g.inEdges[e.W], e)
	}
}

// fixupEdgeLabelAnchors shifts each labeled edge's anchor
// perpendicular to the rank axis by labeloffset, according to
// labelpos: l(eft) and r(ight) offset from the edge's own x; c(enter)
// leaves it alone (§2 step 18). Runs before undoCoordSystem, so "x" is
// still the lateral axis regardless of the caller's rankdir.
func fixupEdgeLabelAnchors(g *Graph) {
	for _, e := range g.Edges() {
		if !e.Label.HasLabel {
			continue
		}
		switch normalizeCase(e.Label.Labelpos) {
		case "l":
			e.Label.X -= e.Label.Labeloffset
		case "r":
			e.Label.X += e.Label.Labeloffset
		}
	}
}

func sortedEdgeKeys(g *Graph) []string {
	keys := make([]string, 0, len(g.edges))
	for k := range g.edges {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
