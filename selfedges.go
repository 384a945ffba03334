package dagre

// exciseSelfEdges removes every self-loop a->a, remembering it on a's
// label so it can be rewoven into the ordering later (§2 step 3).
func exciseSelfEdges(g *Graph) {
	for _, e := range g.Edges() {
		if e.V != e.W {
			continue
		}
		n := g.Node(e.V)
		n.Label.SelfEdges = append(n.Label.SelfEdges, &SelfEdge{
			Edge:        e,
			Weight:      e.Label.Weight,
			Minlen:      e.Label.Minlen,
			Width:       e.Label.Width,
			Height:      e.Label.Height,
			Labelpos:    e.Label.Labelpos,
			Labeloffset: e.Label.Labeloffset,
		})
		g.RemoveEdge(e)
	}
}

// reinsertSelfEdges weaves a dummy per self-loop back into the
// ordering right after its owner (§2 step 12), reserving the
// horizontal room positioning will need for the loop.
func reinsertSelfEdges(g *Graph) {
	for _, rank := range buildRankOrder(g) {
		shift := 0
		for _, n := range rank {
			if shift > 0 {
				n.Label.Order += shift
			}
			loops := n.Label.SelfEdges
			if len(loops) == 0 {
				continue
			}
			for i, se := range loops {
				id := g.nextDummyID("self")
				width := se.Width
				if width == 0 {
					width = n.Label.Height / 2
				}
				g.SetNode(id, NodeLabel{
					Dummy:  DummySelfEdge,
					Rank:   n.Label.Rank,
					Order:  n.Label.Order + i + 1,
					Width:  width,
					Height: n.Label.Height,
				})
				shift++
			}
		}
	}
}

// buildRankOrder groups every non-compound node (real or dummy) by
// rank, sorted by current Order, snapshotting the slice so callers may
// mutate Order while iterating.
func buildRankOrder(g *Graph) [][]*Node {
	byRank := map[int][]*Node{}
	maxRank := -1
	for _, id := range sortedIDs(g.nodes) {
		if len(g.Children(id)) > 0 {
			continue // compound parents are positioned from their border dummies, not ranked directly
		}
		n := g.Node(id)
		byRank[n.Label.Rank] = append(byRank[n.Label.Rank], n)
		if n.Label.Rank > maxRank {
			maxRank = n.Label.Rank
		}
	}
	out := make([][]*Node, maxRank+1)
	for r := 0; r <= maxRank; r++ {
		nodes := byRank[r]
		sortNodesByOrder(nodes)
		out[r] = nodes
	}
	return out
}

// curveSelfEdges computes the five-point loop polyline for each
// self-edge dummy, removes the dummy, and reinstates the original
// edge (with its label anchor) into the graph (§4.7, §2 step 15).
func curveSelfEdges(g *Graph) {
	for _, id := range sortedIDs(g.nodes) {
		n := g.Node(id)
		if len(n.Label.SelfEdges) == 0 {
			continue
		}
		x, y := n.Label.X, n.Label.Y
		hw, hh := n.Label.Width/2, n.Label.Height/2

		dummyIDs := make([]string, 0, len(n.Label.SelfEdges))
		for range n.Label.SelfEdges {
			dummyIDs = append(dummyIDs, "")
		}
		candidates := sortedIDs(g.nodes)
		di := 0
		for _, cid := range candidates {
			c := g.Node(cid)
			if c.Label.Dummy == DummySelfEdge && c.Label.Rank == n.Label.Rank && c.Label.Order > n.Label.Order &&
				c.Label.Order <= n.Label.Order+len(n.Label.SelfEdges) {
				if di < len(dummyIDs) {
					dummyIDs[di] = cid
					di++
				}
			}
		}

		for i, se := range n.Label.SelfEdges {
			loopOut := hw + 20 + float64(i)*20
			se.Edge.Label.Points = []Point{
				{X: x + hw, Y: y - hh/3},
				{X: x + loopOut, Y: y - hh/2},
				{X: x + loopOut, Y: y},
				{X: x + loopOut, Y: y + hh/2},
				{X: x + hw, Y: y + hh/3},
			}
			if se.Width > 0 && se.Height > 0 {
				se.Edge.Label.HasLabel = true
				se.Edge.Label.X = x + loopOut
				se.Edge.Label.Y = y
			}
			se.Edge.Label.Weight = se.Weight
			se.Edge.Label.Minlen = se.Minlen
			key := edgeKey(se.Edge.V, se.Edge.W, se.Edge.Name)
			g.edges[key] = se.Edge
			g.outEdges[se.Edge.V] = append(g.outEdges[se.Edge.V], se.Edge)
			g.inEdges[se.Edge.W] = append(g.inEdges[se.Edge.W], se.Edge)
		}
		n.Label.SelfEdges = nil
		for i := 0; i < di; i++ {
			if dummyIDs[i] != "" {
				g.RemoveNode(dummyIDs[i])
			}
		}
	}
}
