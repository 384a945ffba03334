package dagre

// addBorderSegments gives every compound (non-leaf) node a pair of
// border dummies — BorderTop and BorderBottom — that bound its
// vertical extent, plus one BorderLeft/BorderRight dummy per rank its
// subtree spans, reserving the horizontal room ordering and position
// assignment need to draw the cluster as a box around its children
// (§4.7, §2 step 7).
func addBorderSegments(g *Graph) {
	for _, id := range sortedIDs(g.nodes) {
		if len(g.Children(id)) == 0 || g.Parent(id) != "" {
			continue // nested clusters are handled by their ancestor's recursion
		}
		addBorderSegmentsForNode(g, id, 0)
	}
}

func addBorderSegmentsForNode(g *Graph, id string, depth int) {
	for _, c := range g.Children(id) {
		if len(g.Children(c)) > 0 {
			addBorderSegmentsForNode(g, c, depth+1)
		}
	}

	n := g.Node(id)
	if n.Label.BorderLeft == nil {
		n.Label.BorderLeft = map[int]string{}
	}
	if n.Label.BorderRight == nil {
		n.Label.BorderRight = map[int]string{}
	}

	minRank, maxRank := minMaxChildRank(g, id)
	n.Label.MinRank, n.Label.MaxRank = minRank, maxRank

	var prevLeft, prevRight string
	for r := minRank; r <= maxRank; r++ {
		leftID := g.nextDummyID("bl")
		rightID := g.nextDummyID("br")
		g.SetNode(leftID, NodeLabel{Dummy: DummyBorder, Rank: r, Width: 1, Height: 1})
		g.SetNode(rightID, NodeLabel{Dummy: DummyBorder, Rank: r, Width: 1, Height: 1})
		g.SetParent(leftID, id)
		g.SetParent(rightID, id)
		n.Label.BorderLeft[r] = leftID
		n.Label.BorderRight[r] = rightID

		// Chain consecutive same-side border dummies with a zero-weight
		// edge so ordering and position assignment keep a cluster's
		// left/right walls stacked directly above one another instead of
		// drifting independently rank to rank.
		if prevLeft != "" {
			g.SetEdge(prevLeft, leftID, "", EdgeLabel{Weight: 0, Minlen: 1})
			g.SetEdge(prevRight, rightID, "", EdgeLabel{Weight: 0, Minlen: 1})
		}
		prevLeft, prevRight = leftID, rightID
	}

	topID := g.nextDummyID("bt")
	bottomID := g.nextDummyID("bb")
	g.SetNode(topID, NodeLabel{Dummy: DummyBorder, Rank: minRank, Width: 0, Height: 0})
	g.SetNode(bottomID, NodeLabel{Dummy: DummyBorder, Rank: maxRank, Width: 0, Height: 0})
	g.SetParent(topID, id)
	g.SetParent(bottomID, id)
	n.Label.BorderTop = topID
	n.Label.BorderBottom = bottomID
}

// removeBorderSegments computes each compound node's bounding box from
// its border dummies' final coordinates, then deletes the dummies
// (§2 step 16). Call after positioning and self-edge curves, before
// denormalize.
func removeBorderSegments(g *Graph) {
	for _, id := range sortedIDs(g.nodes) {
		n := g.Node(id)
		if n.Label.BorderTop == "" {
			continue
		}
		top := g.Node(n.Label.BorderTop)
		bottom := g.Node(n.Label.BorderBottom)

		minX, maxX := 0.0, 0.0
		first := true
		for _, leftID := range n.Label.BorderLeft {
			x := g.Node(leftID).Label.X
			if first || x < minX {
				minX = x
				first = false
			}
		}
		first = true
		for _, rightID := range n.Label.BorderRight {
			x := g.Node(rightID).Label.X
			if first || x > maxX {
				maxX = x
				first = false
			}
		}

		n.Label.X = (minX + maxX) / 2
		n.Label.Y = (top.Label.Y + bottom.Label.Y) / 2
		n.Label.Width = maxX - minX
		n.Label.Height = bottom.Label.Y - top.Label.Y

		for _, leftID := range n.Label.BorderLeft {
			g.RemoveNode(leftID)
		}
		for _, rightID := range n.Label.BorderRight {
			g.RemoveNode(rightID)
		}
		g.RemoveNode(n.Label.BorderTop)
		g.RemoveNode(n.Label.BorderBottom)
		n.Label.BorderTop, n.Label.BorderBottom = "", ""
		n.Label.BorderLeft, n.Label.BorderRight = nil, nil
	}
}

// minMaxChildRank scans id's already-ranked descendants for the rank
// range its box must cover. Call only after rank assignment.
func minMaxChildRank(g *Graph, id string) (int, int) {
	min, max := 0, 0
	first := true
	var walk func(v string)
	walk = func(v string) {
		for _, c := range g.Children(v) {
			n := g.Node(c)
			if len(g.Children(c)) == 0 {
				if first || n.Label.Rank < min {
					min = n.Label.Rank
					first = false
				}
				if n.Label.Rank > max {
					max = n.Label.Rank
				}
			}
			walk(c)
		}
	}
	walk(id)
	return min, max
}
