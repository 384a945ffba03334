package dagre

// adjustCoordSystem rotates/reflects the graph so the rest of the
// pipeline can always assume top-to-bottom flow (§4.8, §2 step 4). tb
// is the identity; the others swap and/or negate X and Y.
func adjustCoordSystem(g *Graph) {
	switch g.Label.RankDir {
	case "bt":
		flipY(g)
	case "lr":
		swapXY(g)
	case "rl":
		swapXY(g)
		flipY(g)
	}
}

// undoCoordSystem applies the inverse of adjustCoordSystem once
// coordinates have been assigned, so the caller's output is in their
// requested RankDir (§2 step 18).
func undoCoordSystem(g *Graph) {
	switch g.Label.RankDir {
	case "bt":
		flipY(g)
	case "lr":
		swapXY(g)
	case "rl":
		flipY(g)
		swapXY(g)
	}
}

func flipY(g *Graph) {
	for _, id := range sortedIDs(g.nodes) {
		n := g.Node(id)
		n.Label.Y = -n.Label.Y
	}
	for _, e := range g.Edges() {
		for i := range e.Label.Points {
			e.Label.Points[i].Y = -e.Label.Points[i].Y
		}
		if e.Label.HasLabel {
			e.Label.Y = -e.Label.Y
		}
	}
}

func swapXY(g *Graph) {
	for _, id := range sortedIDs(g.nodes) {
		n := g.Node(id)
		n.Label.X, n.Label.Y = n.Label.Y, n.Label.X
		n.Label.Width, n.Label.Height = n.Label.Height, n.Label.Width
	}
	for _, e := range g.Edges() {
		for i, p := range e.Label.Points {
			e.Label.Points[i] = Point{X: p.Y, Y: p.X}
		}
		if e.Label.HasLabel {
			e.Label.X, e.Label.Y = e.Label.Y, e.Label.X
			e.Label.Width, e.Label.Height = e.Label.Height, e.Label.Width
		}
	}
}
