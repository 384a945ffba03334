package dagre

import "math"

// translateGraph shifts every coordinate so the drawing's bounding
// box starts at (MarginX, MarginY) and sets the graph's Width/Height
// to enclose it (§4.7, §2 step 17).
func translateGraph(g *Graph) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	has := false

	consider := func(x, y, w, h float64) {
		has = true
		minX = minFloat(minX, x-w/2)
		maxX = maxFloat(maxX, x+w/2)
		minY = minFloat(minY, y-h/2)
		maxY = maxFloat(maxY, y+h/2)
	}

	for _, id := range sortedIDs(g.nodes) {
		n := g.Node(id)
		consider(n.Label.X, n.Label.Y, n.Label.Width, n.Label.Height)
	}
	for _, e := range g.Edges() {
		for _, p := range e.Label.Points {
			consider(p.X, p.Y, 0, 0)
		}
		if e.Label.HasLabel {
			consider(e.Label.X, e.Label.Y, e.Label.Width, e.Label.Height)
		}
	}
	if !has {
		g.Label.Width, g.Label.Height = 0, 0
		return
	}

	dx := g.Label.MarginX - minX
	dy := g.Label.MarginY - minY

	for _, id := range sortedIDs(g.nodes) {
		n := g.Node(id)
		n.Label.X += dx
		n.Label.Y += dy
	}
	for _, e := range g.Edges() {
		for i := range e.Label.Points {
			e.Label.Points[i].X += dx
			e.Label.Points[i].Y += dy
		}
		if e.Label.HasLabel {
			e.Label.X += dx
			e.Label.Y += dy
		}
	}

	g.Label.Width = maxX - minX + 2*g.Label.MarginX
	g.Label.Height = maxY - minY + 2*g.Label.MarginY
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
