package dagre

import "math"

// trimEdgesToNodes shortens every edge's polyline so it starts and
// ends on its endpoint nodes' borders instead of their centers,
// intersecting the first/last segment against each node's bounding
// rectangle (§4.7, §2 step 17). An edge with no interior points is
// intersected along the line between the two node centers.
func trimEdgesToNodes(g *Graph) error {
	for _, e := range g.Edges() {
		if e.V == e.W {
			continue // curveSelfEdges already anchored this loop to its node's border
		}
		v, w := g.Node(e.V), g.Node(e.W)
		if v == nil || w == nil {
			continue
		}
		first, last := Point{X: w.Label.X, Y: w.Label.Y}, Point{X: v.Label.X, Y: v.Label.Y}
		if len(e.Label.Points) > 0 {
			first, last = e.Label.Points[0], e.Label.Points[len(e.Label.Points)-1]
		}
		start, err := rectIntersect(v, first)
		if err != nil {
			return wrapInvariant("trim-edges", err.Error())
		}
		end, err := rectIntersect(w, last)
		if err != nil {
			return wrapInvariant("trim-edges", err.Error())
		}
		pts := make([]Point, 0, len(e.Label.Points)+2)
		pts = append(pts, start)
		pts = append(pts, e.Label.Points...)
		pts = append(pts, end)
		e.Label.Points = pts
	}
	return nil
}

// rectIntersect finds where the segment from a node's center to point
// p crosses that node's bounding rectangle.
func rectIntersect(n *Node, p Point) (Point, error) {
	cx, cy := n.Label.X, n.Label.Y
	dx, dy := p.X-cx, p.Y-cy
	if dx == 0 && dy == 0 {
		return Point{}, &GeometryError{Reason: "zero-length direction vector from node center to target point"}
	}
	hw, hh := n.Label.Width/2, n.Label.Height/2
	if hw == 0 && hh == 0 {
		return Point{X: cx, Y: cy}, nil
	}

	var sx, sy float64
	if hw == 0 {
		sx = math.Inf(1)
	} else {
		sx = hw / math.Abs(dx)
	}
	if hh == 0 {
		sy = math.Inf(1)
	} else {
		sy = hh / math.Abs(dy)
	}
	if dx == 0 {
		sx = math.Inf(1)
	}
	if dy == 0 {
		sy = math.Inf(1)
	}
	s := math.Min(sx, sy)
	if math.IsInf(s, 1) {
		return Point{X: cx, Y: cy}, nil
	}
	return Point{X: cx + dx*s, Y: cy + dy*s}, nil
}
