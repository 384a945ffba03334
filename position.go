package dagre

import "sort"

// assignX runs Brandes-Köpf horizontal coordinate assignment (§4.6,
// §2 step 13), grounded on the classic four-alignment algorithm:
// build a leftmost/rightmost alignment from upper and lower
// neighbors, compact each of the four into a block-based layout
// avoiding type-1 conflicts, then average the two medians of the four
// results. Unlike the textbook version (which assumes uniform node
// separation), the gap between any two horizontally adjacent nodes
// here is their half-widths plus NodeSep, since real and dummy nodes
// differ in width.
func assignX(g *Graph) {
	layers := buildRankOrder(g)
	if len(layers) == 0 {
		return
	}
	up, down := neighborOrder(g, layers)
	conflicts := markTypeOneConflicts(g, layers, up)

	var results [4]map[string]float64
	dirs := []struct{ useDown, leftBias bool }{
		{false, true}, {false, false}, {true, true}, {true, false},
	}
	for i, d := range dirs {
		root, align := verticalAlignment(g, layers, up, down, conflicts, d.useDown, d.leftBias)
		results[i] = horizontalCompaction(g, layers, root, align, d.leftBias)
	}

	if idx, ok := alignIndex(g.Label.Align); ok {
		for _, layer := range layers {
			for _, n := range layer {
				n.Label.X = results[idx][n.ID]
			}
		}
		return
	}

	minOf := func(m map[string]float64) float64 {
		v := 0.0
		first := true
		for _, x := range m {
			if first || x < v {
				v = x
				first = false
			}
		}
		return v
	}
	maxOf := func(m map[string]float64) float64 {
		v := 0.0
		first := true
		for _, x := range m {
			if first || x > v {
				v = x
				first = false
			}
		}
		return v
	}

	widths := make([]float64, 4)
	for i, r := range results {
		widths[i] = maxOf(r) - minOf(r)
	}
	best := 0
	for i := 1; i < 4; i++ {
		if widths[i] < widths[best] {
			best = i
		}
	}
	shift := make([]float64, 4)
	for i := range results {
		if i == 1 || i == 3 { // right-biased alignments anchor on max
			shift[i] = maxOf(results[best]) - maxOf(results[i])
		} else {
			shift[i] = minOf(results[best]) - minOf(results[i])
		}
	}

	for _, layer := range layers {
		for _, n := range layer {
			vals := []float64{
				results[0][n.ID] + shift[0],
				results[1][n.ID] + shift[1],
				results[2][n.ID] + shift[2],
				results[3][n.ID] + shift[3],
			}
			sort.Float64s(vals)
			n.Label.X = (vals[1] + vals[2]) / 2
		}
	}
}

// assignY places every node at the cumulative vertical offset of its
// rank: each rank's Y is the previous rank's Y plus half the previous
// rank's max height, RankSep, and half this rank's max height (§2
// step 14).
func assignY(g *Graph) {
	layers := buildRankOrder(g)
	y := 0.0
	prevHalf := 0.0
	for i, layer := range layers {
		maxH := 0.0
		for _, n := range layer {
			if n.Label.Height > maxH {
				maxH = n.Label.Height
			}
		}
		if i == 0 {
			y = maxH / 2
		} else {
			y += prevHalf + g.Label.RankSep + maxH/2
		}
		for _, n := range layer {
			n.Label.Y = y
		}
		prevHalf = maxH / 2
	}
}

func neighborOrder(g *Graph, layers [][]*Node) (up, down map[string][]string) {
	up = map[string][]string{}
	down = map[string][]string{}
	for _, layer := range layers {
		for _, n := range layer {
			var ups, downs []*Node
			for _, e := range g.InEdges(n.ID) {
				ups = append(ups, g.Node(e.V))
			}
			for _, e := range g.OutEdges(n.ID) {
				downs = append(downs, g.Node(e.W))
			}
			sortNodesByOrder(ups)
			sortNodesByOrder(downs)
			for _, u := range ups {
				up[n.ID] = append(up[n.ID], u.ID)
			}
			for _, d := range downs {
				down[n.ID] = append(down[n.ID], d.ID)
			}
		}
	}
	return
}

func isDummy(g *Graph, id string) bool {
	return g.Node(id).Label.Dummy != DummyNone
}

// markTypeOneConflicts flags every non-inner segment that crosses an
// inner segment (an edge between two dummy nodes), so vertical
// alignment skips over it (Brandes-Köpf §4.1).
func markTypeOneConflicts(g *Graph, layers [][]*Node, up map[string][]string) map[[2]string]bool {
	conflicts := map[[2]string]bool{}
	for i := 0; i+1 < len(layers); i++ {
		next := layers[i+1]
		k0 := 0
		l := 0
		for l1, v := range next {
			innerUpper := ""
			for _, u := range up[v.ID] {
				if isDummy(g, u) && isDummy(g, v.ID) {
					innerUpper = u
					break
				}
			}
			if l1 == len(next)-1 || innerUpper != "" {
				k1 := len(layers[i]) - 1
				if innerUpper != "" {
					k1 = g.Node(innerUpper).Label.Order
				}
				for l <= l1 {
					for _, u := range up[next[l].ID] {
						if k := g.Node(u).Label.Order; k < k0 || k > k1 {
							conflicts[[2]string{u, next[l].ID}] = true
						}
					}
					l++
				}
				k0 = k1
			}
		}
	}
	return conflicts
}

// verticalAlignment greedily aligns each node with one upper (or
// lower) neighbor near the median, skipping type-1 conflicts, to
// build blocks of vertically stacked nodes (Brandes-Köpf Alg. 2).
func verticalAlignment(g *Graph, layers [][]*Node, up, down map[string][]string, conflicts map[[2]string]bool, useDown, leftBias bool) (root, align map[string]string) {
	root = map[string]string{}
	align = map[string]string{}
	for _, layer := range layers {
		for _, n := range layer {
			root[n.ID] = n.ID
			align[n.ID] = n.ID
		}
	}

	order := make([]int, len(layers))
	for i := range layers {
		order[i] = i
	}
	if useDown {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	neighborsOf := up
	if useDown {
		neighborsOf = down
	}

	const bigOrder = 1 << 30
	for _, li := range order {
		layer := layers[li]
		r := -1
		if !leftBias {
			r = bigOrder
		}
		indices := make([]int, len(layer))
		for i := range indices {
			indices[i] = i
		}
		if !leftBias {
			for i, j := 0, len(indices)-1; i < j; i, j = i+1, j-1 {
				indices[i], indices[j] = indices[j], indices[i]
			}
		}
		for _, idx := range indices {
			v := layer[idx]
			neigh := neighborsOf[v.ID]
			d := len(neigh)
			if d == 0 {
				continue
			}
			lo, hi := (d-1)/2, (d+1)/2
			var scan []int
			if leftBias {
				for m := lo; m <= hi && m < d; m++ {
					scan = append(scan, m)
				}
			} else {
				for m := hi; m >= lo && m >= 0; m-- {
					if m < d {
						scan = append(scan, m)
					}
				}
			}
			for _, m := range scan {
				if align[v.ID] != v.ID {
					break
				}
				u := neigh[m]
				key := [2]string{u, v.ID}
				if useDown {
					key = [2]string{v.ID, u}
				}
				uOrder := g.Node(u).Label.Order
				var cond bool
				if leftBias {
					cond = r < uOrder
				} else {
					cond = r > uOrder
				}
				if !conflicts[key] && cond {
					align[u] = v.ID
					root[v.ID] = root[u]
					align[v.ID] = root[v.ID]
					r = uOrder
				}
			}
		}
	}
	return
}

// alignIndex maps the Options.Align override to one of the four
// assignX directions; dirs[0..3] are ul, ur, dl, dr in that order.
func alignIndex(align string) (int, bool) {
	switch align {
	case "ul":
		return 0, true
	case "ur":
		return 1, true
	case "dl":
		return 2, true
	case "dr":
		return 3, true
	default:
		return 0, false
	}
}

func sep(g *Graph, a, b string) float64 {
	na, nb := g.Node(a), g.Node(b)
	return na.Label.Width/2 + nb.Label.Width/2 + g.Label.NodeSep
}

// horizontalCompaction places each block at the coordinate implied by
// its predecessor block in the same class, then shifts classes apart
// just enough to clear their minimum separation (Brandes-Köpf Alg. 3).
func horizontalCompaction(g *Graph, layers [][]*Node, root, align map[string]string, leftBias bool) map[string]float64 {
	sink := map[string]string{}
	shift := map[string]float64{}
	x := map[string]float64{}
	const inf = 1e18

	for id := range root {
		sink[id] = id
		if leftBias {
			shift[id] = inf
		} else {
			shift[id] = -inf
		}
	}

	var placeBlock func(v string)
	placeBlock = func(v string) {
		if _, ok := x[v]; ok {
			return
		}
		x[v] = 0
		w := v
		for {
			n := g.Node(w)
			var hasPred bool
			if leftBias {
				hasPred = n.Label.Order > 0
			} else {
				hasPred = n.Label.Order < len(layers[n.Label.Rank])-1
			}
			if hasPred {
				var predID string
				if leftBias {
					predID = layers[n.Label.Rank][n.Label.Order-1].ID
				} else {
					predID = layers[n.Label.Rank][n.Label.Order+1].ID
				}
				u := root[predID]
				placeBlock(u)
				if sink[v] == v {
					sink[v] = sink[u]
				}
				gap := sep(g, predID, w)
				if sink[v] != sink[u] {
					if leftBias {
						if s := x[v] - x[u] - gap; s < shift[sink[u]] {
							shift[sink[u]] = s
						}
					} else {
						if s := x[v] - x[u] + gap; s > shift[sink[u]] {
							shift[sink[u]] = s
						}
					}
				} else {
					if leftBias {
						if s := x[u] + gap; s > x[v] {
							x[v] = s
						}
					} else {
						if s := x[u] - gap; s < x[v] {
							x[v] = s
						}
					}
				}
			}
			if align[w] == v {
				break
			}
			w = align[w]
		}
		for align[w] != v {
			w = align[w]
			x[w] = x[v]
			sink[w] = sink[v]
		}
	}

	for id := range root {
		if root[id] == id {
			placeBlock(id)
		}
	}

	for _, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		var first string
		if leftBias {
			first = layer[0].ID
		} else {
			first = layer[len(layer)-1].ID
		}
		if sink[first] != first {
			continue
		}
		if leftBias && shift[sink[first]] == inf {
			shift[sink[first]] = 0
		}
		if !leftBias && shift[sink[first]] == -inf {
			shift[sink[first]] = 0
		}
	}

	for id := range root {
		x[id] += shift[sink[id]]
	}
	return x
}
