package dagre

import "sort"

// acyclicize picks an orientation for every edge so the graph becomes
// a DAG, returning the edges it reversed (Label.Reversed is also set
// on each, and acyclicUndo uses exactly this set to restore the
// original orientation in the final stage).
func acyclicize(g *Graph, strategy string) []*Edge {
	var reversed []*Edge
	switch strategy {
	case "dfs":
		reversed = acyclicDFS(g)
	default: // "greedy"
		reversed = acyclicGreedyFAS(g)
	}
	for _, e := range reversed {
		e.V, e.W = e.W, e.V
		e.Label.Reversed = true
	}
	return reversed
}

// acyclicUndo restores the edges acyclicize flipped, reversing their
// final polylines to match (the set reversed here is exactly the set
// acyclicize returned, per the round-trip invariant).
func acyclicUndo(reversed []*Edge) {
	for _, e := range reversed {
		e.V, e.W = e.W, e.V
		for i, j := 0, len(e.Label.Points)-1; i < j; i, j = i+1, j-1 {
			e.Label.Points[i], e.Label.Points[j] = e.Label.Points[j], e.Label.Points[i]
		}
	}
}

// acyclicDFS reverses every edge to an on-stack ("gray") node found
// during a DFS from each unvisited node.
func acyclicDFS(g *Graph) []*Edge {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.nodes))
	var reversed []*Edge

	var visit func(v string)
	visit = func(v string) {
		color[v] = gray
		for _, e := range append([]*Edge{}, g.outEdges[v]...) {
			switch color[e.W] {
			case white:
				visit(e.W)
			case gray:
				reversed = append(reversed, e)
			}
		}
		color[v] = black
	}

	for _, v := range sortedIDs(g.nodes) {
		if color[v] == white {
			visit(v)
		}
	}
	return reversed
}

// acyclicGreedyFAS computes a feedback arc set via the Eades-Lin-Smyth
// heuristic (§4.1): a bucket queue keyed by weighted out-degree minus
// in-degree repeatedly drains pure sinks and pure sources, then (when
// only interior nodes remain) removes the node with the highest
// out-minus-in degree. The two resulting sequences concatenate into a
// vertex order; any edge running against that order is feedback.
func acyclicGreedyFAS(g *Graph) []*Edge {
	type agg struct {
		out, in map[string]float64
		outDeg  float64
		inDeg   float64
	}
	deg := make(map[string]*agg, len(g.nodes))
	for _, id := range sortedIDs(g.nodes) {
		deg[id] = &agg{out: map[string]float64{}, in: map[string]float64{}}
	}
	for _, e := range g.Edges() {
		if e.V == e.W {
			continue // self-edges are excised before acyclicization
		}
		w := e.Label.Weight
		if w <= 0 {
			w = 1
		}
		deg[e.V].out[e.W] += w
		deg[e.V].outDeg += w
		deg[e.W].in[e.V] += w
		deg[e.W].inDeg += w
	}

	maxIn, maxOut := 0, 0
	for _, id := range sortedIDs(g.nodes) {
		if int(deg[id].inDeg) > maxIn {
			maxIn = int(deg[id].inDeg)
		}
		if int(deg[id].outDeg) > maxOut {
			maxOut = int(deg[id].outDeg)
		}
	}
	zeroIdx := maxIn + 1
	buckets := make([]map[string]bool, maxIn+maxOut+3)
	for i := range buckets {
		buckets[i] = map[string]bool{}
	}
	nodeBucket := map[string]int{}

	bucketFor := func(id string) int {
		a := deg[id]
		if a.outDeg == 0 {
			return 0
		}
		if a.inDeg == 0 {
			return len(buckets) - 1
		}
		idx := int(a.outDeg-a.inDeg) + zeroIdx
		if idx < 1 {
			idx = 1
		}
		if idx > len(buckets)-2 {
			idx = len(buckets) - 2
		}
		return idx
	}

	remaining := map[string]bool{}
	for _, id := range sortedIDs(g.nodes) {
		remaining[id] = true
		b := bucketFor(id)
		buckets[b][id] = true
		nodeBucket[id] = b
	}

	rebucket := func(id string) {
		if !remaining[id] {
			return
		}
		old := nodeBucket[id]
		nb := bucketFor(id)
		if nb == old {
			return
		}
		delete(buckets[old], id)
		buckets[nb][id] = true
		nodeBucket[id] = nb
	}

	remove := func(id string) {
		delete(buckets[nodeBucket[id]], id)
		delete(remaining, id)
		for other := range deg[id].out {
			if remaining[other] {
				deg[other].inDeg -= deg[id].out[other]
				delete(deg[other].in, id)
				rebucket(other)
			}
		}
		for other := range deg[id].in {
			if remaining[other] {
				deg[other].outDeg -= deg[id].in[other]
				delete(deg[other].out, id)
				rebucket(other)
			}
		}
	}

	takeAny := func(m map[string]bool) string {
		ids := make([]string, 0, len(m))
		for id := range m {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return ids[0]
	}

	var s1, s2 []string
	for len(remaining) > 0 {
		for len(buckets[0]) > 0 {
			id := takeAny(buckets[0])
			s2 = append(s2, id)
			remove(id)
		}
		for len(buckets[len(buckets)-1]) > 0 {
			id := takeAny(buckets[len(buckets)-1])
			s1 = append(s1, id)
			remove(id)
		}
		if len(remaining) == 0 {
			break
		}
		best := -1
		for i := len(buckets) - 2; i >= 1; i-- {
			if len(buckets[i]) > 0 {
				best = i
				break
			}
		}
		if best == -1 {
			break
		}
		id := takeAny(buckets[best])
		s1 = append(s1, id)
		remove(id)
	}

	order := make(map[string]int, len(s1)+len(s2))
	i := 0
	for _, id := range s1 {
		order[id] = i
		i++
	}
	for j := len(s2) - 1; j >= 0; j-- {
		order[s2[j]] = i
		i++
	}

	var reversed []*Edge
	for _, e := range g.Edges() {
		if e.V == e.W {
			continue
		}
		if order[e.V] > order[e.W] {
			reversed = append(reversed, e)
		}
	}
	return reversed
}

func sortedIDs(m map[string]*Node) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
