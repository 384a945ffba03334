package dagre

// nodeRankFactor resolves the open question in §9: removeEmptyRanks
// only compacts away an empty rank when its index is not a multiple
// of this factor; ranks at multiples of it are kept even when empty.
// 4 is the suggested default.
const nodeRankFactor = 4

// nsEdge is the aggregated, simple-graph view of one or more parallel
// edges used by rank assignment: multi-edges are summed into one
// weight and maxed into one minlen before ranking runs.
type nsEdge struct {
	V, W     string
	Weight   float64
	Minlen   int
	Tree     bool
	Cutvalue float64
}

type nsNodeInfo struct {
	low, lim  int
	parent    string
	hasParent bool
}

// buildSimpleEdges aggregates every parallel edge between the same
// ordered pair of nodes into one nsEdge (§4.2).
func buildSimpleEdges(g *Graph) []*nsEdge {
	agg := map[[2]string]*nsEdge{}
	var order [][2]string
	for _, e := range g.Edges() {
		if e.V == e.W {
			continue
		}
		key := [2]string{e.V, e.W}
		se, ok := agg[key]
		if !ok {
			w := e.Label.Weight
			if w <= 0 {
				w = 1
			}
			se = &nsEdge{V: e.V, W: e.W, Weight: w, Minlen: e.Label.Minlen}
			agg[key] = se
			order = append(order, key)
			continue
		}
		w := e.Label.Weight
		if w <= 0 {
			w = 1
		}
		se.Weight += w
		se.Minlen = maxInt(se.Minlen, e.Label.Minlen)
	}
	out := make([]*nsEdge, 0, len(order))
	for _, key := range order {
		out = append(out, agg[key])
	}
	return out
}

func buildAdj(edges []*nsEdge) (out, in map[string][]*nsEdge) {
	out = map[string][]*nsEdge{}
	in = map[string][]*nsEdge{}
	for _, e := range edges {
		out[e.V] = append(out[e.V], e)
		in[e.W] = append(in[e.W], e)
	}
	return
}

// assignRanks runs §4.2's rank assignment on every node currently in
// the graph (the flattened, acyclic, nesting-augmented view by this
// point in the pipeline) and normalizes the result.
func assignRanks(g *Graph, ranker string) {
	// Compound parent nodes are never direct participants in ranking —
	// their rank span is derived from their descendants by border.go
	// once ranks exist. Only leaves (real or dummy) get a rank.
	var ids []string
	for _, id := range sortedIDs(g.nodes) {
		if len(g.Children(id)) == 0 {
			ids = append(ids, id)
		}
	}
	edges := buildSimpleEdges(g)

	var ranks map[string]int
	switch ranker {
	case "longest-path":
		ranks = longestPathRanks(ids, edges)
	case "tight-tree":
		ranks = longestPathRanks(ids, edges)
		tightenToTree(ids, edges, ranks)
	default: // network-simplex
		ranks = networkSimplexRanks(ids, edges)
	}

	for _, id := range ids {
		g.Node(id).Label.Rank = ranks[id]
	}
	normalizeRanks(g)
}

// longestPathRanks assigns rank(v) = max over predecessors u of
// rank(u) + minlen(u, v), roots at 0; memoized DFS over a DAG.
func longestPathRanks(ids []string, edges []*nsEdge) map[string]int {
	_, in := buildAdj(edges)
	ranks := map[string]int{}
	var visit func(v string) int
	visiting := map[string]bool{}
	visit = func(v string) int {
		if r, ok := ranks[v]; ok {
			return r
		}
		if visiting[v] {
			// a cycle slipped through acyclicization somehow; break it
			// rather than recurse forever.
			return 0
		}
		visiting[v] = true
		best := 0
		for _, e := range in[v] {
			best = maxInt(best, visit(e.V)+e.Minlen)
		}
		visiting[v] = false
		ranks[v] = best
		return best
	}
	for _, id := range ids {
		visit(id)
	}
	return ranks
}

func slack(e *nsEdge, ranks map[string]int) int {
	return ranks[e.W] - ranks[e.V] - e.Minlen
}

// feasibleTree grows a spanning tree of zero-slack edges, shifting
// the whole tree component by the smallest slack among edges leaving
// it each time it must cross a slack gap, until every node is
// connected (§4.2 tight-tree).
func feasibleTree(ids []string, edges []*nsEdge, ranks map[string]int) map[string][]*nsEdge {
	treeAdj := map[string][]*nsEdge{}
	inTree := map[string]bool{ids[0]: true}
	total := len(ids)

	growTight := func() {
		changed := true
		for changed {
			changed = false
			for _, e := range edges {
				vIn, wIn := inTree[e.V], inTree[e.W]
				if vIn == wIn {
					continue
				}
				if slack(e, ranks) != 0 {
					continue
				}
				treeAdj[e.V] = append(treeAdj[e.V], e)
				treeAdj[e.W] = append(treeAdj[e.W], e)
				inTree[e.V] = true
				inTree[e.W] = true
				changed = true
			}
		}
	}

	treeSize := func() int {
		n := 0
		for range inTree {
			n++
		}
		return n
	}

	growTight()
	for treeSize() < total {
		var best *nsEdge
		bestSlack := 0
		for _, e := range edges {
			vIn, wIn := inTree[e.V], inTree[e.W]
			if vIn == wIn {
				continue
			}
			s := slack(e, ranks)
			if best == nil || s < bestSlack {
				best = e
				bestSlack = s
			}
		}
		if best == nil {
			// disconnected from the rest; join arbitrarily, ranks already valid
			for _, id := range ids {
				if !inTree[id] {
					inTree[id] = true
					break
				}
			}
			continue
		}
		delta := bestSlack
		if !inTree[best.V] {
			delta = -delta
		}
		for id := range inTree {
			ranks[id] += delta
		}
		growTight()
	}
	return treeAdj
}

func otherEnd(e *nsEdge, v string) string {
	if e.V == v {
		return e.W
	}
	return e.V
}

func dfsLowLim(treeAdj map[string][]*nsEdge, info map[string]*nsNodeInfo, root string) {
	nextLim := 1
	var visit func(v, parent string)
	visit = func(v, parent string) {
		low := nextLim
		for _, e := range treeAdj[v] {
			w := otherEnd(e, v)
			if w == parent {
				continue
			}
			visit(w, v)
		}
		info[v] = &nsNodeInfo{low: low, lim: nextLim, parent: parent, hasParent: parent != ""}
		nextLim++
	}
	visit(root, "")
}

func isDescendant(v, root *nsNodeInfo) bool {
	return root.low <= v.lim && v.lim <= root.lim
}

// postorderExcludingRoot returns every tree node except root, in
// postorder (children before parents) so cut values can be folded up
// from the leaves.
func postorderExcludingRoot(treeAdj map[string][]*nsEdge, root string) []string {
	var order []string
	visited := map[string]bool{}
	var visit func(v, parent string)
	visit = func(v, parent string) {
		visited[v] = true
		for _, e := range treeAdj[v] {
			w := otherEnd(e, v)
			if w == parent || visited[w] {
				continue
			}
			visit(w, v)
		}
		order = append(order, v)
	}
	visit(root, "")
	if len(order) == 0 {
		return order
	}
	return order[:len(order)-1]
}

// calcCutValue computes the cut value of the tree edge between child
// and its tree parent: the weight of edges crossing the cut induced
// by removing that edge, signed by direction (§4.2).
func calcCutValue(child string, info map[string]*nsNodeInfo, incident map[string][]*nsEdge, treeAdj map[string][]*nsEdge) float64 {
	parent := info[child].parent
	childIsTail := true
	var graphEdge *nsEdge
	for _, e := range incident[child] {
		if e.V == child && e.W == parent {
			graphEdge = e
			break
		}
	}
	if graphEdge == nil {
		childIsTail = false
		for _, e := range incident[child] {
			if e.V == parent && e.W == child {
				graphEdge = e
				break
			}
		}
	}
	cutValue := 0.0
	if graphEdge != nil {
		cutValue = graphEdge.Weight
	}

	isTreeNeighbor := func(other string) (*nsEdge, bool) {
		for _, e := range treeAdj[child] {
			if otherEnd(e, child) == other {
				return e, true
			}
		}
		return nil, false
	}

	for _, e := range incident[child] {
		isOut := e.V == child
		other := e.V
		if isOut {
			other = e.W
		}
		if other == parent {
			continue
		}
		pointsToHead := isOut == childIsTail
		if pointsToHead {
			cutValue += e.Weight
		} else {
			cutValue -= e.Weight
		}
		if treeEdge, ok := isTreeNeighbor(other); ok {
			if pointsToHead {
				cutValue -= treeEdge.Cutvalue
			} else {
				cutValue += treeEdge.Cutvalue
			}
		}
	}
	return cutValue
}

func initCutValues(treeAdj map[string][]*nsEdge, info map[string]*nsNodeInfo, incident map[string][]*nsEdge, root string) {
	for _, v := range postorderExcludingRoot(treeAdj, root) {
		cv := calcCutValue(v, info, incident, treeAdj)
		parent := info[v].parent
		for _, e := range treeAdj[v] {
			if otherEnd(e, v) == parent {
				e.Cutvalue = cv
			}
		}
	}
}

func findLeaveEdge(edges []*nsEdge) *nsEdge {
	for _, e := range edges {
		if e.Tree && e.Cutvalue < 0 {
			return e
		}
	}
	return nil
}

func findEnterEdge(info map[string]*nsNodeInfo, edges []*nsEdge, leave *nsEdge, ranks map[string]int) *nsEdge {
	v, w := leave.V, leave.W
	tail := info[v]
	flip := false
	if info[v].lim > info[w].lim {
		tail = info[w]
		flip = true
	}
	var best *nsEdge
	bestSlack := 0
	for _, e := range edges {
		if e.Tree {
			continue
		}
		vDesc := isDescendant(info[e.V], tail)
		wDesc := isDescendant(info[e.W], tail)
		if flip != vDesc || flip == wDesc {
			continue
		}
		s := slack(e, ranks)
		if best == nil || s < bestSlack {
			best = e
			bestSlack = s
		}
	}
	return best
}

func updateRanksFromTree(treeAdj map[string][]*nsEdge, info map[string]*nsNodeInfo, ranks map[string]int, root string) {
	var visit func(v string)
	visited := map[string]bool{root: true}
	visit = func(v string) {
		for _, e := range treeAdj[v] {
			w := otherEnd(e, v)
			if visited[w] {
				continue
			}
			visited[w] = true
			if e.V == w && e.W == v {
				ranks[w] = ranks[v] - e.Minlen
			} else {
				ranks[w] = ranks[v] + e.Minlen
			}
			visit(w)
		}
	}
	visit(root)
}

// tightenToTree runs just the feasible-tree growth (no simplex
// optimization loop) — the "tight-tree" ranker.
func tightenToTree(ids []string, edges []*nsEdge, ranks map[string]int) {
	feasibleTree(ids, edges, ranks)
}

// networkSimplexRanks implements Gansner et al.'s network simplex:
// build a feasible tight tree, then repeatedly swap out a negative
// cut-value tree edge for the minimum-slack edge crossing the same
// cut, until every cut value is non-negative (§4.2).
func networkSimplexRanks(ids []string, edges []*nsEdge) map[string]int {
	if len(ids) == 0 {
		return map[string]int{}
	}
	ranks := longestPathRanks(ids, edges)
	treeAdj := feasibleTree(ids, edges, ranks)
	for _, e := range edges {
		e.Tree = false
	}
	markTree(treeAdj, edges)

	incident := map[string][]*nsEdge{}
	for _, e := range edges {
		incident[e.V] = append(incident[e.V], e)
		incident[e.W] = append(incident[e.W], e)
	}

	root := ids[0]
	info := map[string]*nsNodeInfo{}
	dfsLowLim(treeAdj, info, root)
	initCutValues(treeAdj, info, incident, root)

	// guard against pathological inputs looping forever: the number of
	// candidate exchanges is bounded by edge count.
	for iter := 0; iter < len(edges)*len(edges)+16; iter++ {
		leave := findLeaveEdge(edges)
		if leave == nil {
			break
		}
		enter := findEnterEdge(info, edges, leave, ranks)
		if enter == nil {
			leave.Cutvalue = 0 // avoid infinite loop on a bad cut
			continue
		}
		leave.Tree = false
		enter.Tree = true
		treeAdj = map[string][]*nsEdge{}
		markTree(treeAdj, edges)

		info = map[string]*nsNodeInfo{}
		dfsLowLim(treeAdj, info, root)
		updateRanksFromTree(treeAdj, info, ranks, root)
		initCutValues(treeAdj, info, incident, root)
	}

	return ranks
}

func markTree(treeAdj map[string][]*nsEdge, edges []*nsEdge) {
	for _, e := range edges {
		if !e.Tree {
			continue
		}
		treeAdj[e.V] = append(treeAdj[e.V], e)
		treeAdj[e.W] = append(treeAdj[e.W], e)
	}
}

// normalizeRanks shifts every rank so the minimum is 0 (§3 invariant:
// after stage 6 at least one node has rank 0).
func normalizeRanks(g *Graph) {
	if len(g.nodes) == 0 {
		return
	}
	min := 0
	first := true
	for _, id := range sortedIDs(g.nodes) {
		r := g.Node(id).Label.Rank
		if first || r < min {
			min = r
			first = false
		}
	}
	if min == 0 {
		return
	}
	for _, id := range sortedIDs(g.nodes) {
		g.Node(id).Label.Rank -= min
	}
}

// removeEmptyRanks deletes rank indices with no real (non-dummy) node
// and whose index is not a multiple of nodeRankFactor, compacting
// ranks above the gap downward. An empty rank is kept when removing it
// would leave some edge crossing it shorter than its minlen, so edge
// minlen remains satisfied.
func removeEmptyRanks(g *Graph) {
	if len(g.nodes) == 0 {
		return
	}
	maxRank := 0
	occupied := map[int]bool{}
	for _, id := range sortedIDs(g.nodes) {
		if len(g.Children(id)) > 0 {
			continue // compound parents never get a real rank; ignore their zero value
		}
		r := g.Node(id).Label.Rank
		occupied[r] = true
		if r > maxRank {
			maxRank = r
		}
	}
	edges := g.Edges()
	delta := 0
	shift := make([]int, maxRank+1)
	for i := 0; i <= maxRank; i++ {
		if !occupied[i] && i%nodeRankFactor != 0 {
			ok := true
			for _, e := range edges {
				// shift[rv]-delta ranks between rv and i are already gone
				rv, rw := g.Node(e.V).Label.Rank, g.Node(e.W).Label.Rank
				if rv < i && i < rw && rw-rv-(shift[rv]-delta)-1 < e.Label.Minlen {
					ok = false
				}
			}
			if ok {
				delta--
			}
		}
		shift[i] = delta
	}
	for _, id := range sortedIDs(g.nodes) {
		if len(g.Children(id)) > 0 {
			continue
		}
		n := g.Node(id)
		n.Label.Rank += shift[n.Label.Rank]
	}
}
