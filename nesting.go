package dagre

// nestingGraph tracks the synthetic scaffolding addNestingGraph adds
// so removeNestingGraph can undo it exactly (§4.3, §2 steps 5 and 9).
type nestingGraph struct {
	root  string
	nodes []string
	edges []*Edge
}

// addNestingGraph adds, whenever the graph has a compound node, a
// synthetic root wired to every top-level node (to a top-level
// cluster's top dummy) and, for every compound node, a pair of
// temporary top/bottom dummies wired to its children so rank
// assignment is forced to keep a cluster's descendants within a
// contiguous rank band beneath it. All of it is removed again by
// removeNestingGraph once ranks are assigned; it never survives into
// ordering or position assignment.
func addNestingGraph(g *Graph) *nestingGraph {
	ng := &nestingGraph{}
	if !g.compound {
		return ng
	}

	hasCompound := false
	for _, id := range sortedIDs(g.nodes) {
		if len(g.Children(id)) > 0 {
			hasCompound = true
			break
		}
	}
	if !hasCompound {
		return ng
	}

	ng.root = g.nextDummyID("nest-root")
	g.SetNode(ng.root, NodeLabel{Dummy: DummyNestingRoot})
	ng.nodes = append(ng.nodes, ng.root)

	var weight float64 = 1
	var depth func(v string) int
	depth = func(v string) int {
		d := 0
		for p := g.Parent(v); p != ""; p = g.Parent(p) {
			d++
		}
		return d
	}

	var visit func(v string, parentTop, parentBottom string) string
	visit = func(v string, parentTop, parentBottom string) string {
		children := g.Children(v)
		if len(children) == 0 {
			if parentTop != "" {
				ng.edges = append(ng.edges, g.SetEdge(parentTop, v, "", EdgeLabel{Weight: weight, Minlen: 1}))
				ng.edges = append(ng.edges, g.SetEdge(v, parentBottom, "", EdgeLabel{Weight: weight, Minlen: 1}))
			}
			return v
		}

		top := g.nextDummyID("nest-top")
		bottom := g.nextDummyID("nest-bot")
		g.SetNode(top, NodeLabel{Dummy: DummyNestingRoot})
		g.SetNode(bottom, NodeLabel{Dummy: DummyNestingRoot})
		ng.nodes = append(ng.nodes, top, bottom)

		if parentTop != "" {
			ng.edges = append(ng.edges, g.SetEdge(parentTop, top, "", EdgeLabel{Weight: weight, Minlen: 1}))
			ng.edges = append(ng.edges, g.SetEdge(bottom, parentBottom, "", EdgeLabel{Weight: weight, Minlen: 1}))
		}
		for _, c := range children {
			visit(c, top, bottom)
		}
		return top
	}

	for _, id := range sortedIDs(g.nodes) {
		if g.Parent(id) != "" {
			continue
		}
		if id == ng.root || contains(ng.nodes, id) {
			continue
		}
		anchor := visit(id, "", "")
		ng.edges = append(ng.edges, g.SetEdge(ng.root, anchor, "", EdgeLabel{Weight: 0, Minlen: 1 + depth(id)}))
	}

	return ng
}

// removeNestingGraph deletes every node and edge addNestingGraph
// added, in edge-then-node order so RemoveNode never needs to clean
// up an edge twice.
func removeNestingGraph(g *Graph, ng *nestingGraph) {
	for _, e := range ng.edges {
		g.RemoveEdge(e)
	}
	for _, id := range ng.nodes {
		if g.HasNode(id) {
			g.RemoveNode(id)
		}
	}
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
