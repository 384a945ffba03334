package dagre

import (
	"context"

	"github.com/d2dagre/layout/internal/tracelog"
)

// Layout runs the full hierarchical layout pipeline on g in place: it
// assigns Rank, Order, X, and Y to every node, a Points polyline to
// every edge, and a Width/Height to the graph itself. Invalid input is
// reported before g is touched; a failure in a later stage leaves g
// partly mutated, so callers that need the original back on such a
// failure should operate on a copy.
//
// A context carrying a cdr.dev/slog logger set with tracelog.With
// (an internal package, so only code inside this module can attach
// one) gets a debug line per pipeline stage; a bare context is silent.
func Layout(ctx context.Context, g *Graph, opts *Options) error {
	if err := validateInput(g); err != nil {
		return err
	}

	def := DefaultOptions()
	def.merge(&g.Label.Options)
	if opts != nil {
		opts.merge(&g.Label.Options)
	}

	tracelog.Stage(ctx, "make-space-for-edge-labels")
	makeSpaceForEdgeLabels(g)

	tracelog.Stage(ctx, "excise-self-edges")
	exciseSelfEdges(g)

	tracelog.Stage(ctx, "acyclic")
	reversed := acyclicize(g, g.Label.Acyclicer)

	tracelog.Stage(ctx, "nesting-graph-add")
	ng := addNestingGraph(g)

	tracelog.Stage(ctx, "rank")
	assignRanks(g, g.Label.Ranker)

	tracelog.Stage(ctx, "nesting-graph-remove")
	removeNestingGraph(g, ng)
	removeEmptyRanks(g)

	tracelog.Stage(ctx, "normalize")
	longEdges := normalize(g)

	tracelog.Stage(ctx, "parent-dummy-chains")
	assignDummyChainParents(g, longEdges)

	if g.compound {
		tracelog.Stage(ctx, "border-segments")
		addBorderSegments(g)
	}

	tracelog.Stage(ctx, "order")
	order(g)

	tracelog.Stage(ctx, "reinsert-self-edges")
	reinsertSelfEdges(g)

	tracelog.Stage(ctx, "adjust-coord-system")
	adjustCoordSystem(g)

	tracelog.Stage(ctx, "position-x")
	assignX(g)

	tracelog.Stage(ctx, "position-y")
	assignY(g)

	tracelog.Stage(ctx, "curve-self-edges")
	curveSelfEdges(g)

	if g.compound {
		tracelog.Stage(ctx, "remove-border-segments")
		removeBorderSegments(g)
	}

	tracelog.Stage(ctx, "denormalize")
	denormalize(g, longEdges)

	tracelog.Stage(ctx, "fixup-edge-labels")
	fixupEdgeLabelAnchors(g)

	tracelog.Stage(ctx, "undo-coord-system")
	undoCoordSystem(g)

	tracelog.Stage(ctx, "undo-space-for-edge-labels")
	undoSpaceForEdgeLabels(g)

	tracelog.Stage(ctx, "trim-edges-to-nodes")
	if err := trimEdgesToNodes(g); err != nil {
		return err
	}

	tracelog.Stage(ctx, "translate")
	translateGraph(g)

	tracelog.Stage(ctx, "acyclic-undo")
	acyclicUndo(reversed)

	return nil
}

// validateInput aggregates every precondition violation (§7) before
// any stage mutates g.
func validateInput(g *Graph) error {
	v := &validator{}
	if g == nil {
		return &InvalidInputError{Reason: "graph is nil"}
	}
	for _, id := range sortedIDs(g.nodes) {
		n := g.Node(id)
		v.check(n.Label.Width >= 0, &InvalidInputError{Node: id, Reason: "negative width"})
		v.check(n.Label.Height >= 0, &InvalidInputError{Node: id, Reason: "negative height"})
	}
	for _, e := range g.Edges() {
		v.check(g.HasNode(e.V), &InvalidInputError{Edge: e.V + "->" + e.W, Reason: "tail node does not exist"})
		v.check(g.HasNode(e.W), &InvalidInputError{Edge: e.V + "->" + e.W, Reason: "head node does not exist"})
		v.check(e.Label.Minlen >= 1, &InvalidInputError{Edge: e.V + "->" + e.W, Reason: "minlen must be at least 1"})
	}
	return v.errOrNil()
}

// makeSpaceForEdgeLabels doubles every edge's minlen and halves
// RankSep when any edge carries a label, reserving an extra rank for
// the label's own proxy node without changing the visual rank
// spacing callers asked for (§2 step 2).
func makeSpaceForEdgeLabels(g *Graph) {
	if g.Label.RankSep <= 0 {
		return
	}
	hasLabeled := false
	for _, e := range g.Edges() {
		if e.Label.HasLabel {
			hasLabeled = true
			break
		}
	}
	if !hasLabeled {
		return
	}
	g.Label.RankSep /= 2
	for _, e := range g.Edges() {
		e.Label.Minlen *= 2
	}
}

// undoSpaceForEdgeLabels restores RankSep to the value the caller
// configured, now that rank assignment and normalization no longer
// need the doubled minlen.
func undoSpaceForEdgeLabels(g *Graph) {
	if g.Label.RankSep <= 0 {
		return
	}
	for _, e := range g.Edges() {
		if e.Label.Minlen%2 == 0 {
			e.Label.Minlen /= 2
		}
	}
	g.Label.RankSep *= 2
}
