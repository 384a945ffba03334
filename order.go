package dagre

import "sort"

// order runs the barycenter/weighted-median crossing-reduction sweep
// (§4.5, §2 step 11): seed with a DFS order, then alternate
// downward/upward median sweeps and adjacent-pair transpositions,
// keeping the best layering seen and stopping after four sweeps in a
// row that fail to improve on it.
func order(g *Graph) {
	layering := initOrder(g)
	assignOrderFromLayers(g, layering)

	best := copyLayers(layering)
	bestCC := crossCount(g, layering)

	noImprove := 0
	for iter := 0; iter < 24 && noImprove < 4; iter++ {
		sweepMedian(g, layering, iter%2 == 0)
		for transpose(g, layering) {
		}
		assignOrderFromLayers(g, layering)
		cc := crossCount(g, layering)
		if cc < bestCC {
			bestCC = cc
			best = copyLayers(layering)
			noImprove = 0
		} else {
			noImprove++
		}
	}
	assignOrderFromLayers(g, best)
}

// initOrder seeds an order via DFS, so nodes reachable from one
// another start out close together rather than in arbitrary id order.
func initOrder(g *Graph) [][]string {
	maxRank := -1
	for _, id := range sortedIDs(g.nodes) {
		if r := g.Node(id).Label.Rank; r > maxRank {
			maxRank = r
		}
	}
	layers := make([][]string, maxRank+1)
	visited := map[string]bool{}
	var dfs func(v string)
	dfs = func(v string) {
		if visited[v] {
			return
		}
		visited[v] = true
		if len(g.Children(v)) == 0 { // compound parents get no order of their own
			n := g.Node(v)
			layers[n.Label.Rank] = append(layers[n.Label.Rank], v)
		}
		for _, w := range g.Successors(v) {
			dfs(w)
		}
	}
	for _, id := range sortedIDs(g.nodes) {
		dfs(id)
	}
	return layers
}

func assignOrderFromLayers(g *Graph, layering [][]string) {
	for _, layer := range layering {
		for i, id := range layer {
			g.Node(id).Label.Order = i
		}
	}
}

func copyLayers(layering [][]string) [][]string {
	out := make([][]string, len(layering))
	for i, layer := range layering {
		out[i] = append([]string(nil), layer...)
	}
	return out
}

func posMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// sweepMedian reorders every movable layer by the median position of
// its neighbors in the adjacent fixed layer (§4.5).
func sweepMedian(g *Graph, layering [][]string, down bool) {
	if down {
		for r := 1; r < len(layering); r++ {
			layering[r] = sortByMedian(g, layering[r], layering[r-1], true)
		}
		return
	}
	for r := len(layering) - 2; r >= 0; r-- {
		layering[r] = sortByMedian(g, layering[r], layering[r+1], false)
	}
}

type medianItem struct {
	id        string
	median    float64
	hasMedian bool
	orig      int
}

func sortByMedian(g *Graph, layer, fixed []string, useIn bool) []string {
	fixedPos := posMap(fixed)
	items := make([]medianItem, len(layer))
	for i, id := range layer {
		var positions []int
		if useIn {
			for _, e := range g.InEdges(id) {
				if p, ok := fixedPos[e.V]; ok {
					positions = append(positions, p)
				}
			}
		} else {
			for _, e := range g.OutEdges(id) {
				if p, ok := fixedPos[e.W]; ok {
					positions = append(positions, p)
				}
			}
		}
		if len(positions) == 0 {
			items[i] = medianItem{id: id, hasMedian: false, orig: i}
			continue
		}
		sort.Ints(positions)
		items[i] = medianItem{id: id, median: medianValue(positions), hasMedian: true, orig: i}
	}
	sort.SliceStable(items, func(a, b int) bool {
		ia, ib := items[a], items[b]
		if !ia.hasMedian || !ib.hasMedian {
			return false
		}
		return ia.median < ib.median
	})
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

// medianValue computes dagre's weighted median of a sorted neighbor
// position list: the plain median for odd counts or a pair, and an
// interior-gap-weighted blend of the two central values otherwise.
func medianValue(positions []int) float64 {
	m := len(positions)
	mid := m / 2
	if m%2 == 1 {
		return float64(positions[mid])
	}
	if m == 2 {
		return float64(positions[0]+positions[1]) / 2
	}
	left := positions[mid-1] - positions[0]
	right := positions[len(positions)-1] - positions[mid]
	if left+right == 0 {
		return float64(positions[mid-1]+positions[mid]) / 2
	}
	return (float64(positions[mid-1])*float64(right) + float64(positions[mid])*float64(left)) / float64(left+right)
}

// transpose makes one pass swapping adjacent nodes within each layer
// wherever doing so reduces the crossings against both neighboring
// layers, reporting whether anything changed so the caller can repeat
// until a fixed point.
func transpose(g *Graph, layering [][]string) bool {
	improved := false
	for r, layer := range layering {
		for i := 0; i+1 < len(layer); i++ {
			before := localCross(g, layering, r, i, i+1)
			layer[i], layer[i+1] = layer[i+1], layer[i]
			after := localCross(g, layering, r, i, i+1)
			if after < before {
				improved = true
			} else {
				layer[i], layer[i+1] = layer[i+1], layer[i]
			}
		}
	}
	return improved
}

func localCross(g *Graph, layering [][]string, r, _, _ int) int {
	total := 0
	if r > 0 {
		total += twoLayerCrossCount(g, layering[r-1], layering[r])
	}
	if r+1 < len(layering) {
		total += twoLayerCrossCount(g, layering[r], layering[r+1])
	}
	return total
}

// crossCount sums crossings between every pair of adjacent layers.
func crossCount(g *Graph, layering [][]string) int {
	total := 0
	for i := 0; i+1 < len(layering); i++ {
		total += twoLayerCrossCount(g, layering[i], layering[i+1])
	}
	return total
}

// twoLayerCrossCount counts crossings between one pair of adjacent
// layers by reducing to inversion counting: concatenate, in north
// order, each north node's sorted south-neighbor positions, then
// count out-of-order pairs with a Fenwick tree (§4.5).
func twoLayerCrossCount(g *Graph, north, south []string) int {
	if len(south) == 0 {
		return 0
	}
	southPos := posMap(south)
	var sequence []int
	for _, nid := range north {
		var ps []int
		for _, e := range g.OutEdges(nid) {
			if p, ok := southPos[e.W]; ok {
				ps = append(ps, p)
			}
		}
		sort.Ints(ps)
		sequence = append(sequence, ps...)
	}
	return countInversions(sequence, len(south)-1)
}

func countInversions(seq []int, maxVal int) int {
	bit := make([]int, maxVal+2)
	add := func(i int) {
		for i++; i <= maxVal+1; i += i & (-i) {
			bit[i]++
		}
	}
	sum := func(i int) int {
		s := 0
		for i++; i > 0; i -= i & (-i) {
			s += bit[i]
		}
		return s
	}
	count, total := 0, 0
	for _, v := range seq {
		count += total - sum(v)
		add(v)
		total++
	}
	return count
}
