package dagre

import "sort"

// sortNodesByOrder sorts nodes in place by their current Label.Order.
func sortNodesByOrder(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Label.Order < nodes[j].Label.Order
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
