package quadrature

import "sort"

// SortNodes returns copies of nodes and weights reordered by ascending node,
// with each weight kept next to its node. Ties keep their input order.
func SortNodes(nodes, weights []float64) ([]float64, []float64) {
	idx := make([]int, len(nodes))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return nodes[idx[a]] < nodes[idx[b]] })

	sn := make([]float64, len(nodes))
	sw := make([]float64, len(weights))
	for i, j := range idx {
		sn[i] = nodes[j]
		sw[i] = weights[j]
	}
	return sn, sw
}
