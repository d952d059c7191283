package graph

import "github.com/cognicore/keyrank/pkg/keyrank/pmi"

// Reweight returns a graph with the same nodes where every present edge is
// replaced by w.Weight(count, marginal_i, marginal_j, total). Marginals are
// row sums of g; total is the sum of all marginals. Absent edges stay absent.
func (g *Graph) Reweight(w Weigher) *Graph {
	n := g.Len()
	out := New(n)
	copy(out.labels, g.labels)
	for label, i := range g.index {
		out.index[label] = i
	}

	marginals := make([]float64, n)
	total := 0.0
	for i := 0; i < n; i++ {
		marginals[i] = g.OutWeight(i)
		total += marginals[i]
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := g.weights[i][j]
			if c == 0 {
				continue
			}
			v := w.Weight(c, marginals[i], marginals[j], total)
			out.weights[i][j] = v
			out.weights[j][i] = v
		}
	}
	return out
}

// ToLMI reweights edges with the default local mutual information scheme
func (g *Graph) ToLMI() *Graph {
	return g.Reweight(pmi.NewCalculator(1.0))
}
