// Package pagerank scores graph nodes by weighted PageRank computed with the
// power method.
package pagerank

import (
	"math"

	"github.com/cognicore/keyrank/pkg/keyrank/graph"
)

const (
	DefaultDamping       = 0.85
	DefaultMaxIterations = 100
	DefaultEpsilon       = 1e-6
)

// Options configures a Ranker. Zero values select the defaults.
type Options struct {
	Damping       float64
	MaxIterations int
	Epsilon       float64

	// OnIteration, if set, observes the score vector after every iteration.
	// The slice must not be retained.
	OnIteration func(iter int, scores []float64)
}

// Ranker runs PageRank over undirected weighted graphs
type Ranker struct {
	damping float64
	maxIter int
	epsilon float64
	observe func(int, []float64)
}

// Result holds the scores of one ranking run
type Result struct {
	Scores     []float64 // index-aligned with the graph's nodes
	Iterations int
	Converged  bool
}

// New creates a ranker. Damping outside (0, 1) falls back to the default.
func New(opts Options) *Ranker {
	r := &Ranker{
		damping: opts.Damping,
		maxIter: opts.MaxIterations,
		epsilon: opts.Epsilon,
		observe: opts.OnIteration,
	}
	if r.damping <= 0 || r.damping >= 1 {
		r.damping = DefaultDamping
	}
	if r.maxIter <= 0 {
		r.maxIter = DefaultMaxIterations
	}
	if r.epsilon <= 0 {
		r.epsilon = DefaultEpsilon
	}
	return r
}

// Rank computes a score per node.
//
// Every node starts at 1/N. Each iteration sets
//
//	s'(i) = (1-d)/N + d * Σ_j W[i][j] / out(j) * s(j)
//
// where out(j) is the row sum of j. Nodes with no edges neither receive nor
// pass on mass, so they settle at (1-d)/N. Iteration stops once no score
// moves by epsilon or more, or after MaxIterations.
func (r *Ranker) Rank(g *graph.Graph) Result {
	n := g.Len()
	if n == 0 {
		return Result{Scores: []float64{}, Converged: true}
	}

	nf := float64(n)
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / nf
	}

	outWeight := make([]float64, n)
	neighbors := make([][]int, n)
	for i := 0; i < n; i++ {
		outWeight[i] = g.OutWeight(i)
		neighbors[i] = g.Neighbors(i)
	}

	base := (1 - r.damping) / nf
	next := make([]float64, n)
	res := Result{}
	for iter := 1; iter <= r.maxIter; iter++ {
		maxDelta := 0.0
		for i := 0; i < n; i++ {
			sum := 0.0
			for _, j := range neighbors[i] {
				if outWeight[j] > 0 {
					sum += g.At(i, j) / outWeight[j] * scores[j]
				}
			}
			next[i] = base + r.damping*sum
			if delta := math.Abs(next[i] - scores[i]); delta > maxDelta {
				maxDelta = delta
			}
		}

		scores, next = next, scores
		res.Iterations = iter
		if r.observe != nil {
			r.observe(iter, scores)
		}
		if maxDelta < r.epsilon {
			res.Converged = true
			break
		}
	}

	res.Scores = scores
	return res
}
