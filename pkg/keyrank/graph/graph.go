// Package graph holds the labeled, undirected, weighted graph over candidate
// stems.
//
// Weights live in a dense N×N matrix that is kept symmetric with an empty
// diagonal. Nodes are addressed by index or by label; lookups of unassigned
// indices or unknown labels fail rather than creating nodes.
package graph

import (
	"errors"
	"fmt"

	"github.com/cognicore/keyrank/pkg/keyrank/cooccur"
	"github.com/cognicore/keyrank/pkg/keyrank/internalerr"
)

var (
	ErrIndexOutOfRange = fmt.Errorf("index out of range: %w", internalerr.ErrUnknownNode)
	ErrSelfLoop        = errors.New("self loops are not allowed")
)

// Graph is a symmetric weight matrix with a label per node
type Graph struct {
	weights [][]float64
	labels  []string
	index   map[string]int
}

// Edge is one undirected edge, reported with I < J
type Edge struct {
	I, J   int
	A, B   string
	Weight float64
}

// Weigher maps a raw edge count to an association weight given the
// marginal of each endpoint and the total marginal mass.
type Weigher interface {
	Weight(count, marginalA, marginalB, total float64) float64
}

// New creates a graph with n unlabeled nodes and no edges
func New(n int) *Graph {
	if n < 0 {
		n = 0
	}
	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
	}
	return &Graph{
		weights: weights,
		labels:  make([]string, n),
		index:   make(map[string]int, n),
	}
}

// FromCounts builds the co-occurrence graph: one node per stem in first
// appearance order, each edge weighted by its raw pair count.
func FromCounts(counts *cooccur.Counts) *Graph {
	stems := counts.Stems()
	g := New(len(stems))
	for i, s := range stems {
		g.labels[i] = s
		g.index[s] = i
	}
	for _, p := range counts.Pairs() {
		i, j := g.index[p.A], g.index[p.B]
		w := float64(counts.Get(p.A, p.B))
		g.weights[i][j] = w
		g.weights[j][i] = w
	}
	return g
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.labels)
}

// SetLabel names node i. Labels must be unique and non-empty.
func (g *Graph) SetLabel(i int, label string) error {
	if err := g.check(i); err != nil {
		return err
	}
	if label == "" {
		return fmt.Errorf("empty label for node %d: %w", i, internalerr.ErrInvalidInput)
	}
	if existing, ok := g.index[label]; ok && existing != i {
		return fmt.Errorf("label %q already names node %d: %w", label, existing, internalerr.ErrDuplicate)
	}
	if old := g.labels[i]; old != "" {
		delete(g.index, old)
	}
	g.labels[i] = label
	g.index[label] = i
	return nil
}

// Label returns the label of node i
func (g *Graph) Label(i int) (string, error) {
	if err := g.check(i); err != nil {
		return "", err
	}
	if g.labels[i] == "" {
		return "", fmt.Errorf("node %d has no label: %w", i, internalerr.ErrUnknownNode)
	}
	return g.labels[i], nil
}

// Labels returns a copy of all labels in index order
func (g *Graph) Labels() []string {
	out := make([]string, len(g.labels))
	copy(out, g.labels)
	return out
}

// Index returns the node index for a label
func (g *Graph) Index(label string) (int, error) {
	i, ok := g.index[label]
	if !ok {
		return 0, fmt.Errorf("label %q: %w", label, internalerr.ErrUnknownNode)
	}
	return i, nil
}

// Set assigns the weight of the edge between two labeled nodes.
// Both symmetric cells are written.
func (g *Graph) Set(a, b string, w float64) error {
	i, err := g.Index(a)
	if err != nil {
		return err
	}
	j, err := g.Index(b)
	if err != nil {
		return err
	}
	if i == j {
		return fmt.Errorf("edge %q-%q: %w", a, b, ErrSelfLoop)
	}
	g.weights[i][j] = w
	g.weights[j][i] = w
	return nil
}

// Weight returns the weight of the edge between two labeled nodes
func (g *Graph) Weight(a, b string) (float64, error) {
	i, err := g.Index(a)
	if err != nil {
		return 0, err
	}
	j, err := g.Index(b)
	if err != nil {
		return 0, err
	}
	return g.weights[i][j], nil
}

// At returns the weight at matrix cell (i, j) without reporting bad indices.
// It is the accessor for the ranker's inner loop, which only visits cells of
// a square n x n graph. Out of range cells read as 0, the same as a missing
// edge. Callers holding untrusted indices or labels use Weight or Label,
// which return ErrIndexOutOfRange or internalerr.ErrUnknownNode instead.
func (g *Graph) At(i, j int) float64 {
	if i < 0 || j < 0 || i >= len(g.weights) || j >= len(g.weights) {
		return 0
	}
	return g.weights[i][j]
}

// Neighbors returns the indices adjacent to node i in ascending order
func (g *Graph) Neighbors(i int) []int {
	if i < 0 || i >= len(g.weights) {
		return nil
	}
	var out []int
	for j, w := range g.weights[i] {
		if w != 0 {
			out = append(out, j)
		}
	}
	return out
}

// OutWeight returns the sum of row i
func (g *Graph) OutWeight(i int) float64 {
	if i < 0 || i >= len(g.weights) {
		return 0
	}
	sum := 0.0
	for _, w := range g.weights[i] {
		sum += w
	}
	return sum
}

// Edges lists every non-zero edge once, ordered by (I, J)
func (g *Graph) Edges() []Edge {
	var out []Edge
	for i := range g.weights {
		for j := i + 1; j < len(g.weights); j++ {
			if w := g.weights[i][j]; w != 0 {
				out = append(out, Edge{I: i, J: j, A: g.labels[i], B: g.labels[j], Weight: w})
			}
		}
	}
	return out
}

func (g *Graph) check(i int) error {
	if i < 0 || i >= len(g.labels) {
		return fmt.Errorf("node %d of %d: %w", i, len(g.labels), ErrIndexOutOfRange)
	}
	return nil
}
