package pmi

import (
	"fmt"
	"math"
	"strings"

	"github.com/cognicore/keyrank/pkg/keyrank/internalerr"
)

// Scheme names an edge association formula
type Scheme string

const (
	SchemeLMI  Scheme = "lmi"
	SchemeNPMI Scheme = "npmi"
	SchemeRaw  Scheme = "raw"
)

// ParseScheme resolves a configured scheme name. Empty means LMI.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemeLMI:
		return SchemeLMI, nil
	case SchemeNPMI:
		return SchemeNPMI, nil
	case SchemeRaw:
		return SchemeRaw, nil
	}
	return "", fmt.Errorf("unknown association scheme %q: %w", s, internalerr.ErrInvalidConfig)
}

// Calculator handles PMI (Pointwise Mutual Information) calculations over
// co-occurrence graph statistics.
//
// Inputs are the joint count of a pair, the marginal of each endpoint (the
// sum of its edge counts) and the total marginal mass of the graph.
type Calculator struct {
	epsilon float64 // smoothing constant
	scheme  Scheme
}

// NewCalculator creates a new PMI calculator with the given epsilon
func NewCalculator(epsilon float64) *Calculator {
	return NewCalculatorWithScheme(epsilon, SchemeLMI)
}

// NewCalculatorWithScheme creates a calculator whose Weight method applies
// the given scheme.
func NewCalculatorWithScheme(epsilon float64, scheme Scheme) *Calculator {
	if epsilon <= 0 {
		epsilon = 1.0
	}
	if scheme == "" {
		scheme = SchemeLMI
	}
	return &Calculator{epsilon: epsilon, scheme: scheme}
}

// PMI calculates the smoothed pointwise mutual information of a pair
//
// PMI(a,b) = log((n_ab + ε) * N / ((n_a + ε)(n_b + ε)))
func (c *Calculator) PMI(nAB, nA, nB, N float64) float64 {
	if N <= 0 {
		return 0
	}

	numerator := (nAB + c.epsilon) * N
	denominator := (nA + c.epsilon) * (nB + c.epsilon)

	if denominator == 0 {
		return 0
	}

	return math.Log(numerator / denominator)
}

// NPMI calculates normalized PMI (range: -1 to 1)
// NPMI(a,b) = PMI(a,b) / -log(P(a,b))
func (c *Calculator) NPMI(nAB, nA, nB, N float64) float64 {
	if N <= 0 || nAB <= 0 {
		return 0
	}

	pmi := c.PMI(nAB, nA, nB, N)
	pAB := (nAB + c.epsilon) / N
	logPAB := math.Log(pAB)

	if logPAB == 0 {
		return 0
	}

	v := pmi / -logPAB
	return math.Max(-1, math.Min(1, v))
}

// LMI calculates a local mutual information weight that stays positive:
//
// LMI(a,b) = n_ab * log(1 + n_ab * N / (n_a * n_b))
//
// It grows with n_ab for fixed marginals and shrinks as either marginal
// grows. Zero joint count, or a zero marginal, yields 0.
func (c *Calculator) LMI(nAB, nA, nB, N float64) float64 {
	if nAB <= 0 || nA <= 0 || nB <= 0 || N <= 0 {
		return 0
	}
	return nAB * math.Log1p(nAB*N/(nA*nB))
}

// Weight applies the calculator's scheme to one edge
func (c *Calculator) Weight(count, marginalA, marginalB, total float64) float64 {
	if count <= 0 {
		return 0
	}
	switch c.scheme {
	case SchemeRaw:
		return count
	case SchemeNPMI:
		return count * (1 + c.NPMI(count, marginalA, marginalB, total)) / 2
	default:
		return c.LMI(count, marginalA, marginalB, total)
	}
}
