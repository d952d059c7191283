package pmi

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/keyrank/pkg/keyrank/internalerr"
)

func TestPMIBasic(t *testing.T) {
	calc := NewCalculator(1.0)

	// Strong positive association: co-occur more than expected
	pmi := calc.PMI(8, 10, 10, 20)

	if pmi <= 0 {
		t.Errorf("PMI for strong association should be positive, got %f", pmi)
	}
}

func TestPMIIndependent(t *testing.T) {
	calc := NewCalculator(1.0)

	// A in 50%, B in 50%, co-occur in 25% (random)
	pmi := calc.PMI(25, 50, 50, 100)

	if math.Abs(pmi) > 0.5 {
		t.Errorf("PMI for independent terms should be near 0, got %f", pmi)
	}
}

func TestPMINegative(t *testing.T) {
	calc := NewCalculator(1.0)

	pmi := calc.PMI(5, 50, 50, 100)

	if pmi >= 0 {
		t.Errorf("PMI for anti-correlated terms should be negative, got %f", pmi)
	}
}

func TestPMIZeroTotal(t *testing.T) {
	calc := NewCalculator(1.0)

	if pmi := calc.PMI(0, 0, 0, 0); pmi != 0 {
		t.Error("PMI with zero total should return 0")
	}
}

func TestPMIEpsilonDefault(t *testing.T) {
	// If epsilon <= 0, should default to 1.0
	calc := NewCalculator(-1.0)

	pmi := calc.PMI(5, 10, 10, 100)

	if math.IsNaN(pmi) {
		t.Error("PMI should not be NaN with negative epsilon (should default to 1.0)")
	}
}

func TestPMISymmetry(t *testing.T) {
	calc := NewCalculator(1.0)

	pmi1 := calc.PMI(10, 20, 15, 100)
	pmi2 := calc.PMI(10, 15, 20, 100)

	if math.Abs(pmi1-pmi2) > 0.0001 {
		t.Errorf("PMI should be symmetric, got %f and %f", pmi1, pmi2)
	}
}

func TestNPMIRange(t *testing.T) {
	calc := NewCalculator(1.0)

	testCases := []struct {
		nAB, nA, nB, N float64
	}{
		{50, 50, 50, 100}, // perfect overlap
		{0, 50, 50, 100},  // no overlap
		{10, 20, 20, 100}, // partial overlap
		{1, 1, 1, 2},      // single edge graph
	}

	for _, tc := range testCases {
		npmi := calc.NPMI(tc.nAB, tc.nA, tc.nB, tc.N)
		if npmi < -1.0 || npmi > 1.0 {
			t.Errorf("NPMI out of range [-1, 1]: %f for case %+v", npmi, tc)
		}
	}
}

func TestLMIMonotonicInJointCount(t *testing.T) {
	calc := NewCalculator(1.0)

	prev := 0.0
	for c := 1.0; c <= 20; c++ {
		lmi := calc.LMI(c, 20, 20, 100)
		if lmi <= prev {
			t.Errorf("LMI should increase with joint count: c=%v gave %f after %f", c, lmi, prev)
		}
		prev = lmi
	}
}

func TestLMIDampsFrequentEndpoints(t *testing.T) {
	calc := NewCalculator(1.0)

	rare := calc.LMI(3, 3, 3, 100)
	common := calc.LMI(3, 30, 30, 100)

	if rare <= common {
		t.Errorf("Pair of rare endpoints should outweigh pair of frequent endpoints: %f vs %f", rare, common)
	}
}

func TestLMISymmetricAndGuarded(t *testing.T) {
	calc := NewCalculator(1.0)

	if a, b := calc.LMI(4, 10, 7, 50), calc.LMI(4, 7, 10, 50); math.Abs(a-b) > 1e-12 {
		t.Errorf("LMI should be symmetric, got %f and %f", a, b)
	}

	for _, tc := range [][4]float64{{0, 1, 1, 1}, {1, 0, 1, 1}, {1, 1, 0, 1}, {1, 1, 1, 0}} {
		v := calc.LMI(tc[0], tc[1], tc[2], tc[3])
		if v != 0 || math.IsNaN(v) {
			t.Errorf("LMI%v should be 0, got %f", tc, v)
		}
	}
}

func TestWeightSchemes(t *testing.T) {
	tests := []struct {
		scheme Scheme
		want   func(c *Calculator) float64
	}{
		{SchemeRaw, func(*Calculator) float64 { return 3 }},
		{SchemeLMI, func(c *Calculator) float64 { return c.LMI(3, 5, 6, 22) }},
		{SchemeNPMI, func(c *Calculator) float64 { return 3 * (1 + c.NPMI(3, 5, 6, 22)) / 2 }},
	}

	for _, tc := range tests {
		calc := NewCalculatorWithScheme(1.0, tc.scheme)
		got := calc.Weight(3, 5, 6, 22)
		if math.Abs(got-tc.want(calc)) > 1e-12 {
			t.Errorf("%s: Weight = %f, want %f", tc.scheme, got, tc.want(calc))
		}
		if got <= 0 {
			t.Errorf("%s: positive count should give positive weight, got %f", tc.scheme, got)
		}
		if calc.Weight(0, 5, 6, 22) != 0 {
			t.Errorf("%s: zero count must stay zero", tc.scheme)
		}
	}
}

func TestParseScheme(t *testing.T) {
	for in, want := range map[string]Scheme{"": SchemeLMI, "LMI": SchemeLMI, "npmi": SchemeNPMI, " raw ": SchemeRaw} {
		got, err := ParseScheme(in)
		if err != nil || got != want {
			t.Errorf("ParseScheme(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseScheme("tfidf"); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
