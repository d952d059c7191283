package report

import (
	"cmp"
	"crypto/rand"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/keyrank/pkg/keyrank/extract"
)

// DefaultTopPairs is the number of association pairs kept when n <= 0
const DefaultTopPairs = 5

// Builder constructs explainable keyword reports
type Builder struct {
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Report is the persisted result of one extraction
type Report struct {
	ID        string
	Source    string
	CreatedAt time.Time
	Keywords  []Keyword
	TopPairs  []Pair
}

// Keyword is a ranked word as stored in a report
type Keyword struct {
	Word  string
	Stem  string
	Tag   string
	Score float64
}

// Pair explains one graph edge: the raw co-occurrence count and the
// association weight the ranker saw.
type Pair struct {
	A      string
	B      string
	Count  int
	Weight float64
}

// Build creates a report from the top keywords of an analysis and its n
// strongest association edges.
func (b *Builder) Build(source string, keywords []extract.Keyword, a extract.Analysis, n int) Report {
	now := b.now().UTC()
	r := Report{
		ID:        ulid.MustNew(ulid.Timestamp(now), b.entropy).String(),
		Source:    source,
		CreatedAt: now,
		Keywords:  make([]Keyword, 0, len(keywords)),
		TopPairs:  TopPairs(a, n),
	}
	for _, k := range keywords {
		r.Keywords = append(r.Keywords, Keyword{
			Word:  k.Token.Surface,
			Stem:  k.Token.Stem,
			Tag:   k.Token.Tag,
			Score: k.Score,
		})
	}
	return r
}

// TopPairs returns the n heaviest association edges, heaviest first.
// Equal weights keep edge order.
func TopPairs(a extract.Analysis, n int) []Pair {
	if n <= 0 {
		n = DefaultTopPairs
	}
	if a.Association == nil {
		return []Pair{}
	}

	edges := a.Association.Edges()
	pairs := make([]Pair, 0, len(edges))
	for _, e := range edges {
		count := 0
		if a.Counts != nil {
			count = a.Counts.Get(e.A, e.B)
		}
		pairs = append(pairs, Pair{A: e.A, B: e.B, Count: count, Weight: e.Weight})
	}
	slices.SortStableFunc(pairs, func(x, y Pair) int {
		return cmp.Compare(y.Weight, x.Weight)
	})
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

// Words returns the keyword surfaces in rank order
func (r Report) Words() []string {
	out := make([]string, len(r.Keywords))
	for i, k := range r.Keywords {
		out[i] = k.Word
	}
	return out
}
