package cooccur

import (
	"sort"

	"github.com/cognicore/keyrank/pkg/keyrank/token"
)

const (
	// DefaultWindow is the number of consecutive tokens treated as
	// co-occurring.
	DefaultWindow = 4

	// MinWindow is the smallest window that can form a pair.
	// Smaller values are clamped.
	MinWindow = 2
)

// Pair represents an unordered pair of stems (A < B)
type Pair struct {
	A, B string
}

// NewPair returns the canonical pair for two stems
func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Counts maps stem pairs to the number of windows they shared.
// It also remembers the first counted token of every stem, which stands in
// for the stem when reporting.
type Counts struct {
	pairs map[Pair]int
	order []Pair
	reps  map[string]token.Token
	first map[string]int

	tokens []token.Token
	window int
	keep   func(token.Token) bool
}

func newCounts() *Counts {
	return &Counts{
		pairs: make(map[Pair]int),
		reps:  make(map[string]token.Token),
		first: make(map[string]int),
	}
}

// Frequencies returns the number of occurrences of each stem.
func Frequencies(tokens []token.Token) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freq[t.Stem]++
	}
	return freq
}

// Count slides a window over tokens and counts every unordered pair of
// distinct stems once per window. Sequences shorter than the window produce
// no pairs.
func Count(tokens []token.Token, window int) *Counts {
	if window < MinWindow {
		window = MinWindow
	}
	return count(append([]token.Token(nil), tokens...), window, nil)
}

// count tallies pairs whose two occurrences both pass keep (nil keeps all)
func count(tokens []token.Token, window int, keep func(token.Token) bool) *Counts {
	c := newCounts()
	c.tokens, c.window, c.keep = tokens, window, keep

	ok := make([]bool, len(tokens))
	for i, t := range tokens {
		ok[i] = keep == nil || keep(t)
	}

	seen := make(map[Pair]struct{}, window*(window-1)/2)
	for start := 0; start+window <= len(tokens); start++ {
		clear(seen)
		for i := start; i < start+window; i++ {
			if !ok[i] {
				continue
			}
			for j := i + 1; j < start+window; j++ {
				if !ok[j] || tokens[i].Stem == tokens[j].Stem {
					continue
				}
				p := NewPair(tokens[i].Stem, tokens[j].Stem)
				if _, dup := seen[p]; dup {
					continue
				}
				seen[p] = struct{}{}
				c.inc(p, 1)
				c.note(i)
				c.note(j)
			}
		}
	}

	return c
}

// note records the occurrence at i as its stem's representative if it is
// the earliest one counted so far.
func (c *Counts) note(i int) {
	stem := c.tokens[i].Stem
	if at, ok := c.first[stem]; ok && at <= i {
		return
	}
	c.first[stem] = i
	c.reps[stem] = c.tokens[i]
}

func (c *Counts) inc(p Pair, n int) {
	if _, ok := c.pairs[p]; !ok {
		c.order = append(c.order, p)
	}
	c.pairs[p] += n
}

// Get returns the count for a pair of stems in either order
func (c *Counts) Get(a, b string) int {
	return c.pairs[NewPair(a, b)]
}

// Len returns the number of distinct pairs
func (c *Counts) Len() int {
	return len(c.pairs)
}

// Pairs returns the pairs in the order they were first counted
func (c *Counts) Pairs() []Pair {
	out := make([]Pair, len(c.order))
	copy(out, c.order)
	return out
}

// Token returns the representative token for a stem
func (c *Counts) Token(stem string) (token.Token, bool) {
	t, ok := c.reps[stem]
	return t, ok
}

// Stems returns every stem that takes part in at least one pair, ordered by
// the first appearance of a counted occurrence.
func (c *Counts) Stems() []string {
	present := make(map[string]struct{})
	for p := range c.pairs {
		present[p.A] = struct{}{}
		present[p.B] = struct{}{}
	}

	stems := make([]string, 0, len(present))
	for s := range present {
		stems = append(stems, s)
	}
	sort.Slice(stems, func(i, j int) bool {
		return c.first[stems[i]] < c.first[stems[j]]
	})
	return stems
}

// Filter recounts the pairs whose two co-occurring tokens both satisfy
// keep. A stem tagged differently across the text only contributes the
// occurrences that pass.
func (c *Counts) Filter(keep func(token.Token) bool) *Counts {
	if keep == nil {
		return count(c.tokens, c.window, c.keep)
	}
	combined := keep
	if prev := c.keep; prev != nil {
		combined = func(t token.Token) bool { return prev(t) && keep(t) }
	}
	return count(c.tokens, c.window, combined)
}

// NounOrAdjective keeps content words only
func NounOrAdjective(t token.Token) bool {
	return t.NounOrAdjective()
}
