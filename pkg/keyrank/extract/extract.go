// Package extract runs the keyword extraction pipeline:
// text → tokens → co-occurrence counts → candidate filter → graph →
// association graph → PageRank → top-K keywords.
package extract

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/cognicore/keyrank/pkg/keyrank/cooccur"
	"github.com/cognicore/keyrank/pkg/keyrank/graph"
	"github.com/cognicore/keyrank/pkg/keyrank/pagerank"
	"github.com/cognicore/keyrank/pkg/keyrank/pmi"
	"github.com/cognicore/keyrank/pkg/keyrank/tagger"
	"github.com/cognicore/keyrank/pkg/keyrank/token"
)

// DefaultTopK is the number of keywords returned when k <= 0
const DefaultTopK = 5

// Options configures an Extractor. Zero values select defaults: the
// heuristic tagger, cooccur.DefaultWindow, a default pagerank.Ranker, the
// LMI weigher, the noun-or-adjective filter and a no-op logger.
type Options struct {
	Tagger  tagger.Tagger
	Window  int
	Ranker  *pagerank.Ranker
	Weigher graph.Weigher
	Filter  func(token.Token) bool
	Logger  *zap.Logger
}

// Extractor ranks the words of a document
type Extractor struct {
	tagger  tagger.Tagger
	window  int
	ranker  *pagerank.Ranker
	weigher graph.Weigher
	filter  func(token.Token) bool
	log     *zap.Logger
}

// Keyword is a ranked candidate word. Token.Rank equals Score.
type Keyword struct {
	Token token.Token
	Score float64
}

// Analysis exposes every intermediate stage of one extraction
type Analysis struct {
	Tokens      []token.Token
	Counts      *cooccur.Counts // after the candidate filter
	Graph       *graph.Graph    // raw co-occurrence counts
	Association *graph.Graph    // reweighted edges used for ranking
	Ranking     pagerank.Result
	Keywords    []Keyword // every node, best first
}

// New creates an extractor
func New(opts Options) *Extractor {
	e := &Extractor{
		tagger:  opts.Tagger,
		window:  opts.Window,
		ranker:  opts.Ranker,
		weigher: opts.Weigher,
		filter:  opts.Filter,
		log:     opts.Logger,
	}
	if e.tagger == nil {
		e.tagger = tagger.NewHeuristic(nil, nil)
	}
	if e.window <= 0 {
		e.window = cooccur.DefaultWindow
	}
	if e.ranker == nil {
		e.ranker = pagerank.New(pagerank.Options{})
	}
	if e.weigher == nil {
		e.weigher = pmi.NewCalculator(1.0)
	}
	if e.filter == nil {
		e.filter = cooccur.NounOrAdjective
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	return e
}

// Window returns the co-occurrence window size
func (e *Extractor) Window() int {
	return e.window
}

// Extract tags text and returns its top k keywords.
// Empty or untaggable text yields no keywords and no error.
func (e *Extractor) Extract(ctx context.Context, text string, k int) ([]Keyword, error) {
	a, err := e.AnalyzeText(ctx, text)
	if err != nil {
		return nil, err
	}
	return top(a.Keywords, k), nil
}

// AnalyzeText tags text and runs the full pipeline
func (e *Extractor) AnalyzeText(ctx context.Context, text string) (Analysis, error) {
	tokens, err := e.tagger.Tag(ctx, text)
	if err != nil {
		return Analysis{}, fmt.Errorf("tag text: %w", err)
	}
	return e.Analyze(tokens), nil
}

// Rank returns the top k keywords of an already tagged document
func (e *Extractor) Rank(tokens []token.Token, k int) []Keyword {
	return top(e.Analyze(tokens).Keywords, k)
}

// Analyze runs counting, filtering, graph construction, reweighting and
// ranking over tokens. The input slice is not modified.
func (e *Extractor) Analyze(tokens []token.Token) Analysis {
	counts := cooccur.Count(tokens, e.window).Filter(e.filter)
	g := graph.FromCounts(counts)
	assoc := g.Reweight(e.weigher)
	res := e.ranker.Rank(assoc)

	keywords := make([]Keyword, g.Len())
	for i, stem := range g.Labels() {
		tok, _ := counts.Token(stem)
		score := res.Scores[i]
		keywords[i] = Keyword{Token: tok.WithRank(score), Score: score}
	}
	// Stable: equal scores keep discovery order.
	slices.SortStableFunc(keywords, func(a, b Keyword) int {
		return cmp.Compare(b.Score, a.Score)
	})

	e.log.Debug("ranked document",
		zap.Int("tokens", len(tokens)),
		zap.Int("pairs", counts.Len()),
		zap.Int("nodes", g.Len()),
		zap.Int("iterations", res.Iterations),
		zap.Bool("converged", res.Converged),
	)

	return Analysis{
		Tokens:      tokens,
		Counts:      counts,
		Graph:       g,
		Association: assoc,
		Ranking:     res,
		Keywords:    keywords,
	}
}

func top(keywords []Keyword, k int) []Keyword {
	if k <= 0 {
		k = DefaultTopK
	}
	if len(keywords) > k {
		keywords = keywords[:k]
	}
	out := make([]Keyword, len(keywords))
	copy(out, keywords)
	return out
}
