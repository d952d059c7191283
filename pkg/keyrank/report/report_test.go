package report

import (
	"context"
	"testing"
	"time"

	"github.com/cognicore/keyrank/pkg/keyrank/extract"
	"github.com/cognicore/keyrank/pkg/keyrank/tagger"
)

func analyze(t *testing.T, text string) ([]extract.Keyword, extract.Analysis) {
	t.Helper()
	e := extract.New(extract.Options{Tagger: tagger.NewReadable(nil)})
	a, err := e.AnalyzeText(context.Background(), text)
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	keywords := a.Keywords
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	return keywords, a
}

func TestBuild(t *testing.T) {
	keywords, a := analyze(t, "Graphs/NNS rank/VBP words/NNS by/IN weighted/JJ edges/NNS")
	b := New()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }

	r := b.Build("stdin", keywords, a, 2)

	if r.ID == "" {
		t.Error("Report should have an ID")
	}
	if r.Source != "stdin" {
		t.Errorf("Expected source stdin, got %q", r.Source)
	}
	if !r.CreatedAt.Equal(fixed) {
		t.Errorf("Expected creation time %v, got %v", fixed, r.CreatedAt)
	}
	if len(r.Keywords) != len(keywords) {
		t.Fatalf("Expected %d keywords, got %d", len(keywords), len(r.Keywords))
	}
	for i, k := range keywords {
		if r.Keywords[i].Word != k.Token.Surface || r.Keywords[i].Score != k.Score {
			t.Errorf("Keyword %d = %+v, want %s/%f", i, r.Keywords[i], k.Token.Surface, k.Score)
		}
	}
	if len(r.TopPairs) != 2 {
		t.Errorf("Expected 2 top pairs, got %d", len(r.TopPairs))
	}
}

func TestBuildULIDUniqueness(t *testing.T) {
	keywords, a := analyze(t, "graph/NN rank/NN node/NN edge/NN")
	b := New()

	ids := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		r := b.Build("test", keywords, a, 1)
		if ids[r.ID] {
			t.Errorf("Duplicate ULID generated: %s", r.ID)
		}
		ids[r.ID] = true
	}
}

func TestTopPairsOrdered(t *testing.T) {
	_, a := analyze(t, "solar/JJ panel/NN the/DT solar/JJ panel/NN and/CC city/NN of/IN river/NN")

	pairs := TopPairs(a, 10)
	if len(pairs) == 0 {
		t.Fatal("Expected pairs")
	}
	for i := 1; i < len(pairs); i++ {
		if pairs[i].Weight > pairs[i-1].Weight {
			t.Errorf("Pairs not sorted by weight at %d: %f > %f", i, pairs[i].Weight, pairs[i-1].Weight)
		}
	}
	first := pairs[0]
	if first.A != "solar" || first.B != "panel" {
		t.Errorf("Expected (solar, panel) first, got (%s, %s)", first.A, first.B)
	}
	if first.Count != a.Counts.Get("solar", "panel") {
		t.Errorf("Pair should carry the raw count %d, got %d", a.Counts.Get("solar", "panel"), first.Count)
	}
}

func TestTopPairsEmpty(t *testing.T) {
	if pairs := TopPairs(extract.Analysis{}, 3); len(pairs) != 0 {
		t.Errorf("Empty analysis should have no pairs, got %v", pairs)
	}
}

func TestWords(t *testing.T) {
	r := Report{Keywords: []Keyword{{Word: "graph"}, {Word: "rank"}}}
	if w := r.Words(); len(w) != 2 || w[0] != "graph" || w[1] != "rank" {
		t.Errorf("Words() = %v", w)
	}
}
