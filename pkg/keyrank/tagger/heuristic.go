package tagger

import (
	"context"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"

	"github.com/cognicore/keyrank/pkg/keyrank/stoplist"
	"github.com/cognicore/keyrank/pkg/keyrank/token"
)

var adjectiveSuffixes = []string{"ous", "ful", "ive", "able", "ible", "less", "ical", "ish", "ary", "ant", "ent", "ic", "al"}

// Heuristic tags words without a trained model. Function words take the
// tag recorded in the stoplist (or IN for other Snowball stopwords); the
// rest are tagged from their suffix and default to nouns.
type Heuristic struct {
	stops   *stoplist.Manager
	stemmer Stemmer
}

// NewHeuristic creates a heuristic tagger. A nil stoplist uses the built-in
// English function words.
func NewHeuristic(stops *stoplist.Manager, stemmer Stemmer) *Heuristic {
	if stops == nil {
		stops = stoplist.English()
	}
	if stemmer == nil {
		stemmer = Lowercase{}
	}
	return &Heuristic{stops: stops, stemmer: stemmer}
}

// Tag implements Tagger
func (h *Heuristic) Tag(ctx context.Context, text string) ([]token.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tokens []token.Token
	for _, w := range splitWords(text) {
		tok, err := newToken(w, h.tagWord(w), h.stemmer)
		if err != nil {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func (h *Heuristic) tagWord(word string) string {
	lower := strings.ToLower(word)
	if tag, ok := h.stops.Tag(lower); ok {
		return tag
	}
	if english.IsStopWord(lower) {
		return stoplist.DefaultTag
	}
	if isNumeric(lower) {
		return "CD"
	}

	switch {
	case strings.HasSuffix(lower, "ly") && len(lower) > 4:
		return "RB"
	case strings.HasSuffix(lower, "ing") && len(lower) > 5:
		return "VBG"
	case strings.HasSuffix(lower, "ed") && len(lower) > 4:
		return "VBD"
	}
	for _, suf := range adjectiveSuffixes {
		if strings.HasSuffix(lower, suf) && len(lower) > len(suf)+2 {
			return "JJ"
		}
	}
	if unicode.IsUpper([]rune(word)[0]) {
		return "NNP"
	}
	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") && len(lower) > 3 {
		return "NNS"
	}
	return "NN"
}

// splitWords splits on anything that is not a letter, digit, hyphen or
// apostrophe and trims stray hyphens and apostrophes.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		w := strings.Trim(current.String(), "-'")
		if isWord(w) {
			words = append(words, w)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return words
}

// isNumeric returns true if the word contains only digits and separators
func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' && r != '.' && r != ',' {
			return false
		}
	}
	return true
}
