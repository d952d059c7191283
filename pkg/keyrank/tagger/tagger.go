// Package tagger converts raw text into tagged, stemmed tokens.
//
// The ranking core treats taggers and stemmers as black boxes: whatever tags
// and stems they return are used as-is. Three taggers are provided:
//
//   - Prose: a trained Penn Treebank tagger (github.com/jdkato/prose/v2).
//   - Readable: parses pre-tagged "word/TAG" text.
//   - Heuristic: a model-free fallback using a function-word list and
//     suffix rules.
//
// Taggers are stateless after construction and safe for concurrent use.
package tagger

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/cognicore/keyrank/pkg/keyrank/internalerr"
	"github.com/cognicore/keyrank/pkg/keyrank/token"
)

// Tagger turns text into an ordered token sequence
type Tagger interface {
	Tag(ctx context.Context, text string) ([]token.Token, error)
}

// Stemmer maps a surface form to its canonical stem
type Stemmer interface {
	Stem(word string) string
}

// Kind names a tagger implementation in configuration
type Kind string

const (
	KindProse     Kind = "prose"
	KindReadable  Kind = "readable"
	KindHeuristic Kind = "heuristic"
)

// ParseKind resolves a configured tagger name. Empty means prose.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindProse:
		return KindProse, nil
	case KindReadable:
		return KindReadable, nil
	case KindHeuristic:
		return KindHeuristic, nil
	}
	return "", fmt.Errorf("unknown tagger %q: %w", s, internalerr.ErrInvalidConfig)
}

// isWord reports whether s holds at least one letter or digit.
// Pure punctuation never becomes a token.
func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// newToken builds a token, stemming the surface form
func newToken(surface, tag string, stemmer Stemmer) (token.Token, error) {
	return token.New(surface, tag, stemmer.Stem(surface))
}
