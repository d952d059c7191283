package token

import (
	"fmt"
	"strings"

	"github.com/cognicore/keyrank/pkg/keyrank/internalerr"
)

// Category is the coarse part-of-speech class of a token.
type Category int

const (
	Other Category = iota
	Noun
	Adjective
	Verb
	Adverb
)

func (c Category) String() string {
	switch c {
	case Noun:
		return "noun"
	case Adjective:
		return "adjective"
	case Verb:
		return "verb"
	case Adverb:
		return "adverb"
	default:
		return "other"
	}
}

// Token is a single tagged, stemmed word.
//
// Two tokens are the same graph node iff their Stem values are equal.
type Token struct {
	Surface  string
	Tag      string // fine-grained tag as produced by the tagger (e.g. NNS)
	Category Category
	Stem     string
	Rank     float64
}

// New creates a token, deriving its category from a Penn Treebank tag.
// Surface and stem are required.
func New(surface, tag, stem string) (Token, error) {
	if strings.TrimSpace(surface) == "" {
		return Token{}, fmt.Errorf("token surface is required: %w", internalerr.ErrInvalidInput)
	}
	if strings.TrimSpace(stem) == "" {
		return Token{}, fmt.Errorf("token %q has empty stem: %w", surface, internalerr.ErrInvalidInput)
	}
	return Token{
		Surface:  surface,
		Tag:      tag,
		Category: CategoryFromTag(tag),
		Stem:     stem,
	}, nil
}

// NounOrAdjective reports whether the token is a content-word candidate.
func (t Token) NounOrAdjective() bool {
	return t.Category == Noun || t.Category == Adjective
}

// WithRank returns a copy of t carrying the given rank.
func (t Token) WithRank(rank float64) Token {
	t.Rank = rank
	return t
}

func (t Token) String() string {
	return t.Surface + "/" + t.Tag
}

// CategoryFromTag maps a Penn Treebank tag to its coarse category.
// Unknown tags map to Other.
func CategoryFromTag(tag string) Category {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	switch {
	case strings.HasPrefix(tag, "NN"):
		return Noun
	case strings.HasPrefix(tag, "JJ"):
		return Adjective
	case strings.HasPrefix(tag, "VB"), tag == "MD":
		return Verb
	case strings.HasPrefix(tag, "RB"), tag == "WRB":
		return Adverb
	default:
		return Other
	}
}
