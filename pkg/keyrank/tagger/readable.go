package tagger

import (
	"context"
	"strings"

	"github.com/cognicore/keyrank/pkg/keyrank/token"
)

// Readable parses text that has already been tagged, one "word/TAG" per
// whitespace-separated field, e.g. "Graphs/NNS rank/VBP words/NNS".
// Fields without a slash are kept with an empty tag. Punctuation fields are
// dropped.
type Readable struct {
	stemmer Stemmer
}

// NewReadable creates a readable-format tagger
func NewReadable(stemmer Stemmer) *Readable {
	if stemmer == nil {
		stemmer = Lowercase{}
	}
	return &Readable{stemmer: stemmer}
}

// Tag implements Tagger
func (r *Readable) Tag(ctx context.Context, text string) ([]token.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := strings.Fields(text)
	tokens := make([]token.Token, 0, len(fields))
	for _, f := range fields {
		surface, tag := f, ""
		if i := strings.LastIndex(f, "/"); i >= 0 {
			surface, tag = f[:i], f[i+1:]
		}
		if !isWord(surface) {
			continue
		}
		tok, err := newToken(surface, tag, r.stemmer)
		if err != nil {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
