package tagger

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"

	"github.com/cognicore/keyrank/pkg/keyrank/token"
)

// Prose tags English text with prose's averaged perceptron tagger, which
// emits Penn Treebank tags.
type Prose struct {
	stemmer Stemmer
	model   *prose.Model
}

// NewProse creates a prose-backed tagger. The tagging model is loaded once
// here and shared by every Tag call.
func NewProse(stemmer Stemmer) (*Prose, error) {
	if stemmer == nil {
		stemmer = Lowercase{}
	}
	doc, err := prose.NewDocument("", proseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("prose model: %w", err)
	}
	return &Prose{stemmer: stemmer, model: doc.Model}, nil
}

func proseOpts() []prose.DocOpt {
	return []prose.DocOpt{
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	}
}

// Tag implements Tagger
func (p *Prose) Tag(ctx context.Context, text string) ([]token.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text, append(proseOpts(), prose.UsingModel(p.model))...)
	if err != nil {
		return nil, fmt.Errorf("prose tag: %w", err)
	}

	var tokens []token.Token
	for _, t := range doc.Tokens() {
		if !isWord(t.Text) {
			continue
		}
		tok, err := newToken(t.Text, t.Tag, p.stemmer)
		if err != nil {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
