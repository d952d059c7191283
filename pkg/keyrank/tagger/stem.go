package tagger

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kljensen/snowball"
)

// DefaultStemCacheSize bounds the number of memoized stems
const DefaultStemCacheSize = 4096

// Snowball stems English words with the Snowball (Porter2) algorithm and
// memoizes results in an LRU cache.
type Snowball struct {
	cache *lru.Cache[string, string]
}

// NewSnowball creates a stemmer; size <= 0 uses DefaultStemCacheSize
func NewSnowball(size int) (*Snowball, error) {
	if size <= 0 {
		size = DefaultStemCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &Snowball{cache: cache}, nil
}

// Stem returns the lowercase stem of word. Words the stemmer rejects are
// returned lowercased.
func (s *Snowball) Stem(word string) string {
	lower := strings.ToLower(strings.TrimSpace(word))
	if lower == "" {
		return ""
	}
	if stem, ok := s.cache.Get(lower); ok {
		return stem
	}

	stem, err := snowball.Stem(lower, "english", true)
	if err != nil || stem == "" {
		stem = lower
	}
	s.cache.Add(lower, stem)
	return stem
}

// Lowercase is a Stemmer that only folds case
type Lowercase struct{}

// Stem implements Stemmer
func (Lowercase) Stem(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
