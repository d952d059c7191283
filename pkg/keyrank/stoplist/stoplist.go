package stoplist

import (
	"sort"
	"strings"
)

// DefaultTag is assigned to stopwords loaded without an explicit tag.
// Only its coarse category (not a content word) matters to ranking.
const DefaultTag = "IN"

// Manager holds function words and the tag each one should receive
type Manager struct {
	stops map[string]string
}

// NewManager creates a new stoplist manager
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]string, len(initialStops))
	for _, s := range initialStops {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		stops[s] = DefaultTag
	}
	return &Manager{stops: stops}
}

// English returns a manager seeded with common English function words and
// their Penn Treebank tags.
func English() *Manager {
	m := &Manager{stops: make(map[string]string, len(englishTags))}
	for w, tag := range englishTags {
		m.stops[w] = tag
	}
	return m
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}

// Tag returns the tag recorded for a stopword
func (m *Manager) Tag(token string) (string, bool) {
	tag, ok := m.stops[strings.ToLower(token)]
	return tag, ok
}

// Add adds a token to the stoplist with a tag (DefaultTag when empty).
// Blank tokens are ignored.
func (m *Manager) Add(token, tag string) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return
	}
	if tag == "" {
		tag = DefaultTag
	}
	m.stops[token] = tag
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// All returns all stopwords in sorted order
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

var englishTags = map[string]string{
	"a": "DT", "an": "DT", "the": "DT", "this": "DT", "that": "DT", "these": "DT",
	"those": "DT", "some": "DT", "any": "DT", "each": "DT", "every": "DT", "no": "DT",
	"all": "DT", "both": "DT", "another": "DT",
	"of": "IN", "in": "IN", "on": "IN", "at": "IN", "by": "IN", "for": "IN",
	"with": "IN", "from": "IN", "into": "IN", "about": "IN", "over": "IN",
	"under": "IN", "between": "IN", "through": "IN", "after": "IN", "before": "IN",
	"during": "IN", "without": "IN", "against": "IN", "if": "IN", "because": "IN",
	"while": "IN", "than": "IN", "as": "IN", "like": "IN", "since": "IN",
	"and": "CC", "or": "CC", "but": "CC", "nor": "CC", "yet": "CC",
	"to": "TO",
	"i": "PRP", "you": "PRP", "he": "PRP", "she": "PRP", "it": "PRP", "we": "PRP",
	"they": "PRP", "me": "PRP", "him": "PRP", "her": "PRP", "us": "PRP", "them": "PRP",
	"my": "PRP$", "your": "PRP$", "his": "PRP$", "its": "PRP$", "our": "PRP$", "their": "PRP$",
	"who": "WP", "whom": "WP", "what": "WP", "which": "WDT", "whose": "WP$",
	"when": "WRB", "where": "WRB", "why": "WRB", "how": "WRB",
	"is": "VBZ", "are": "VBP", "was": "VBD", "were": "VBD", "be": "VB", "been": "VBN",
	"being": "VBG", "am": "VBP", "has": "VBZ", "have": "VBP", "had": "VBD",
	"do": "VBP", "does": "VBZ", "did": "VBD",
	"can": "MD", "could": "MD", "will": "MD", "would": "MD", "shall": "MD",
	"should": "MD", "may": "MD", "might": "MD", "must": "MD",
	"not": "RB", "very": "RB", "also": "RB", "too": "RB", "just": "RB", "only": "RB",
	"there": "EX",
}
