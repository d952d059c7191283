package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cognicore/keyrank/pkg/keyrank/extract"
	"github.com/cognicore/keyrank/pkg/keyrank/pagerank"
	"github.com/cognicore/keyrank/pkg/keyrank/pmi"
	"github.com/cognicore/keyrank/pkg/keyrank/stoplist"
	"github.com/cognicore/keyrank/pkg/keyrank/tagger"
)

// Loader loads configuration files and constructs components.
// StoplistPath overrides the stoplist named in the config file.
type Loader struct {
	ConfigPath   string
	StoplistPath string
	Logger       *zap.Logger
}

// Components holds the configured extraction stack
type Components struct {
	Config    *Config
	Stoplist  *stoplist.Manager
	Tagger    tagger.Tagger
	Extractor *extract.Extractor
	TopK      int
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	return l.Build(cfg)
}

// Build constructs components from an already loaded config
func (l *Loader) Build(cfg *Config) (*Components, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	comp := &Components{Config: cfg, TopK: cfg.TopK}

	// Load stoplist
	comp.Stoplist = stoplist.English()
	path := cfg.Stoplist
	if l.StoplistPath != "" {
		path = l.StoplistPath
	}
	if path != "" {
		sl, err := LoadStoplist(path)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		for _, term := range sl.Terms {
			comp.Stoplist.Add(term, stoplist.DefaultTag)
		}
		for term, tag := range sl.Tags {
			comp.Stoplist.Add(term, tag)
		}
	}

	stemmer, err := tagger.NewSnowball(cfg.Tagger.StemCacheSize)
	if err != nil {
		return nil, fmt.Errorf("stem cache: %w", err)
	}
	kind, _ := tagger.ParseKind(cfg.Tagger.Kind)
	switch kind {
	case tagger.KindReadable:
		comp.Tagger = tagger.NewReadable(stemmer)
	case tagger.KindHeuristic:
		comp.Tagger = tagger.NewHeuristic(comp.Stoplist, stemmer)
	default:
		p, err := tagger.NewProse(stemmer)
		if err != nil {
			return nil, err
		}
		comp.Tagger = p
	}

	scheme, _ := pmi.ParseScheme(cfg.Association.Scheme)
	comp.Extractor = extract.New(extract.Options{
		Tagger: comp.Tagger,
		Window: cfg.Window,
		Ranker: pagerank.New(pagerank.Options{
			Damping:       cfg.PageRank.Damping,
			MaxIterations: cfg.PageRank.MaxIterations,
			Epsilon:       cfg.PageRank.Epsilon,
		}),
		Weigher: pmi.NewCalculatorWithScheme(cfg.Association.Epsilon, scheme),
		Logger:  l.Logger,
	})

	return comp, nil
}
