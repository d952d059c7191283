package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/keyrank/pkg/keyrank/cooccur"
	"github.com/cognicore/keyrank/pkg/keyrank/extract"
	"github.com/cognicore/keyrank/pkg/keyrank/internalerr"
	"github.com/cognicore/keyrank/pkg/keyrank/pagerank"
	"github.com/cognicore/keyrank/pkg/keyrank/pmi"
	"github.com/cognicore/keyrank/pkg/keyrank/tagger"
)

// Config is the extraction configuration file
type Config struct {
	Window      int         `yaml:"window"`
	TopK        int         `yaml:"top_k"`
	PageRank    PageRank    `yaml:"pagerank"`
	Association Association `yaml:"association"`
	Tagger      Tagger      `yaml:"tagger"`
	Stoplist    string      `yaml:"stoplist"`
}

// PageRank holds the ranker settings
type PageRank struct {
	Damping       float64 `yaml:"damping"`
	MaxIterations int     `yaml:"max_iterations"`
	Epsilon       float64 `yaml:"epsilon"`
}

// Association selects the edge reweighting formula
type Association struct {
	Scheme  string  `yaml:"scheme"`
	Epsilon float64 `yaml:"epsilon"`
}

// Tagger selects the tagger and sizes its stem cache
type Tagger struct {
	Kind          string `yaml:"kind"`
	StemCacheSize int    `yaml:"stem_cache_size"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Window: cooccur.DefaultWindow,
		TopK:   extract.DefaultTopK,
		PageRank: PageRank{
			Damping:       pagerank.DefaultDamping,
			MaxIterations: pagerank.DefaultMaxIterations,
			Epsilon:       pagerank.DefaultEpsilon,
		},
		Association: Association{
			Scheme:  string(pmi.SchemeLMI),
			Epsilon: 1.0,
		},
		Tagger: Tagger{
			Kind:          string(tagger.KindProse),
			StemCacheSize: tagger.DefaultStemCacheSize,
		},
	}
}

// Load reads a YAML config file. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", path, internalerr.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch {
	case c.Window < cooccur.MinWindow:
		return invalid("window must be at least %d, got %d", cooccur.MinWindow, c.Window)
	case c.TopK < 1:
		return invalid("top_k must be positive, got %d", c.TopK)
	case c.PageRank.Damping <= 0 || c.PageRank.Damping >= 1:
		return invalid("pagerank.damping must be in (0, 1), got %g", c.PageRank.Damping)
	case c.PageRank.MaxIterations < 1:
		return invalid("pagerank.max_iterations must be positive, got %d", c.PageRank.MaxIterations)
	case c.PageRank.Epsilon <= 0:
		return invalid("pagerank.epsilon must be positive, got %g", c.PageRank.Epsilon)
	case c.Association.Epsilon <= 0:
		return invalid("association.epsilon must be positive, got %g", c.Association.Epsilon)
	case c.Tagger.StemCacheSize < 0:
		return invalid("tagger.stem_cache_size must not be negative, got %d", c.Tagger.StemCacheSize)
	}
	if _, err := pmi.ParseScheme(c.Association.Scheme); err != nil {
		return err
	}
	if _, err := tagger.ParseKind(c.Tagger.Kind); err != nil {
		return err
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), internalerr.ErrInvalidConfig)
}

// Stoplist represents the stopword list file. Terms get the default
// function-word tag; Tags assigns explicit ones.
type Stoplist struct {
	Terms []string          `yaml:"terms"`
	Tags  map[string]string `yaml:"tags"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", path, internalerr.ErrInvalidConfig, err)
	}

	return &sl, nil
}
