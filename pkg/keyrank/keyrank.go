// Package keyrank extracts keywords from text with TextRank over an
// association-weighted co-occurrence graph, optionally persisting each
// result as a report.
package keyrank

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cognicore/keyrank/pkg/keyrank/extract"
	"github.com/cognicore/keyrank/pkg/keyrank/internalerr"
	"github.com/cognicore/keyrank/pkg/keyrank/report"
	"github.com/cognicore/keyrank/pkg/keyrank/store"
)

// Keyrank is the main extraction facade
type Keyrank struct {
	extractor *extract.Extractor
	store     store.Store
	reports   *report.Builder
	topK      int
	topPairs  int
	log       *zap.Logger
}

// Options configures a Keyrank instance. Store may be nil when reports are
// never saved.
type Options struct {
	Extractor *extract.Extractor
	Store     store.Store
	TopK      int
	TopPairs  int
	Logger    *zap.Logger
}

// New creates a Keyrank instance with the given dependencies
func New(opts Options) *Keyrank {
	k := &Keyrank{
		extractor: opts.Extractor,
		store:     opts.Store,
		reports:   report.New(),
		topK:      opts.TopK,
		topPairs:  opts.TopPairs,
		log:       opts.Logger,
	}
	if k.log == nil {
		k.log = zap.NewNop()
	}
	if k.extractor == nil {
		k.extractor = extract.New(extract.Options{Logger: k.log})
	}
	if k.topK <= 0 {
		k.topK = extract.DefaultTopK
	}
	if k.topPairs <= 0 {
		k.topPairs = report.DefaultTopPairs
	}
	return k
}

// Close cleanly shuts down the store, if any
func (k *Keyrank) Close() error {
	if k.store == nil {
		return nil
	}
	return k.store.Close()
}

// Request describes one extraction
type Request struct {
	Text   string
	Source string // label stored with the report
	TopK   int    // <= 0 uses the configured default
	Save   bool
}

// Result is the outcome of one extraction
type Result struct {
	Keywords []extract.Keyword
	Analysis extract.Analysis
	Report   report.Report
	Saved    bool
}

// Extract ranks the keywords of req.Text and builds a report. With Save set
// the report is written to the store.
func (k *Keyrank) Extract(ctx context.Context, req Request) (Result, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = k.topK
	}

	a, err := k.extractor.AnalyzeText(ctx, req.Text)
	if err != nil {
		return Result{}, err
	}
	keywords := a.Keywords
	if len(keywords) > topK {
		keywords = keywords[:topK]
	}
	keywords = append([]extract.Keyword(nil), keywords...)

	res := Result{
		Keywords: keywords,
		Analysis: a,
		Report:   k.reports.Build(req.Source, keywords, a, k.topPairs),
	}

	if req.Save {
		if k.store == nil {
			return res, fmt.Errorf("save report %s: %w", res.Report.ID, internalerr.ErrStoreUnavailable)
		}
		if err := k.store.SaveReport(ctx, res.Report); err != nil {
			return res, fmt.Errorf("save report %s: %w", res.Report.ID, err)
		}
		res.Saved = true
	}

	k.log.Info("extracted keywords",
		zap.String("source", req.Source),
		zap.String("report", res.Report.ID),
		zap.Int("keywords", len(keywords)),
		zap.Bool("saved", res.Saved),
	)
	return res, nil
}

// Report loads a saved report
func (k *Keyrank) Report(ctx context.Context, id string) (report.Report, error) {
	if k.store == nil {
		return report.Report{}, fmt.Errorf("load report %s: %w", id, internalerr.ErrStoreUnavailable)
	}
	return k.store.GetReport(ctx, id)
}

// DeleteReport removes a saved report
func (k *Keyrank) DeleteReport(ctx context.Context, id string) error {
	if k.store == nil {
		return fmt.Errorf("delete report %s: %w", id, internalerr.ErrStoreUnavailable)
	}
	if err := k.store.DeleteReport(ctx, id); err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	k.log.Info("deleted report", zap.String("report", id))
	return nil
}

// Reports lists saved reports newest first
func (k *Keyrank) Reports(ctx context.Context, source string, limit int) ([]report.Report, error) {
	if k.store == nil {
		return nil, fmt.Errorf("list reports: %w", internalerr.ErrStoreUnavailable)
	}
	return k.store.ListReports(ctx, source, limit)
}
