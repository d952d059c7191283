package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cognicore/keyrank/internal/corpus"
	"github.com/cognicore/keyrank/internal/htmltext"
	"github.com/cognicore/keyrank/pkg/keyrank"
	"github.com/cognicore/keyrank/pkg/keyrank/config"
	"github.com/cognicore/keyrank/pkg/keyrank/extract"
	"github.com/cognicore/keyrank/pkg/keyrank/report"
	"github.com/cognicore/keyrank/pkg/keyrank/store"
	"github.com/cognicore/keyrank/pkg/keyrank/store/sqlite"
)

func main() {
	var (
		configPath   = flag.String("config", "", "YAML config file (optional)")
		stoplistPath = flag.String("stoplist", "", "Stoplist file, overrides the config (optional)")
		text         = flag.String("text", "", "Text to analyze")
		file         = flag.String("file", "", "Read text from a file (- for stdin)")
		jsonlPath    = flag.String("jsonl", "", "Batch mode: one JSON document per line with a text field")
		isHTML       = flag.Bool("html", false, "Input is HTML; extract visible text first")
		topK         = flag.Int("topk", 0, "Number of keywords (default from config)")
		showGraph    = flag.Bool("graph", false, "Print the co-occurrence graph")
		dbPath       = flag.String("db", "", "SQLite database for saving reports (optional)")
		list         = flag.Bool("list", false, "List saved reports instead of extracting (needs --db)")
		showID       = flag.String("show", "", "Print the saved report with this ID (needs --db)")
		deleteID     = flag.String("delete", "", "Delete the saved report with this ID (needs --db)")
		source       = flag.String("source", "", "Source label stored with the report")
		verbose      = flag.Bool("verbose", false, "Debug logging")
	)
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	engine, cleanup, err := buildEngine(ctx, *configPath, *stoplistPath, *dbPath, logger)
	if err != nil {
		logger.Fatal("build engine", zap.Error(err))
	}
	defer cleanup()

	q := reportQuery{List: *list, Show: *showID, Delete: *deleteID, Source: *source, Limit: *topK}
	if q.active() {
		if *dbPath == "" {
			logger.Fatal("--list, --show and --delete require --db")
		}
		if err := runReports(ctx, engine, q, os.Stdout); err != nil {
			logger.Fatal("reports", zap.Error(err))
		}
		return
	}

	if *jsonlPath != "" {
		docs, err := corpus.LoadFile(*jsonlPath, logger)
		if err != nil {
			logger.Fatal("load corpus", zap.Error(err))
		}
		opts := batchOptions{TopK: *topK, HTML: *isHTML, Save: *dbPath != ""}
		if err := runBatch(ctx, engine, docs, opts, os.Stdout); err != nil {
			logger.Fatal("batch", zap.Error(err))
		}
		return
	}

	input, label, err := readInput(*text, *file, os.Stdin)
	if err != nil {
		logger.Fatal("read input", zap.Error(err))
	}
	if *isHTML {
		input = htmltext.String(input)
	}
	if *source != "" {
		label = *source
	}

	res, err := engine.Extract(ctx, keyrank.Request{
		Text:   input,
		Source: label,
		TopK:   *topK,
		Save:   *dbPath != "",
	})
	if err != nil {
		logger.Fatal("extract", zap.Error(err))
	}

	printKeywords(os.Stdout, res.Keywords)
	if *showGraph {
		fmt.Println()
		printGraph(os.Stdout, res.Analysis)
	}
	if res.Saved {
		fmt.Printf("\nSaved report %s\n", res.Report.ID)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// buildEngine loads configuration and opens the report store when dbPath
// is set. The returned cleanup closes the store.
func buildEngine(ctx context.Context, configPath, stoplistPath, dbPath string, logger *zap.Logger) (*keyrank.Keyrank, func(), error) {
	loader := config.Loader{
		ConfigPath:   configPath,
		StoplistPath: stoplistPath,
		Logger:       logger,
	}
	comp, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}

	var st store.Store
	if dbPath != "" {
		st, err = sqlite.OpenSQLite(ctx, dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
	}

	logger.Debug("engine ready",
		zap.Int("window", comp.Extractor.Window()),
		zap.Int("top_k", comp.TopK),
		zap.Bool("store", st != nil),
	)

	engine := keyrank.New(keyrank.Options{
		Extractor: comp.Extractor,
		Store:     st,
		TopK:      comp.TopK,
		Logger:    logger,
	})
	cleanup := func() {
		if err := engine.Close(); err != nil {
			logger.Warn("close", zap.Error(err))
		}
	}
	return engine, cleanup, nil
}

// readInput picks the text source: --text, then --file, then stdin.
// It also returns a label naming where the text came from.
func readInput(text, file string, stdin io.Reader) (string, string, error) {
	switch {
	case text != "":
		return text, "text", nil
	case file != "" && file != "-":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", "", err
		}
		return string(data), file, nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), "stdin", nil
	}
}

// reportQuery selects one stored-report command. Delete wins over show,
// show over list.
type reportQuery struct {
	List   bool
	Show   string
	Delete string
	Source string
	Limit  int
}

func (q reportQuery) active() bool {
	return q.List || q.Show != "" || q.Delete != ""
}

func runReports(ctx context.Context, engine *keyrank.Keyrank, q reportQuery, w io.Writer) error {
	switch {
	case q.Delete != "":
		if err := engine.DeleteReport(ctx, q.Delete); err != nil {
			return err
		}
		fmt.Fprintf(w, "Deleted report %s\n", q.Delete)
	case q.Show != "":
		r, err := engine.Report(ctx, q.Show)
		if err != nil {
			return err
		}
		printReport(w, r)
	default:
		reports, err := engine.Reports(ctx, q.Source, q.Limit)
		if err != nil {
			return err
		}
		printReports(w, reports)
	}
	return nil
}

type batchOptions struct {
	TopK int
	HTML bool
	Save bool
}

// runBatch extracts keywords from every document, labeling each report
// with the document's label.
func runBatch(ctx context.Context, engine *keyrank.Keyrank, docs []corpus.Doc, opts batchOptions, w io.Writer) error {
	for i, d := range docs {
		input := d.Text
		if opts.HTML {
			input = htmltext.String(input)
		}
		res, err := engine.Extract(ctx, keyrank.Request{
			Text:   input,
			Source: d.Label(),
			TopK:   opts.TopK,
			Save:   opts.Save,
		})
		if err != nil {
			return fmt.Errorf("document %s: %w", d.Label(), err)
		}

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s\n", d.Label())
		printKeywords(w, res.Keywords)
	}
	return nil
}

func printKeywords(w io.Writer, keywords []extract.Keyword) {
	if len(keywords) == 0 {
		fmt.Fprintln(w, "No keywords found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tWORD\tSTEM\tTAG\tSCORE")
	for i, k := range keywords {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.4f\n", i+1, k.Token.Surface, k.Token.Stem, k.Token.Tag, k.Score)
	}
	tw.Flush()
}

// printGraph lists every edge with its raw co-occurrence count and the
// association weight used for ranking.
func printGraph(w io.Writer, a extract.Analysis) {
	if a.Graph == nil || a.Graph.Len() == 0 {
		fmt.Fprintln(w, "Empty graph.")
		return
	}
	fmt.Fprintf(w, "Graph: %d nodes, %d iterations (converged: %v)\n",
		a.Graph.Len(), a.Ranking.Iterations, a.Ranking.Converged)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "A\tB\tCOUNT\tWEIGHT")
	for _, e := range a.Graph.Edges() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\n", e.A, e.B, int(e.Weight), a.Association.At(e.I, e.J))
	}
	tw.Flush()
}

func printReport(w io.Writer, r report.Report) {
	fmt.Fprintf(w, "Report %s\nSource: %s\nCreated: %s\n\n",
		r.ID, r.Source, r.CreatedAt.Format("2006-01-02 15:04:05"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tWORD\tSTEM\tTAG\tSCORE")
	for i, k := range r.Keywords {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.4f\n", i+1, k.Word, k.Stem, k.Tag, k.Score)
	}
	tw.Flush()

	if len(r.TopPairs) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "A\tB\tCOUNT\tWEIGHT")
	for _, p := range r.TopPairs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\n", p.A, p.B, p.Count, p.Weight)
	}
	tw.Flush()
}

func printReports(w io.Writer, reports []report.Report) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No saved reports.")
		return
	}
	for _, r := range reports {
		fmt.Fprintf(w, "%s  %s  %-12s %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Source, strings.Join(r.Words(), ", "))
	}
}
