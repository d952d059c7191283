package keyrank

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/keyrank/pkg/keyrank/extract"
	"github.com/cognicore/keyrank/pkg/keyrank/internalerr"
	"github.com/cognicore/keyrank/pkg/keyrank/store/memstore"
	"github.com/cognicore/keyrank/pkg/keyrank/tagger"
)

const tagged = "compact/JJ graph/NN of/IN word/NN nodes/NNS and/CC weighted/JJ " +
	"edges/NNS ranks/VBZ graph/NN words/NNS"

func newReadable(t *testing.T, topK int) (*Keyrank, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	k := New(Options{
		Extractor: extract.New(extract.Options{Tagger: tagger.NewReadable(nil)}),
		Store:     st,
		TopK:      topK,
	})
	t.Cleanup(func() { k.Close() })
	return k, st
}

func TestExtractBuildsReport(t *testing.T) {
	k, _ := newReadable(t, 3)

	res, err := k.Extract(context.Background(), Request{Text: tagged, Source: "doc"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Keywords) != 3 {
		t.Fatalf("Expected configured top 3, got %d", len(res.Keywords))
	}
	if res.Report.ID == "" || res.Report.Source != "doc" {
		t.Errorf("Unexpected report header %+v", res.Report)
	}
	if len(res.Report.Keywords) != 3 || res.Report.Keywords[0].Stem != res.Keywords[0].Token.Stem {
		t.Errorf("Report keywords should mirror the result, got %+v", res.Report.Keywords)
	}
	if res.Saved {
		t.Error("Report should not be saved unless requested")
	}
}

func TestExtractRequestTopKOverrides(t *testing.T) {
	k, _ := newReadable(t, 3)

	res, err := k.Extract(context.Background(), Request{Text: tagged, TopK: 5})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Keywords) != 5 {
		t.Errorf("Expected 5 keywords, got %d", len(res.Keywords))
	}
}

func TestExtractSaves(t *testing.T) {
	ctx := context.Background()
	k, _ := newReadable(t, 5)

	res, err := k.Extract(ctx, Request{Text: tagged, Source: "doc", Save: true})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !res.Saved {
		t.Fatal("Expected report to be saved")
	}

	got, err := k.Report(ctx, res.Report.ID)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if len(got.Keywords) != len(res.Keywords) {
		t.Errorf("Saved report has %d keywords, want %d", len(got.Keywords), len(res.Keywords))
	}

	list, err := k.Reports(ctx, "doc", 0)
	if err != nil {
		t.Fatalf("Reports: %v", err)
	}
	if len(list) != 1 || list[0].ID != res.Report.ID {
		t.Errorf("Expected the saved report in the list, got %d reports", len(list))
	}
}

func TestExtractSaveWithoutStore(t *testing.T) {
	k := New(Options{Extractor: extract.New(extract.Options{Tagger: tagger.NewReadable(nil)})})
	defer k.Close()

	_, err := k.Extract(context.Background(), Request{Text: tagged, Save: true})
	if !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := k.Reports(context.Background(), "", 0); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := k.Report(context.Background(), "any"); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable, got %v", err)
	}
	if err := k.DeleteReport(context.Background(), "any"); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable, got %v", err)
	}
}

func TestDeleteReport(t *testing.T) {
	ctx := context.Background()
	k, _ := newReadable(t, 5)

	res, err := k.Extract(ctx, Request{Text: tagged, Source: "doc", Save: true})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if err := k.DeleteReport(ctx, res.Report.ID); err != nil {
		t.Fatalf("DeleteReport: %v", err)
	}
	if _, err := k.Report(ctx, res.Report.ID); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Deleted report should be gone, got %v", err)
	}
	if err := k.DeleteReport(ctx, res.Report.ID); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Second delete should be ErrNotFound, got %v", err)
	}
}

func TestExtractEmptyText(t *testing.T) {
	k, _ := newReadable(t, 5)

	res, err := k.Extract(context.Background(), Request{Text: ""})
	if err != nil {
		t.Fatalf("Empty text should not fail: %v", err)
	}
	if len(res.Keywords) != 0 || len(res.Report.TopPairs) != 0 {
		t.Errorf("Expected empty result, got %+v", res.Keywords)
	}
}

func TestDefaultsUseHeuristicTagger(t *testing.T) {
	k := New(Options{})
	defer k.Close()

	res, err := k.Extract(context.Background(), Request{
		Text: "The quick brown fox jumps over the lazy dog near the quiet river bank.",
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Keywords) == 0 {
		t.Error("Expected keywords from plain text")
	}
}
