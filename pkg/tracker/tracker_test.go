package tracker

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/autodoc-ai/autodoc/pkg/models"
)

func newTracker(t *testing.T) *SQLiteTracker {
	t.Helper()
	tr, err := New(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { tr.Close() })
	return tr
}

func TestRecordAndQuery(t *testing.T) {
	tr := newTracker(t)
	ctx := context.Background()

	err := tr.Record(ctx, models.GenerationRecord{
		File:         "claims_processor.py",
		Kind:         models.KindFunction,
		Name:         "calculate_basic_premium",
		Source:       models.SourceDirect,
		PromptTokens: 120,
		OutputTokens: 80,
		LatencyMs:    1500,
	})
	if err != nil {
		t.Fatal(err)
	}

	records, err := tr.Query(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.ID == "" {
		t.Error("expected generated record ID")
	}
	if r.Name != "calculate_basic_premium" || r.Source != models.SourceDirect {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestSummary(t *testing.T) {
	tr := newTracker(t)
	ctx := context.Background()

	recs := []models.GenerationRecord{
		{File: "a.py", Kind: models.KindClass, Name: "A", Source: models.SourceDirect, PromptTokens: 100, OutputTokens: 50, LatencyMs: 1000},
		{File: "a.py", Kind: models.KindFunction, Name: "f", Source: models.SourceDirect, PromptTokens: 60, OutputTokens: 30, LatencyMs: 2000},
		{File: "b.py", Kind: models.KindClass, Name: "B", Source: models.SourceCondensed, PromptTokens: 900, OutputTokens: 40, LatencyMs: 3000},
	}
	for _, r := range recs {
		if err := tr.Record(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	summaries, err := tr.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summary rows, got %d", len(summaries))
	}

	bySource := make(map[models.Source]models.GenerationSummary)
	for _, s := range summaries {
		bySource[s.Source] = s
	}
	direct := bySource[models.SourceDirect]
	if direct.Count != 2 || direct.PromptTokens != 160 || direct.AvgLatencyMs != 1500 {
		t.Errorf("unexpected direct summary: %+v", direct)
	}
	condensed := bySource[models.SourceCondensed]
	if condensed.Count != 1 || condensed.OutputTokens != 40 {
		t.Errorf("unexpected condensed summary: %+v", condensed)
	}
}

func TestQueryLimit(t *testing.T) {
	tr := newTracker(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := tr.Record(ctx, models.GenerationRecord{
			File: "a.py", Kind: models.KindVariable, Name: "v", Source: models.SourceMock,
		}); err != nil {
			t.Fatal(err)
		}
	}
	records, err := tr.Query(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
}
