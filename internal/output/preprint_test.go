package output_test

import (
	"testing"

	"bibmend/internal/bibtex"
	"bibmend/internal/config"
)

func TestPreprintNormalizationBuildsSyntheticRecord(t *testing.T) {
	p := newProcessor(t, config.Output{NormalizePreprints: true})
	records, stats := p.Process([]bibtex.Record{record("vaswani17",
		"author", "Vaswani, Ashish",
		"title", "Attention Is All You Need",
		"journal", "CoRR",
		"url", "https://arxiv.org/abs/1706.03762",
	)})
	if stats.PreprintsNormalized != 1 {
		t.Fatalf("PreprintsNormalized = %d, want 1", stats.PreprintsNormalized)
	}

	got := records[0]
	if got.Type != "article" || got.ID != "vaswani17" {
		t.Errorf("header = @%s{%s}, want the original type and key", got.Type, got.ID)
	}
	wantFields := []bibtex.Field{
		{Key: "author", Value: "Vaswani, Ashish"},
		{Key: "title", Value: "Attention Is All You Need"},
		{Key: "eprint", Value: "1706.03762"},
		{Key: "journal", Value: "arXiv preprint"},
		{Key: "volume", Value: "abs/1706.03762"},
		{Key: "year", Value: "2017"},
		{Key: "url", Value: "https://arxiv.org/abs/1706.03762"},
	}
	fields := got.Fields()
	if len(fields) != len(wantFields) {
		t.Fatalf("got %d fields, want %d: %v", len(fields), len(wantFields), fields)
	}
	for i, want := range wantFields {
		if fields[i] != want {
			t.Errorf("field %d = %v, want %v", i, fields[i], want)
		}
	}
}

func TestPreprintNormalizationReadsArxivPrefix(t *testing.T) {
	p := newProcessor(t, config.Output{NormalizePreprints: true})
	records, stats := p.Process([]bibtex.Record{record("doe23",
		"title", "Some Preprint",
		"note", "Preprint arXiv:2301.12345",
	)})
	if stats.PreprintsNormalized != 1 {
		t.Fatalf("PreprintsNormalized = %d, want 1", stats.PreprintsNormalized)
	}

	got := records[0]
	if got.Has("author") {
		t.Error("synthetic record invented an author field")
	}
	if got.Value("eprint") != "2301.12345" || got.Value("year") != "2023" {
		t.Errorf("eprint = %q, year = %q", got.Value("eprint"), got.Value("year"))
	}
	if got.Has("note") {
		t.Error("synthetic record kept the note field")
	}
}

func TestPreprintMarkerInTitleField(t *testing.T) {
	p := newProcessor(t, config.Output{NormalizePreprints: true})
	records, stats := p.Process([]bibtex.Record{record("z1",
		"title", "Scaling Laws arXiv:2301.12345",
		"journal", "Workshop Notes",
	)})
	if stats.PreprintsNormalized != 1 {
		t.Fatalf("PreprintsNormalized = %d, want 1", stats.PreprintsNormalized)
	}

	got := records[0]
	if got.Value("title") != "Scaling Laws arXiv:2301.12345" {
		t.Errorf("title = %q, want it carried verbatim", got.Value("title"))
	}
	if got.Value("eprint") != "2301.12345" || got.Value("volume") != "abs/2301.12345" {
		t.Errorf("eprint = %q, volume = %q", got.Value("eprint"), got.Value("volume"))
	}
	if got.Value("journal") != "arXiv preprint" {
		t.Errorf("journal = %q, want the fixed preprint label", got.Value("journal"))
	}
}

func TestPreprintConflictLeavesRecordUnchanged(t *testing.T) {
	p := newProcessor(t, config.Output{NormalizePreprints: true})
	records, stats := p.Process([]bibtex.Record{record("x1",
		"title", "Ambiguous",
		"url", "https://arxiv.org/abs/1706.03762",
		"note", "see also arXiv:2301.12345",
	)})
	if stats.PreprintsNormalized != 0 {
		t.Errorf("PreprintsNormalized = %d, want 0", stats.PreprintsNormalized)
	}
	got := records[0]
	if !got.Has("note") || got.Value("url") != "https://arxiv.org/abs/1706.03762" {
		t.Error("conflicting identifiers must leave the record untouched")
	}
}

func TestPreprintIgnoresBareIdentifiers(t *testing.T) {
	p := newProcessor(t, config.Output{NormalizePreprints: true})
	records, stats := p.Process([]bibtex.Record{record("y1",
		"title", "No Marker",
		"eprint", "1706.03762",
	)})
	if stats.PreprintsNormalized != 0 {
		t.Errorf("PreprintsNormalized = %d, want 0", stats.PreprintsNormalized)
	}
	if records[0].Has("volume") {
		t.Error("record without an arXiv marker was rewritten")
	}
}
