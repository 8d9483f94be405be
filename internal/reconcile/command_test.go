package reconcile_test

import (
	"testing"
	"time"

	"bibmend/internal/bibtex"
	"bibmend/internal/reconcile"
)

var testDate = time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)

func makeRecord(id string, pairs ...string) bibtex.Record {
	r := bibtex.NewRecord("article", id)
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func TestKeepReturnsRecordUnchanged(t *testing.T) {
	record := makeRecord("smith2020", "title", "A Study", "year", "2020")
	got := reconcile.NewKeep(record).Record()
	if got.ID != "smith2020" || got.Value("title") != "A Study" {
		t.Errorf("kept record changed: %q %q", got.ID, got.Value("title"))
	}
	if got.Has("bibmend_comment") {
		t.Error("Keep must not add a provenance field")
	}
}

func TestUpdateForcesCurrentKeyAndProvenance(t *testing.T) {
	current := makeRecord("smith2020", "title", "A Study")
	replacement := makeRecord("DBLP:conf/x/Smith20", "title", "A Study of Things", "booktitle", "Proc. X", "year", "2020")

	got := reconcile.NewUpdate(current, replacement, reconcile.MethodManual, testDate).Record()
	if got.ID != "smith2020" {
		t.Errorf("ID = %q, want the current citation key", got.ID)
	}
	if got.Value("title") != "A Study of Things" {
		t.Errorf("title = %q, want the replacement title", got.Value("title"))
	}
	if got.Value("bibmend_comment") != "manual update on 2024-03-09" {
		t.Errorf("provenance = %q", got.Value("bibmend_comment"))
	}
	fields := got.Fields()
	if fields[len(fields)-1].Key != "bibmend_comment" {
		t.Errorf("last field = %q, want the provenance comment", fields[len(fields)-1].Key)
	}

	// The replacement itself must stay untouched.
	if replacement.ID != "DBLP:conf/x/Smith20" || replacement.Has("bibmend_comment") {
		t.Error("Update mutated the replacement record")
	}
}

func TestUpdateAutomatedProvenance(t *testing.T) {
	got := reconcile.NewUpdate(makeRecord("a1"), makeRecord("b1"), reconcile.MethodAutomated, testDate).Record()
	if got.Value("bibmend_comment") != "automated update on 2024-03-09" {
		t.Errorf("provenance = %q", got.Value("bibmend_comment"))
	}
}

func TestRecordsExecutesInOrder(t *testing.T) {
	commands := []reconcile.Command{
		reconcile.NewKeep(makeRecord("first1")),
		reconcile.NewUpdate(makeRecord("second1"), makeRecord("fetched1"), reconcile.MethodAutomated, testDate),
	}
	records := reconcile.Records(commands)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != "first1" || records[1].ID != "second1" {
		t.Errorf("record order = %q, %q", records[0].ID, records[1].ID)
	}
}
