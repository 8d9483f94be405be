package reconcile_test

import (
	"testing"

	"bibmend/internal/bibtex"
	"bibmend/internal/corpus"
	"bibmend/internal/reconcile"
	"bibmend/internal/resolve"
)

func corpusState(records ...bibtex.Record) *corpus.State {
	state := &corpus.State{Index: make(map[string]bibtex.Record)}
	for _, record := range records {
		state.Index[record.Value("title")] = record
	}
	return state
}

func TestRouteSplitsOfflineHitsFromMisses(t *testing.T) {
	match := makeRecord("corpus1", "title", "Going Deeper with Convolutions", "booktitle", "CVPR", "year", "2015")
	state := corpusState(match)

	hit := makeRecord("szegedy15", "title", "Going Deeper with Convolutions")
	miss := makeRecord("unknown1", "title", "An Unindexed Work")

	commands, unresolved := reconcile.Route([]bibtex.Record{hit, miss}, state, testDate)
	if len(commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(commands))
	}
	if len(unresolved) != 1 || unresolved[0].ID != "unknown1" {
		t.Fatalf("unresolved = %v, want just the miss", unresolved)
	}

	update, ok := commands[0].(reconcile.Update)
	if !ok {
		t.Fatalf("command 0 = %T, want Update", commands[0])
	}
	record := update.Record()
	if record.ID != "szegedy15" {
		t.Errorf("updated record ID = %q, want the input key", record.ID)
	}
	if record.Value("booktitle") != "CVPR" {
		t.Errorf("updated record lost corpus fields: %q", record.Value("booktitle"))
	}
	if record.Value("bibmend_comment") != "automated update on 2024-03-09" {
		t.Errorf("provenance = %q", record.Value("bibmend_comment"))
	}

	if _, ok := commands[1].(reconcile.Keep); !ok {
		t.Fatalf("command 1 = %T, want Keep", commands[1])
	}
}

func TestRouteMatchesOnNormalizedTitle(t *testing.T) {
	state := corpusState(makeRecord("corpus1", "title", "Going Deeper with Convolutions"))
	input := makeRecord("in1", "title", "Going Deeper: with Convolutions!!!")

	commands, unresolved := reconcile.Route([]bibtex.Record{input}, state, testDate)
	if len(unresolved) != 0 {
		t.Fatalf("unresolved = %v, want none", unresolved)
	}
	if _, ok := commands[0].(reconcile.Update); !ok {
		t.Fatalf("command = %T, want Update via normalized title match", commands[0])
	}
}

func TestFinalizeKeepsCurrentAndUpdatesChosen(t *testing.T) {
	current := resolve.NewReference(makeRecord("cur1", "title", "Work One", "year", "2019"))
	candidate := resolve.NewReference(makeRecord("cand1", "title", "Work One Revised", "year", "2020"))

	commands := reconcile.Finalize([]resolve.Decision{
		{Current: current, Chosen: current},
		{Current: current, Chosen: candidate},
	}, testDate)
	if len(commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(commands))
	}
	if _, ok := commands[0].(reconcile.Keep); !ok {
		t.Errorf("command 0 = %T, want Keep when the current reference is chosen", commands[0])
	}
	update, ok := commands[1].(reconcile.Update)
	if !ok {
		t.Fatalf("command 1 = %T, want Update", commands[1])
	}
	record := update.Record()
	if record.ID != "cur1" || record.Value("title") != "Work One Revised" {
		t.Errorf("manual update = %q %q", record.ID, record.Value("title"))
	}
	if record.Value("bibmend_comment") != "manual update on 2024-03-09" {
		t.Errorf("provenance = %q", record.Value("bibmend_comment"))
	}
}

func TestMergeDropsOfflineKeeps(t *testing.T) {
	online := []reconcile.Command{
		reconcile.NewKeep(makeRecord("kept1")),
		reconcile.NewUpdate(makeRecord("manual1"), makeRecord("fetchedM"), reconcile.MethodManual, testDate),
	}
	offline := []reconcile.Command{
		reconcile.NewKeep(makeRecord("routed1")),
		reconcile.NewUpdate(makeRecord("auto1"), makeRecord("fetchedA"), reconcile.MethodAutomated, testDate),
	}

	records := reconcile.Records(reconcile.Merge(online, offline))
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].ID != "kept1" || records[1].ID != "manual1" || records[2].ID != "auto1" {
		t.Errorf("merged order = %q, %q, %q", records[0].ID, records[1].ID, records[2].ID)
	}
}
