package selector_test

import (
	"context"
	"errors"
	"testing"

	"bibmend/internal/bibtex"
	"bibmend/internal/resolve"
	"bibmend/internal/selector"
)

func autoSet(id, title string) resolve.CandidateSet {
	record := bibtex.NewRecord("article", id)
	record.Set("title", title)
	current := resolve.NewReference(record)

	alt := bibtex.NewRecord("article", id+"-alt")
	alt.Set("title", title+" Revisited")
	return resolve.NewCandidateSet(current, []resolve.Reference{resolve.NewReference(alt)})
}

func TestAutoKeepsCurrentForEverySet(t *testing.T) {
	sets := make(chan resolve.CandidateSet, 3)
	sets <- autoSet("first1", "First Paper")
	sets <- autoSet("second1", "Second Paper")
	sets <- autoSet("third1", "Third Paper")
	close(sets)

	decisions, err := selector.Auto{}.Choose(context.Background(), sets, 3)
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if len(decisions) != 3 {
		t.Fatalf("got %d decisions, want 3", len(decisions))
	}
	for i, decision := range decisions {
		if !decision.Chosen.Equal(decision.Current) {
			t.Fatalf("decision %d chose %q over the current reference", i, decision.Chosen.Title)
		}
	}
	if decisions[0].Current.Record.ID != "first1" || decisions[2].Current.Record.ID != "third1" {
		t.Fatalf("decisions out of order: %q, %q", decisions[0].Current.Record.ID, decisions[2].Current.Record.ID)
	}
}

func TestAutoReturnsContextError(t *testing.T) {
	sets := make(chan resolve.CandidateSet)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (selector.Auto{}).Choose(ctx, sets, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("Choose err = %v, want context.Canceled", err)
	}
}
