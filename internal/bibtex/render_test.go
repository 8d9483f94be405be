package bibtex_test

import (
	"strings"
	"testing"

	"bibmend/internal/bibtex"
)

func TestRenderLinesFormat(t *testing.T) {
	rec := bibtex.NewRecord("article", "smith2020")
	rec.Set("title", "A Title")
	rec.Set("year", "2020")

	lines := bibtex.RenderLines(rec)
	want := []string{
		"@article{smith2020,",
		"  title = {A Title},",
		"  year = {2020},",
		"}",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderSeparatesEntriesWithBlankLine(t *testing.T) {
	a := bibtex.NewRecord("article", "a")
	a.Set("title", "One")
	b := bibtex.NewRecord("book", "b")
	b.Set("title", "Two")

	out := bibtex.Render([]bibtex.Record{a, b})
	want := "@article{a,\n  title = {One},\n}\n\n@book{b,\n  title = {Two},\n}"
	if out != want {
		t.Errorf("Render output mismatch:\ngot:\n%s\nwant:\n%s", out, want)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("Render output has a trailing newline")
	}
}

func TestRenderEmptyList(t *testing.T) {
	if out := bibtex.Render(nil); out != "" {
		t.Errorf("Render(nil) = %q, want empty", out)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	input := "@article{rt1,\n  title = {Round {Trip} Title},\n  author = {A. Author},\n}"
	records, err := bibtex.ParseString(input)
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}
	if out := bibtex.Render(records); out != input {
		t.Errorf("round trip mismatch:\ngot:\n%s\nwant:\n%s", out, input)
	}
}
