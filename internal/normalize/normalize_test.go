package normalize_test

import (
	"strings"
	"testing"

	"bibmend/internal/normalize"
)

func TestTitleStripsPunctuation(t *testing.T) {
	if got := normalize.Title("A. B—C!"); got != "A B C" {
		t.Errorf("Title = %q, want %q", got, "A B C")
	}
}

func TestTitleIdempotent(t *testing.T) {
	inputs := []string{
		"A. B—C!",
		"  Attention   is (all) you need?  ",
		"already normal",
		"",
		"!!!",
		"tabs\tand\nnewlines",
	}
	for _, in := range inputs {
		once := normalize.Title(in)
		twice := normalize.Title(once)
		if once != twice {
			t.Errorf("Title(%q) not idempotent: %q then %q", in, once, twice)
		}
	}
}

func TestTitleCollapsesRuns(t *testing.T) {
	cases := map[string]string{
		"Deep   --  Learning":   "Deep Learning",
		"a-----b":               "a b",
		"  leading and trail  ": "leading and trail",
		"!!!":                   "",
	}
	for in, want := range cases {
		if got := normalize.Title(in); got != want {
			t.Errorf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTitleKeepsCase(t *testing.T) {
	if got := normalize.Title("Deep Learning"); got != "Deep Learning" {
		t.Errorf("Title changed case: %q", got)
	}
}

func TestAuthorFoldsNewlines(t *testing.T) {
	got := normalize.Author("A. Author and\nB. Author")
	if got != "A. Author and B. Author" {
		t.Errorf("Author = %q", got)
	}
}

func TestAuthorKeepsPunctuation(t *testing.T) {
	if got := normalize.Author("Smith, John and Doe, Jane"); got != "Smith, John and Doe, Jane" {
		t.Errorf("Author dropped punctuation: %q", got)
	}
}

func TestAuthorTwoPassCollapse(t *testing.T) {
	cases := []struct {
		spaces int
		want   string
	}{
		{2, "a b"},
		{3, "a b"},
		{4, "a b"},
		{5, "a  b"},
	}
	for _, tc := range cases {
		in := "a" + strings.Repeat(" ", tc.spaces) + "b"
		if got := normalize.Author(in); got != tc.want {
			t.Errorf("Author with %d spaces = %q, want %q", tc.spaces, got, tc.want)
		}
	}
}

func TestAuthorTrims(t *testing.T) {
	if got := normalize.Author("  J. Smith  "); got != "J. Smith" {
		t.Errorf("Author = %q", got)
	}
}
