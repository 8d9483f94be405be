package normalize

import (
	"regexp"
	"strings"
)

// nonAlnumRun matches runs of characters outside A-Za-z0-9.
var nonAlnumRun = regexp.MustCompile(`[^A-Za-z0-9]+`)

// whitespacePair matches two consecutive whitespace characters.
var whitespacePair = regexp.MustCompile(`\s\s`)

// Title replaces every character outside A-Za-z0-9 with a space, collapses
// the resulting runs to single spaces, and trims. It is idempotent: applying
// it to its own output returns the same string.
func Title(s string) string {
	return strings.TrimSpace(nonAlnumRun.ReplaceAllString(s, " "))
}

// Author folds newlines into spaces and collapses whitespace with exactly
// two pair-collapse passes before trimming. Punctuation is kept. The fixed
// pass count means runs of five or more whitespace characters can leave a
// double space behind; callers must not rely on full collapse.
func Author(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = whitespacePair.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "  ", " ")
	return strings.TrimSpace(s)
}
