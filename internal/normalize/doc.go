// Package normalize canonicalizes title and author strings for exact-match
// joins between an input bibliography and the offline corpus index.
//
// Title normalization maps every non-alphanumeric character to a space,
// collapses whitespace runs, and trims. Author normalization folds newlines
// to spaces and applies two fixed pair-collapse passes; it keeps punctuation
// and does not fully flatten long whitespace runs.
//
// Corpus index keys and reference equality both depend on these exact rules,
// so neither function may be strengthened or weakened.
package normalize
