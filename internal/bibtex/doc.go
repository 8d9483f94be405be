// Package bibtex models bibliographic entries and converts them to and from
// the BibTeX text format.
//
// A Record is an ordered field map with the entry type and citation key held
// apart from the ordinary fields, so every record always carries both. The
// parser accepts the common entry syntax (braced or quoted values, nested
// braces, bare numbers) and skips @comment, @preamble, and @string blocks; it
// lowercases entry types and field keys the way downstream matching expects.
// The renderer emits the exact on-disk layout the rest of the pipeline
// compares against, so its output is also the canonical form used for
// content-based deduplication.
package bibtex
