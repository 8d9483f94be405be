package resolve

import (
	"strconv"
	"strings"

	"bibmend/internal/bibtex"
	"bibmend/internal/normalize"
)

// Reference is the comparison-oriented projection of a record: publication
// year plus normalized title and author, with the backing record carried
// along. Two structurally different records compare equal when the triple
// matches.
type Reference struct {
	Year   int
	Title  string
	Author string
	Record bibtex.Record
}

// NewReference derives the reference identity of record. A missing or
// unparsable year counts as zero.
func NewReference(record bibtex.Record) Reference {
	year, _ := strconv.Atoi(strings.TrimSpace(record.Value("year")))
	return Reference{
		Year:   year,
		Title:  normalize.Title(record.Value("title")),
		Author: normalize.Author(record.Value("author")),
		Record: record,
	}
}

// Equal reports whether the two references denote the same work. Only the
// year, normalized title, and normalized author participate.
func (r Reference) Equal(other Reference) bool {
	return r.Year == other.Year && r.Title == other.Title && r.Author == other.Author
}

// CandidateSet pairs one unresolved entry with its fetched candidates.
// Current always occupies index 0 of Candidates; fetched candidates equal
// to it are dropped so the current entry is never offered twice.
type CandidateSet struct {
	Current    Reference
	Candidates []Reference
}

// NewCandidateSet builds a candidate set from the current reference and the
// fetched candidates, preserving fetch order.
func NewCandidateSet(current Reference, fetched []Reference) CandidateSet {
	candidates := make([]Reference, 0, len(fetched)+1)
	candidates = append(candidates, current)
	for _, candidate := range fetched {
		if candidate.Equal(current) {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return CandidateSet{Current: current, Candidates: candidates}
}

// Decision records the selection verdict for one entry. Chosen is either
// the current reference or one of its candidates.
type Decision struct {
	Current Reference
	Chosen  Reference
}
