package selector

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bibmend/internal/bibtex"
	"bibmend/internal/normalize"
)

const captionLimit = 55

var captionCaser = cases.Title(language.English)

// Caption describes a record's entry type for a list row, with the
// container venue in parentheses where one applies. Unrecognized entry
// types read as their capitalized type name.
func Caption(record bibtex.Record) string {
	var caption string
	switch record.Type {
	case "inproceedings":
		caption = fmt.Sprintf("Proceedings (%s)", displayName(record.Value("booktitle")))
	case "article":
		venue, ok := record.Get("journal")
		if !ok {
			venue, ok = record.Get("publisher")
		}
		if !ok {
			venue, _ = record.Get("doi")
		}
		caption = fmt.Sprintf("Journal article (%s)", venue)
	case "book":
		caption = "Book"
	case "incollection":
		caption = fmt.Sprintf("Book chapter (%s)", displayName(record.Value("booktitle")))
	case "phdthesis":
		caption = "PhD thesis"
	case "mastersthesis":
		caption = "Master's thesis"
	case "techreport":
		caption = "Techreport"
	case "misc":
		caption = fmt.Sprintf("Misc (%s)", displayName(record.Value("howpublished")))
	case "":
		caption = "Other"
	default:
		caption = captionCaser.String(record.Type)
	}
	return strings.TrimSuffix(caption, " ()")
}

// displayName shortens a venue string to fit a list row.
func displayName(s string) string {
	s = normalize.Title(s)
	runes := []rune(s)
	if len(runes) > captionLimit {
		s = string(runes[:captionLimit-3]) + "..."
	}
	return s
}
