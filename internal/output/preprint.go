package output

import (
	"regexp"
	"strings"

	"bibmend/internal/bibtex"
	"bibmend/internal/logging"
)

// arxivPattern finds arXiv identifiers anywhere in a record's lowercased
// rendered text, whether written as "arXiv:2301.12345" or as an
// arxiv.org/abs or arxiv.org/pdf URL.
var arxivPattern = regexp.MustCompile(`(arxiv:|arxiv.org/abs/|arxiv.org/pdf/)([0-9]{4}).([0-9]{5})`)

// normalizePreprints replaces every record carrying exactly one distinct
// arXiv identifier with a minimal synthetic preprint record. Records with
// no identifier pass through; records with conflicting identifiers are
// logged and left untouched.
func (p *Processor) normalizePreprints(records []bibtex.Record, stats *Stats) {
	for i := range records {
		rendered := strings.ToLower(strings.Join(bibtex.RenderLines(records[i]), " "))
		matches := arxivPattern.FindAllStringSubmatch(rendered, -1)
		if len(matches) == 0 {
			continue
		}
		distinct := make(map[string]struct{}, len(matches))
		var id string
		for _, match := range matches {
			id = match[2] + "." + match[3]
			distinct[id] = struct{}{}
		}
		if len(distinct) > 1 {
			p.logger.Warn("conflicting arXiv identifiers, leaving entry unchanged",
				logging.String(logging.FieldEntryID, records[i].ID),
				logging.Int(logging.FieldCount, len(distinct)))
			continue
		}
		records[i] = syntheticPreprint(records[i], id)
		stats.PreprintsNormalized++
	}
}

// syntheticPreprint builds the replacement record for one arXiv identifier.
// Author and title carry over when present; everything else is derived from
// the identifier.
func syntheticPreprint(record bibtex.Record, id string) bibtex.Record {
	synthetic := bibtex.NewRecord(record.Type, record.ID)
	for _, key := range []string{"author", "title"} {
		if value, ok := record.Get(key); ok {
			synthetic.Set(key, value)
		}
	}
	synthetic.Set("eprint", id)
	synthetic.Set("journal", "arXiv preprint")
	synthetic.Set("volume", "abs/"+id)
	synthetic.Set("year", "20"+id[:2])
	synthetic.Set("url", "https://arxiv.org/abs/"+id)
	return synthetic
}
