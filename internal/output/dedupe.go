package output

import (
	"strings"

	"bibmend/internal/bibtex"
	"bibmend/internal/logging"
)

// deduplicate drops later duplicates, first by citation key and then by
// rendered content with the header line ignored, so the same work under
// two keys is still caught. The first occurrence always survives.
func (p *Processor) deduplicate(records []bibtex.Record, stats *Stats) []bibtex.Record {
	records = p.dropLaterDuplicates(records, stats, "duplicate citation key removed", func(r bibtex.Record) string {
		return r.ID
	})
	records = p.dropLaterDuplicates(records, stats, "duplicate entry content removed", func(r bibtex.Record) string {
		lines := bibtex.RenderLines(r)
		return strings.Join(lines[1:], "\n")
	})
	return records
}

func (p *Processor) dropLaterDuplicates(records []bibtex.Record, stats *Stats, message string, keyOf func(bibtex.Record) string) []bibtex.Record {
	seen := make(map[string]struct{}, len(records))
	kept := records[:0]
	for _, record := range records {
		key := keyOf(record)
		if _, dup := seen[key]; dup {
			p.logger.Warn(message, logging.String(logging.FieldEntryID, record.ID))
			stats.DuplicatesRemoved++
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, record)
	}
	return kept
}
