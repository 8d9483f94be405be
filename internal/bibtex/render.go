package bibtex

import (
	"fmt"
	"strings"
)

// RenderLines serializes one record to its output lines: the @type{id, header,
// one "  key = {value}," line per field in record order, and the closing brace.
func RenderLines(record Record) []string {
	lines := make([]string, 0, record.Len()+2)
	lines = append(lines, fmt.Sprintf("@%s{%s,", record.Type, record.ID))
	for _, field := range record.Fields() {
		lines = append(lines, fmt.Sprintf("  %s = {%s},", field.Key, field.Value))
	}
	lines = append(lines, "}")
	return lines
}

// Render serializes a list of records, separating entries with one blank line
// and emitting no trailing blank line after the last entry.
func Render(records []Record) string {
	var lines []string
	for _, record := range records {
		lines = append(lines, RenderLines(record)...)
		lines = append(lines, "")
	}
	if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
