package reconcile

import (
	"fmt"
	"time"

	"bibmend/internal/bibtex"
)

// Method records how an update was decided.
type Method string

const (
	MethodAutomated Method = "automated"
	MethodManual    Method = "manual"
)

// Command is one processing step of the final bibliography: keep a record
// as-is or replace it with a fetched one.
type Command interface {
	// Record materializes the output record of the command.
	Record() bibtex.Record
}

// Keep passes the current record through unchanged.
type Keep struct {
	record bibtex.Record
}

// NewKeep creates a Keep for record.
func NewKeep(record bibtex.Record) Keep {
	return Keep{record: record}
}

// Record returns the kept record.
func (k Keep) Record() bibtex.Record {
	return k.record
}

// Update replaces the current record with a fetched replacement while
// keeping the current citation key, so existing \cite references stay
// valid. A provenance field records how and when the entry was updated.
type Update struct {
	current     bibtex.Record
	replacement bibtex.Record
	method      Method
	date        time.Time
}

// NewUpdate creates an Update replacing current with replacement.
func NewUpdate(current, replacement bibtex.Record, method Method, date time.Time) Update {
	return Update{current: current, replacement: replacement, method: method, date: date}
}

// Record clones the replacement, forces the current citation key onto it,
// and appends the provenance comment as the last field.
func (u Update) Record() bibtex.Record {
	record := u.replacement.Clone()
	record.ID = u.current.ID
	record.Set("bibmend_comment", fmt.Sprintf("%s update on %s", u.method, u.date.Format("2006-01-02")))
	return record
}

// Records executes every command into the output record list.
func Records(commands []Command) []bibtex.Record {
	records := make([]bibtex.Record, 0, len(commands))
	for _, cmd := range commands {
		records = append(records, cmd.Record())
	}
	return records
}
