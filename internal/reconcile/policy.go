package reconcile

import (
	"time"

	"bibmend/internal/bibtex"
	"bibmend/internal/corpus"
	"bibmend/internal/normalize"
	"bibmend/internal/resolve"
)

// Route matches every input record against the offline corpus index. A hit
// becomes an automated Update; a miss stays a Keep and its record is added
// to the unresolved list for online resolution. Offline matches always win:
// a record resolved here is never looked up online.
func Route(records []bibtex.Record, state *corpus.State, today time.Time) (commands []Command, unresolved []bibtex.Record) {
	commands = make([]Command, 0, len(records))
	for _, record := range records {
		match, ok := state.Lookup(normalize.Title(record.Value("title")))
		if ok {
			commands = append(commands, NewUpdate(record, match, MethodAutomated, today))
			continue
		}
		commands = append(commands, NewKeep(record))
		unresolved = append(unresolved, record)
	}
	return commands, unresolved
}

// Finalize converts selection decisions into commands: choosing the current
// reference keeps it, anything else is a manual Update.
func Finalize(decisions []resolve.Decision, today time.Time) []Command {
	commands := make([]Command, 0, len(decisions))
	for _, decision := range decisions {
		if decision.Chosen.Equal(decision.Current) {
			commands = append(commands, NewKeep(decision.Current.Record))
			continue
		}
		commands = append(commands, NewUpdate(decision.Current.Record, decision.Chosen.Record, MethodManual, today))
	}
	return commands
}

// Merge builds the final command list: the online commands followed by the
// offline Updates. Offline Keeps are dropped, their records having gone
// through online resolution instead.
func Merge(online, offline []Command) []Command {
	merged := make([]Command, 0, len(online)+len(offline))
	merged = append(merged, online...)
	for _, cmd := range offline {
		if _, ok := cmd.(Update); ok {
			merged = append(merged, cmd)
		}
	}
	return merged
}
