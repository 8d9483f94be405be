// Package selector consumes the candidate stream and produces one decision
// per entry.
//
// Two implementations share the Selector interface: Auto keeps every
// current reference without prompting, and TUI puts the stream in front of
// the user as a Bubble Tea program. Ending the TUI before the stream is
// exhausted aborts the whole run; the caller must not write output.
package selector
