package selector

import "bibmend/internal/resolve"

// nextSet delivers the next candidate set from the stream.
type nextSet struct {
	set resolve.CandidateSet
}

// streamDone signals that the candidate stream is exhausted.
type streamDone struct{}
