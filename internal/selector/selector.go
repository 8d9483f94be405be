package selector

import (
	"context"
	"errors"

	"bibmend/internal/resolve"
)

// ErrAborted reports that selection ended before the candidate stream was
// exhausted. The run treats this as user cancellation: no output is
// written and the process exits cleanly.
var ErrAborted = errors.New("selection aborted")

// Selector consumes candidate sets incrementally and produces exactly one
// decision per set, in stream order.
type Selector interface {
	Choose(ctx context.Context, sets <-chan resolve.CandidateSet, total int) ([]resolve.Decision, error)
}
