package selector

import (
	"context"

	"bibmend/internal/resolve"
)

// Auto keeps the current reference for every entry without prompting. It
// drives non-interactive runs, where output must be byte-stable across
// invocations.
type Auto struct{}

// Choose drains the stream and decides "keep current" for every set.
func (Auto) Choose(ctx context.Context, sets <-chan resolve.CandidateSet, total int) ([]resolve.Decision, error) {
	decisions := make([]resolve.Decision, 0, total)
	for {
		select {
		case set, ok := <-sets:
			if !ok {
				return decisions, nil
			}
			decisions = append(decisions, resolve.Decision{Current: set.Current, Chosen: set.Current})
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
