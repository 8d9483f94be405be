// Package resolve turns unresolved bibliography entries into a stream of
// candidate sets for selection.
//
// A single producer resolves the first entry alone, then works through the
// remainder in fixed-size batches, fanning each entry out to every lookup
// service concurrently. Completed sets are published in input order on a
// bounded channel; closing the channel signals the end of the stream.
package resolve
