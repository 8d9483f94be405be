// Package reconcile decides what happens to each bibliography entry.
//
// Route matches entries against the offline corpus first; hits become
// automated updates and misses are forwarded to online resolution.
// Finalize converts selection decisions into commands, Merge produces the
// final command list, and Runner drives a whole reconciliation run.
package reconcile
