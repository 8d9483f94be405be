// Package output post-processes the final record list before rendering.
//
// Stages run in a fixed order: sort by citation key, container-name
// normalization, arXiv preprint normalization, field removal, and
// deduplication. Every stage operates on private copies of the records;
// the caller's slice is never touched.
package output
