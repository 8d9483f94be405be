// Package corpus builds and validates the offline reference index.
//
// The index maps normalized titles to canonical records parsed from the *.bib
// files in the corpus directory. Because parsing a large corpus is expensive,
// the result is persisted as a compressed artifact (cache.json.gz) alongside
// the corpus files together with a content hash of every input file. A later
// load compares stored hashes against the files on disk and reuses the
// artifact when they match exactly; any mismatch, missing artifact, or
// corrupted artifact triggers a parallel rebuild.
//
// Rebuilds fan the per-file parsing out across a worker pool and merge the
// partial indexes in completion order, so colliding normalized titles across
// files resolve to an arbitrary winner. The artifact is written atomically and
// rebuilds are serialized across processes with a lock file in the corpus
// directory.
package corpus
