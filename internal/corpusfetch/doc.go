// Package corpusfetch installs prepared corpus archives.
//
// A fetch downloads a tar.gz of .bib files, optionally clears the
// previously installed corpus, and unpacks the archive into the corpus
// directory under the same advisory lock the index rebuild takes.
// Download attempts are bounded, with a fixed pause between retries.
package corpusfetch
