package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	"bibmend/internal/bibtex"
	"bibmend/internal/logging"
)

const (
	// ArtifactName is the compressed index artifact kept in the corpus directory.
	ArtifactName = "cache.json.gz"
	// lockName guards rebuilds against concurrent bibmend processes.
	lockName = "corpus.lock"

	fileExtension = ".bib"
)

// State is the persisted corpus index together with the file hashes it was
// built from. The hash mapping is the sole validity criterion: the state is
// current iff it exactly equals the hashes of the *.bib files on disk.
type State struct {
	FileHashes map[string]string        `json:"file_hashes"`
	Index      map[string]bibtex.Record `json:"bibliographies"`
}

// Lookup returns the corpus record for a normalized title.
func (s *State) Lookup(normalizedTitle string) (bibtex.Record, bool) {
	record, ok := s.Index[normalizedTitle]
	return record, ok
}

// Len returns the number of indexed records.
func (s *State) Len() int {
	return len(s.Index)
}

// Status reports the relationship between the corpus files on disk and the
// persisted artifact.
type Status struct {
	Dir            string
	ArtifactPath   string
	ArtifactExists bool
	Valid          bool
	CorpusFiles    int
	IndexEntries   int
}

// Loader loads the corpus index for a directory, rebuilding it when the
// persisted artifact no longer matches the files on disk.
type Loader struct {
	dir      string
	logger   *slog.Logger
	workers  int
	progress bool
}

// Option customizes a Loader.
type Option func(*Loader)

// WithWorkers overrides the rebuild worker pool size.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithProgress enables a progress bar during rebuild parsing.
func WithProgress(enabled bool) Option {
	return func(l *Loader) {
		l.progress = enabled
	}
}

// NewLoader creates a loader for the given corpus directory.
func NewLoader(dir string, logger *slog.Logger, opts ...Option) *Loader {
	l := &Loader{
		dir:     dir,
		logger:  logging.NewComponentLogger(logger, "corpus"),
		workers: defaultWorkerCount(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ArtifactPath returns the location of the persisted index artifact.
func (l *Loader) ArtifactPath() string {
	return filepath.Join(l.dir, ArtifactName)
}

// NewLock returns the advisory lock serializing corpus mutations across
// processes. Index rebuilds and archive downloads share it.
func NewLock(dir string) *flock.Flock {
	return flock.New(filepath.Join(dir, lockName))
}

// Load returns the corpus state, reusing the persisted artifact when its
// stored hashes exactly match the corpus files on disk. A missing, stale, or
// corrupted artifact triggers a rebuild; decoding failures are logged, never
// fatal. When the directory holds no corpus files but an artifact exists, the
// artifact is trusted as a pre-built index and returned with a warning.
func (l *Loader) Load(ctx context.Context) (*State, error) {
	currentHashes, err := l.hashCorpusFiles()
	if err != nil {
		return nil, err
	}

	if cached, err := readArtifact(l.ArtifactPath()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("corpus cache artifact unreadable, rebuilding",
				logging.String(logging.FieldEventType, "corpus_cache_corrupt"),
				logging.String(logging.FieldFile, l.ArtifactPath()),
				logging.Error(err))
		}
	} else {
		if len(currentHashes) == 0 {
			l.logger.Warn("no corpus files found, using pre-built cache",
				logging.String(logging.FieldEventType, "corpus_files_missing"),
				logging.String(logging.FieldFile, l.dir),
				logging.Int(logging.FieldCount, cached.Len()))
			return cached, nil
		}
		if hashesEqual(cached.FileHashes, currentHashes) {
			l.logger.Debug("corpus cache valid",
				logging.Int(logging.FieldCount, cached.Len()))
			return cached, nil
		}
	}

	return l.rebuild(ctx, currentHashes)
}

// Rebuild ignores any persisted artifact and rebuilds the index from the
// corpus files on disk.
func (l *Loader) Rebuild(ctx context.Context) (*State, error) {
	currentHashes, err := l.hashCorpusFiles()
	if err != nil {
		return nil, err
	}
	return l.rebuild(ctx, currentHashes)
}

// ClearArtifact removes the persisted index artifact if present.
func (l *Loader) ClearArtifact() error {
	err := os.Remove(l.ArtifactPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove corpus artifact: %w", err)
	}
	return nil
}

// Status inspects the corpus directory and artifact without rebuilding.
func (l *Loader) Status() (Status, error) {
	status := Status{Dir: l.dir, ArtifactPath: l.ArtifactPath()}

	currentHashes, err := l.hashCorpusFiles()
	if err != nil {
		return status, err
	}
	status.CorpusFiles = len(currentHashes)

	cached, err := readArtifact(l.ArtifactPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return status, nil
		}
		status.ArtifactExists = true
		return status, nil
	}

	status.ArtifactExists = true
	status.IndexEntries = cached.Len()
	status.Valid = len(currentHashes) == 0 || hashesEqual(cached.FileHashes, currentHashes)
	return status, nil
}

// corpusFiles lists the *.bib files in the corpus directory, sorted by name.
func (l *Loader) corpusFiles() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read corpus directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileExtension {
			continue
		}
		files = append(files, filepath.Join(l.dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func (l *Loader) hashCorpusFiles() (map[string]string, error) {
	files, err := l.corpusFiles()
	if err != nil {
		return nil, err
	}

	hashes := make(map[string]string, len(files))
	for _, file := range files {
		digest, err := hashFile(file)
		if err != nil {
			return nil, fmt.Errorf("hash corpus file %s: %w", filepath.Base(file), err)
		}
		hashes[filepath.Base(file)] = digest
	}
	return hashes, nil
}

func hashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func hashesEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for key, value := range a {
		if other, ok := b[key]; !ok || other != value {
			return false
		}
	}
	return true
}
