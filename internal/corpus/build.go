package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"bibmend/internal/bibtex"
	"bibmend/internal/logging"
	"bibmend/internal/normalize"
)

func defaultWorkerCount() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

// parseResult carries one file's partial index back to the coordinator.
type parseResult struct {
	file  string
	index map[string]bibtex.Record
	err   error
}

func (l *Loader) rebuild(ctx context.Context, currentHashes map[string]string) (*State, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create corpus directory: %w", err)
	}

	lock := NewLock(l.dir)
	locked, err := lock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquire corpus lock: %w", err)
	}
	if !locked {
		return nil, errors.New("corpus lock not acquired")
	}
	defer lock.Unlock()

	// Another process may have rebuilt while we waited for the lock.
	if cached, err := readArtifact(l.ArtifactPath()); err == nil && hashesEqual(cached.FileHashes, currentHashes) {
		return cached, nil
	}

	files := make([]string, 0, len(currentHashes))
	for name := range currentHashes {
		files = append(files, filepath.Join(l.dir, name))
	}
	sort.Strings(files)

	start := time.Now()
	index := l.parseFiles(ctx, files)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	state := &State{FileHashes: currentHashes, Index: index}
	if err := writeArtifact(l.ArtifactPath(), state); err != nil {
		return nil, err
	}

	l.logger.Info("corpus cache rebuilt",
		logging.Int("files", len(files)),
		logging.Int(logging.FieldCount, len(index)),
		logging.Duration(logging.FieldElapsed, time.Since(start).Round(time.Millisecond)))
	return state, nil
}

// parseFiles distributes per-file parsing across the worker pool and merges
// the partial indexes in completion order. Each worker owns its partial map,
// so no locking is needed beyond the channels.
func (l *Loader) parseFiles(ctx context.Context, files []string) map[string]bibtex.Record {
	index := make(map[string]bibtex.Record)
	if len(files) == 0 {
		l.logger.Warn("no corpus files found, building empty index",
			logging.String(logging.FieldEventType, "corpus_files_missing"),
			logging.String(logging.FieldFile, l.dir))
		return index
	}

	workers := l.workers
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan string)
	results := make(chan parseResult, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				partial, err := parseCorpusFile(file)
				results <- parseResult{file: file, index: partial, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, file := range files {
			select {
			case jobs <- file:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var bar *progressbar.ProgressBar
	if l.progress {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Parsing corpus files"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for result := range results {
		if bar != nil {
			_ = bar.Add(1)
		}
		if result.err != nil {
			l.logger.Warn("corpus file skipped",
				logging.String(logging.FieldEventType, "corpus_file_unparsable"),
				logging.String(logging.FieldFile, filepath.Base(result.file)),
				logging.Error(result.err))
			continue
		}
		for title, record := range result.index {
			index[title] = record
		}
	}
	return index
}

// parseCorpusFile parses one corpus file into a normalized-title index.
// Records without a usable title cannot be matched and are dropped.
func parseCorpusFile(path string) (map[string]bibtex.Record, error) {
	records, err := bibtex.ParseFile(path)
	if err != nil {
		return nil, err
	}
	index := make(map[string]bibtex.Record, len(records))
	for _, record := range records {
		title := normalize.Title(record.Value("title"))
		if title == "" {
			continue
		}
		index[title] = record
	}
	return index, nil
}
