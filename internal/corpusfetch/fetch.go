package corpusfetch

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"bibmend/internal/config"
	"bibmend/internal/corpus"
	"bibmend/internal/fileutil"
	"bibmend/internal/logging"
)

const (
	defaultDownloadTimeout = 300 * time.Second
	lockRetryDelay         = 250 * time.Millisecond
)

// downloadRetryDelay is the fixed pause between download attempts.
var downloadRetryDelay = time.Second

// Result reports what a fetch installed.
type Result struct {
	URL     string
	Files   int
	Bytes   int64
	Cleared int
}

// Fetcher downloads a corpus archive and unpacks its .bib members into the
// corpus directory.
type Fetcher struct {
	corpusDir string
	cfg       config.Corpus
	client    *http.Client
	logger    *slog.Logger
	progress  bool
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithProgress enables a download progress bar on stderr.
func WithProgress(enabled bool) Option {
	return func(f *Fetcher) {
		f.progress = enabled
	}
}

// New creates a fetcher installing archives into corpusDir.
func New(corpusDir string, cfg config.Corpus, logger *slog.Logger, opts ...Option) *Fetcher {
	timeout := time.Duration(cfg.DownloadTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultDownloadTimeout
	}
	f := &Fetcher{
		corpusDir: corpusDir,
		cfg:       cfg,
		client:    &http.Client{Timeout: timeout},
		logger:    logging.NewComponentLogger(logger, "corpusfetch"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch resolves nameOrURL, downloads the archive, and extracts its .bib
// members into the corpus directory. With replaceExisting, the installed
// .bib files and the cache artifact are removed once the download has
// succeeded, so a failed download never leaves the corpus empty.
func (f *Fetcher) Fetch(ctx context.Context, nameOrURL string, replaceExisting bool) (*Result, error) {
	url, err := f.resolveURL(nameOrURL)
	if err != nil {
		return nil, err
	}

	if err := fileutil.EnsureDir(f.corpusDir); err != nil {
		return nil, err
	}
	lock := corpus.NewLock(f.corpusDir)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire corpus lock: %w", err)
	}
	if !locked {
		return nil, errors.New("corpus lock not acquired")
	}
	defer lock.Unlock()

	archivePath, size, err := f.download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer os.Remove(archivePath)

	result := &Result{URL: url, Bytes: size}
	if replaceExisting {
		cleared, err := f.clearExisting()
		if err != nil {
			return nil, err
		}
		result.Cleared = cleared
	}

	files, err := f.extract(archivePath)
	if err != nil {
		return nil, err
	}
	result.Files = files

	f.logger.Info("corpus archive installed",
		logging.String(logging.FieldURL, url),
		logging.Int(logging.FieldCount, files),
		logging.Any("bytes", size))
	return result, nil
}

// resolveURL turns a fetch argument into a download URL: configured
// aliases first, then anything with a scheme as-is, and the configured
// default when the argument is empty.
func (f *Fetcher) resolveURL(nameOrURL string) (string, error) {
	trimmed := strings.TrimSpace(nameOrURL)
	if trimmed == "" {
		if f.cfg.DownloadURL == "" {
			return "", errors.New("no corpus archive configured: pass a URL or set corpus.download_url")
		}
		return f.cfg.DownloadURL, nil
	}
	if url, ok := f.cfg.Aliases[strings.ToLower(trimmed)]; ok {
		return url, nil
	}
	if !strings.Contains(trimmed, "://") {
		return "", fmt.Errorf("unknown corpus alias %q", trimmed)
	}
	return trimmed, nil
}

func (f *Fetcher) download(ctx context.Context, url string) (string, int64, error) {
	attempts := f.cfg.DownloadAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		path, size, err := f.downloadOnce(ctx, url)
		if err == nil {
			return path, size, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", 0, ctx.Err()
		}
		f.logger.Warn("corpus download failed",
			logging.String(logging.FieldEventType, "corpus_download_failed"),
			logging.String(logging.FieldURL, url),
			logging.Int(logging.FieldAttempt, attempt),
			logging.Error(err))
		if attempt < attempts {
			select {
			case <-time.After(downloadRetryDelay):
			case <-ctx.Done():
				return "", 0, ctx.Err()
			}
		}
	}
	return "", 0, fmt.Errorf("download corpus archive after %d attempts: %w", attempts, lastErr)
}

// downloadOnce streams the archive to a temp file outside the corpus
// directory and returns its path.
func (f *Fetcher) downloadOnce(ctx context.Context, url string) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "bibmend-corpus-*.tar.gz")
	if err != nil {
		return "", 0, fmt.Errorf("create archive temp file: %w", err)
	}

	var body io.Reader = resp.Body
	if f.progress {
		bar := progressbar.DefaultBytes(resp.ContentLength, "Downloading corpus archive")
		body = io.TeeReader(resp.Body, bar)
	}

	written, err := io.Copy(tmp, body)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("save archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("close archive temp file: %w", err)
	}
	return tmp.Name(), written, nil
}

// clearExisting removes the installed .bib files and the cache artifact.
func (f *Fetcher) clearExisting() (int, error) {
	matches, err := filepath.Glob(filepath.Join(f.corpusDir, "*.bib"))
	if err != nil {
		return 0, fmt.Errorf("list corpus files: %w", err)
	}
	cleared := 0
	for _, path := range matches {
		if err := os.Remove(path); err != nil {
			return cleared, fmt.Errorf("remove %s: %w", filepath.Base(path), err)
		}
		cleared++
	}

	switch err := os.Remove(filepath.Join(f.corpusDir, corpus.ArtifactName)); {
	case err == nil:
		cleared++
	case !errors.Is(err, fs.ErrNotExist):
		return cleared, fmt.Errorf("remove corpus artifact: %w", err)
	}
	return cleared, nil
}

// extract unpacks the archive's .bib members. Member paths are flattened
// to their base name, which also rules out path traversal.
func (f *Fetcher) extract(archivePath string) (int, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return 0, fmt.Errorf("read archive: not a gzip file: %w", err)
	}
	defer gz.Close()

	reader := tar.NewReader(gz)
	files := 0
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return files, fmt.Errorf("read archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		name := filepath.Base(header.Name)
		if name == "." || !strings.HasSuffix(name, ".bib") {
			continue
		}
		target := filepath.Join(f.corpusDir, name)
		if _, err := fileutil.WriteReaderAtomic(target, reader, 0o644); err != nil {
			return files, fmt.Errorf("extract %s: %w", name, err)
		}
		f.logger.Debug("corpus file installed", logging.String(logging.FieldFile, name))
		files++
	}
	if files == 0 {
		return 0, errors.New("archive holds no .bib files")
	}
	return files, nil
}
