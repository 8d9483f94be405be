package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bibmend/internal/bibtex"
	"bibmend/internal/config"
	"bibmend/internal/corpus"
	"bibmend/internal/fileutil"
	"bibmend/internal/logging"
	"bibmend/internal/lookup"
	"bibmend/internal/output"
	"bibmend/internal/resolve"
	"bibmend/internal/selector"
)

// Summary reports what a run changed.
type Summary struct {
	Entries        int
	OfflineUpdates int
	ManualUpdates  int
	Kept           int
	CorpusEntries  int
	Processing     output.Stats
	OutputPath     string
}

// Runner executes the full reconciliation flow for one bibliography file:
// corpus matching, online resolution for the misses, selection, output
// processing, and the final write.
type Runner struct {
	cfg      *config.Config
	sel      selector.Selector
	logger   *slog.Logger
	progress bool
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithProgress enables progress bars during corpus rebuilds.
func WithProgress(enabled bool) RunnerOption {
	return func(r *Runner) {
		r.progress = enabled
	}
}

// NewRunner creates a runner using sel to decide between online candidates.
func NewRunner(cfg *config.Config, sel selector.Selector, logger *slog.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:    cfg,
		sel:    sel,
		logger: logging.NewComponentLogger(logger, "reconcile"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reconciles the bibliography at inputPath and writes the result to
// outputPath. An aborted selection returns selector.ErrAborted with
// nothing written.
func (r *Runner) Run(ctx context.Context, inputPath, outputPath string) (*Summary, error) {
	started := time.Now()

	records, err := bibtex.ParseFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("parse input bibliography: %w", err)
	}
	r.logger.Info("bibliography parsed",
		logging.String(logging.FieldFile, inputPath),
		logging.Int(logging.FieldCount, len(records)))

	// Compiling the output rules up front surfaces bad normalization
	// patterns before any corpus or network work happens.
	processor, err := output.New(r.cfg.Output, r.logger)
	if err != nil {
		return nil, err
	}

	loader := corpus.NewLoader(r.cfg.Paths.CorpusDir, r.logger, corpus.WithProgress(r.progress))
	state, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	today := time.Now()
	commands, unresolved := Route(records, state, today)
	offlineUpdates := len(records) - len(unresolved)
	r.logger.Info("corpus reconciliation complete",
		logging.Int("matched", offlineUpdates),
		logging.Int("unresolved", len(unresolved)))

	manualUpdates := 0
	if r.cfg.Online.Enabled && len(unresolved) > 0 {
		online, updates, err := r.resolveOnline(ctx, unresolved, today)
		if err != nil {
			return nil, err
		}
		manualUpdates = updates
		commands = Merge(online, commands)
	}

	processed, stats := processor.Process(Records(commands))
	if err := fileutil.WriteFileAtomic(outputPath, []byte(bibtex.Render(processed)), 0o644); err != nil {
		return nil, fmt.Errorf("write output bibliography: %w", err)
	}

	summary := &Summary{
		Entries:        len(records),
		OfflineUpdates: offlineUpdates,
		ManualUpdates:  manualUpdates,
		Kept:           len(records) - offlineUpdates - manualUpdates,
		CorpusEntries:  state.Len(),
		Processing:     stats,
		OutputPath:     outputPath,
	}
	r.logger.Info("run complete",
		logging.String(logging.FieldFile, outputPath),
		logging.Int(logging.FieldCount, len(processed)),
		logging.Duration(logging.FieldElapsed, time.Since(started).Round(time.Millisecond)))
	return summary, nil
}

// resolveOnline streams candidate sets for the unresolved records through
// the selector and returns the resulting commands plus the number of
// records the user replaced.
func (r *Runner) resolveOnline(ctx context.Context, unresolved []bibtex.Record, today time.Time) ([]Command, int, error) {
	services, err := lookup.FromConfig(r.cfg.Online, r.logger)
	if err != nil {
		return nil, 0, err
	}

	// Aborting selection cancels the in-flight lookups as well.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pipeline := resolve.NewPipeline(services, r.cfg.Online, r.logger)
	sets := pipeline.Resolve(runCtx, unresolved)
	decisions, err := r.sel.Choose(runCtx, sets, len(unresolved))
	if err != nil {
		return nil, 0, err
	}

	commands := Finalize(decisions, today)
	updates := 0
	for _, cmd := range commands {
		if _, ok := cmd.(Update); ok {
			updates++
		}
	}
	return commands, updates, nil
}
