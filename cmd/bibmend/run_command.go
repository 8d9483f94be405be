package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"bibmend/internal/reconcile"
	"bibmend/internal/selector"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var inputFlag string
	var outputFlag string
	var offline bool
	var nonInteractive bool
	var sortOutput bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile a bibliography against the corpus and lookup services",
		Long: `Run reconciles every entry of the input bibliography: entries found in
the offline corpus are replaced by their canonical records, the rest are
resolved through the configured lookup services and decided interactively.
The processed result is written to the output file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if offline {
				cfg.Online.Enabled = false
			}
			if cmd.Flags().Changed("sort") {
				cfg.Output.Sort = sortOutput
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			var sel selector.Selector = selector.Auto{}
			if cfg.Online.Enabled && !nonInteractive && isTerminal(os.Stdin) && isTerminal(os.Stdout) {
				sel = selector.NewTUI()
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := reconcile.NewRunner(cfg, sel, logger, reconcile.WithProgress(isTerminal(os.Stderr)))
			summary, err := runner.Run(runCtx, inputFlag, outputFlag)
			if err != nil {
				if errors.Is(err, selector.ErrAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), "Selection aborted; no output written.")
					return nil
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderRunSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "The bibliography file to reconcile")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination for the reconciled bibliography")
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip online lookups; corpus misses stay unchanged")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Keep the current entry instead of prompting for online candidates")
	cmd.Flags().BoolVar(&sortOutput, "sort", false, "Sort output entries by citation key")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func renderRunSummary(summary *reconcile.Summary) string {
	rows := [][2]string{
		{"Entries read", strconv.Itoa(summary.Entries)},
		{"Corpus updates", strconv.Itoa(summary.OfflineUpdates)},
		{"Manual updates", strconv.Itoa(summary.ManualUpdates)},
		{"Kept unchanged", strconv.Itoa(summary.Kept)},
		{"Duplicates removed", strconv.Itoa(summary.Processing.DuplicatesRemoved)},
		{"Preprints normalized", strconv.Itoa(summary.Processing.PreprintsNormalized)},
		{"Fields removed", strconv.Itoa(summary.Processing.FieldsRemoved)},
		{"Output", summary.OutputPath},
	}
	return renderKVTable("Run summary", rows, true)
}
