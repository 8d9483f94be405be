package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bibmend/internal/corpus"
	"bibmend/internal/corpusfetch"
)

func newCorpusCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the offline bibliography corpus",
	}

	cmd.AddCommand(newCorpusFetchCommand(ctx))

	return cmd
}

func newCorpusFetchCommand(ctx *commandContext) *cobra.Command {
	var replaceExisting bool
	var rebuildIndex bool

	cmd := &cobra.Command{
		Use:   "fetch [name|url]",
		Short: "Download and install a corpus archive",
		Long: `Fetch downloads a tar.gz archive of bibliography files and installs its
.bib members into the corpus directory. The argument is either a direct
URL or an alias defined under [corpus.aliases]; with no argument the
configured corpus.download_url is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			var nameOrURL string
			if len(args) > 0 {
				nameOrURL = args[0]
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fetcher := corpusfetch.New(cfg.Paths.CorpusDir, cfg.Corpus, logger, corpusfetch.WithProgress(isTerminal(os.Stderr)))
			result, err := fetcher.Fetch(runCtx, nameOrURL, replaceExisting)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Installed %d corpus files from %s\n", result.Files, result.URL)
			if result.Cleared > 0 {
				fmt.Fprintf(out, "Removed %d previously installed files\n", result.Cleared)
			}

			if rebuildIndex {
				loader := corpus.NewLoader(cfg.Paths.CorpusDir, logger, corpus.WithProgress(isTerminal(os.Stderr)))
				state, err := loader.Rebuild(runCtx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Corpus cache rebuilt: %d entries indexed\n", state.Len())
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&replaceExisting, "replace-existing", false, "Remove installed corpus files and the cache artifact before extracting")
	cmd.Flags().BoolVar(&rebuildIndex, "rebuild", false, "Rebuild the corpus index cache after installing")

	return cmd
}
