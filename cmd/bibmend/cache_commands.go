package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"bibmend/internal/corpus"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the corpus index cache",
	}

	cmd.AddCommand(newCacheStatusCommand(ctx))
	cmd.AddCommand(newCacheRebuildCommand(ctx))
	cmd.AddCommand(newCacheClearCommand(ctx))

	return cmd
}

func newCacheStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of the corpus index cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			status, err := corpus.NewLoader(cfg.Paths.CorpusDir, logger).Status()
			if err != nil {
				return err
			}

			rows := [][2]string{
				{"Corpus directory", status.Dir},
				{"Corpus files", strconv.Itoa(status.CorpusFiles)},
				{"Cache artifact", status.ArtifactPath},
				{"Artifact present", yesNo(status.ArtifactExists)},
				{"Artifact valid", yesNo(status.Valid)},
				{"Indexed entries", strconv.Itoa(status.IndexEntries)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderKVTable("Corpus cache", rows, false))
			return nil
		},
	}
}

func newCacheRebuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild the corpus index from the bibliography files on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			loader := corpus.NewLoader(cfg.Paths.CorpusDir, logger, corpus.WithProgress(isTerminal(os.Stderr)))
			state, err := loader.Rebuild(runCtx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Corpus cache rebuilt: %d entries indexed\n", state.Len())
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the corpus index cache artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			if err := corpus.NewLoader(cfg.Paths.CorpusDir, logger).ClearArtifact(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Corpus cache artifact removed.")
			return nil
		},
	}
}
