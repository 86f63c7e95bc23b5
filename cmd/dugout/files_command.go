package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dugout/internal/download"
	"dugout/internal/events"
	"dugout/internal/services/scoreboard"
	"dugout/internal/services/ytdlp"
)

func newFilesCommand(ctx *commandContext) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "files",
		Short: "Download and file audio for qualifying videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateWorkerOverride(workers, cmd.Flags().Changed("workers")); err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			unlock, err := ctx.acquireRunLock()
			if err != nil {
				return err
			}
			defer unlock()

			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			client, err := ytdlp.New(
				cfg.Downloader.Binary,
				cfg.Downloader.TimeoutSeconds,
				ytdlp.WithSubtitles(cfg.Downloader.SubtitleLangs, cfg.Downloader.SubtitleFormat),
				ytdlp.WithInfoJSON(cfg.Downloader.WriteInfoJSON),
				ytdlp.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			scores, err := scoreboard.New(cfg)
			if err != nil {
				return err
			}
			loader, err := events.NewLoader(scores, st, logger)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("workers") {
				cfg.Workers.Download = workers
			}

			runCtx, cancel := ctx.runContext()
			defer cancel()

			namer := download.NewNamer(st, loader, logger)
			runner := download.NewRunner(client, namer, st, cfg, logger)
			result, err := runner.Run(runCtx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d of %d candidates (%d failed)\n",
				result.Downloaded, result.Candidates, result.Failed)
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Download workers (defaults from config)")
	return cmd
}
