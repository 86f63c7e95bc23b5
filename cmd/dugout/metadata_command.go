package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dugout/internal/discovery"
	"dugout/internal/logging"
	"dugout/internal/metadata"
	"dugout/internal/services/ytapi"
)

func newMetadataCommand(ctx *commandContext) *cobra.Command {
	var (
		workers  int
		videoIDs []string
		idFiles  []string
	)

	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Fetch metadata for backlogged video IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateWorkerOverride(workers, cmd.Flags().Changed("workers")); err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireYouTubeKey(); err != nil {
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

			runCtx, cancel := ctx.runContext()
			defer cancel()

			// Seed flags record IDs straight into the backlog so they
			// are picked up by this run.
			seeds, err := discovery.ExpandIDs(videoIDs, idFiles)
			if err != nil {
				return err
			}
			if len(seeds) > 0 {
				inserted, err := st.UpsertVideoIDs(runCtx, seeds)
				if err != nil {
					return err
				}
				logger.Info("seed video ids recorded",
					logging.Int(logging.FieldCount, len(seeds)),
					logging.Int64("inserted", inserted))
			}

			fetcher, err := ytapi.New(runCtx, cfg)
			if err != nil {
				return err
			}

			workerCfg := cfg.Workers
			if cmd.Flags().Changed("workers") {
				workerCfg.MetadataRetrieve = workers
			}

			runner := metadata.NewRunner(fetcher, st, workerCfg, logger)
			result, err := runner.Run(runCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved metadata for %d videos; quarantined %d\n", result.Saved, result.Quarantined)
			if result.QuotaExhausted {
				fmt.Fprintln(out, "API quota exhausted; remaining backlog left for the next run")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Retrieve workers (defaults from config)")
	cmd.Flags().StringSliceVar(&videoIDs, "video-ids", nil, "Video IDs to add to the backlog before fetching")
	cmd.Flags().StringSliceVar(&idFiles, "video-id-files", nil, "Files of video IDs (.txt or .csv) to add to the backlog")
	return cmd
}
