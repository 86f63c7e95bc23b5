package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dugout/internal/discovery"
	"dugout/internal/services/ytdlp"
)

func newIDsCommand(ctx *commandContext) *cobra.Command {
	var input discovery.Input
	var workers int

	cmd := &cobra.Command{
		Use:   "ids",
		Short: "Discover video IDs from channels and playlists",
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

			client, err := ytdlp.New(cfg.Downloader.Binary, cfg.Downloader.TimeoutSeconds)
			if err != nil {
				return err
			}

			workerCfg := cfg.Workers
			if cmd.Flags().Changed("workers") {
				workerCfg.Channel = workers
				workerCfg.Playlist = workers
				workerCfg.Video = workers
			}

			runCtx, cancel := ctx.runContext()
			defer cancel()

			runner := discovery.NewRunner(client, st, workerCfg, logger)
			result, err := runner.Run(runCtx, input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Walked %d channels and %d playlists\n", result.Channels, result.Playlists)
			fmt.Fprintf(out, "Recorded %d new video IDs (backlog now %d)\n", result.VideosInserted, result.Backlog)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&input.Channels, "user-ids", nil, "Channel handles to walk")
	flags.StringSliceVar(&input.ChannelFiles, "user-id-files", nil, "Files of channel handles (.txt or .csv)")
	flags.StringSliceVar(&input.Playlists, "playlist-ids", nil, "Playlist IDs to walk")
	flags.StringSliceVar(&input.PlaylistFiles, "playlist-id-files", nil, "Files of playlist IDs (.txt or .csv)")
	flags.StringSliceVar(&input.Videos, "video-ids", nil, "Video IDs to record directly")
	flags.StringSliceVar(&input.VideoFiles, "video-id-files", nil, "Files of video IDs (.txt or .csv)")
	flags.IntVar(&workers, "workers", 0, "Workers per discovery stage (defaults from config)")
	return cmd
}
