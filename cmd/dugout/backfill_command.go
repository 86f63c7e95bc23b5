package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dugout/internal/download"
	"dugout/internal/store"
)

func newBackfillCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backfill [dir]",
		Short: "Recover download records from filed asset names",
		Long:  "Walk a library tree and rebuild download records from the {yt-*} and {fid-*} tokens embedded in audio filenames. Defaults to the configured library directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			root := cfg.Paths.LibraryDir
			if len(args) == 1 {
				root = args[0]
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

			var seen, recovered int
			err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
				if walkErr != nil {
					return walkErr
				}
				if runCtx.Err() != nil {
					return runCtx.Err()
				}
				if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".m4a") {
					return nil
				}
				seen++

				info := download.ExtractFileInfo(entry.Name())
				if info.VideoID == "" || info.AFormatID == "" {
					return nil
				}

				var size int64
				if stat, err := os.Stat(path); err == nil {
					size = stat.Size()
				}
				added, err := st.InsertVideoFile(runCtx, store.VideoFile{
					VideoID:   info.VideoID,
					AFormatID: info.AFormatID,
					FileSize:  size,
					LocalPath: path,
				})
				if err != nil {
					return err
				}
				if added {
					recovered++
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d audio files; recovered %d download records\n", seen, recovered)
			return nil
		},
	}
	return cmd
}
