package download

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"dugout/internal/config"
	"dugout/internal/fileutil"
	"dugout/internal/logging"
	"dugout/internal/services"
	"dugout/internal/services/ytdlp"
	"dugout/internal/store"
)

// Downloader fetches audio and sidecars for one video.
type Downloader interface {
	DownloadAudio(ctx context.Context, videoID, stagingDir string) (*ytdlp.DownloadResult, error)
}

// Store is the persistence surface the runner needs.
type Store interface {
	DownloadCandidates(ctx context.Context, minDuration time.Duration, limit int) ([]string, error)
	InsertVideoFile(ctx context.Context, file store.VideoFile) (bool, error)
}

// Result summarizes one download run.
type Result struct {
	Candidates int
	Downloaded int
	Failed     int
}

// Runner downloads every qualifying video and files the results.
type Runner struct {
	client  Downloader
	namer   *Namer
	records Store
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRunner builds a download runner.
func NewRunner(client Downloader, namer *Namer, records Store, cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		client:  client,
		namer:   namer,
		records: records,
		cfg:     cfg,
		logger:  logger.With(slog.String(logging.FieldComponent, "download")),
	}
}

// Run selects download candidates and processes them with a worker pool.
// A failed video is logged and skipped; the run only errors when the
// candidate query itself fails or the context is canceled.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var result Result

	minDuration := time.Duration(r.cfg.Filters.MinDurationMinutes) * time.Minute
	candidates, err := r.records.DownloadCandidates(ctx, minDuration, r.cfg.Filters.SelectionLimit)
	if err != nil {
		return result, err
	}
	result.Candidates = len(candidates)
	if len(candidates) == 0 {
		return result, nil
	}

	workerCount := r.cfg.Workers.Download
	if workerCount <= 0 {
		workerCount = 1
	}

	ids := make(chan string)
	var downloaded, failed atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			workerCtx := services.WithWorker(ctx, worker)
			logger := logging.WithContext(workerCtx, r.logger)
			for videoID := range ids {
				videoCtx := services.WithVideoID(workerCtx, videoID)
				if err := r.process(videoCtx, videoID); err != nil {
					failed.Add(1)
					logger.Error("download failed",
						logging.String(logging.FieldVideoID, videoID), logging.Error(err))
					continue
				}
				downloaded.Add(1)
			}
		}(i)
	}

	for _, videoID := range candidates {
		select {
		case ids <- videoID:
		case <-ctx.Done():
			close(ids)
			wg.Wait()
			return result, ctx.Err()
		}
	}
	close(ids)
	wg.Wait()

	result.Downloaded = int(downloaded.Load())
	result.Failed = int(failed.Load())
	return result, ctx.Err()
}

func (r *Runner) process(ctx context.Context, videoID string) error {
	staging := filepath.Join(r.cfg.Paths.AudioDir, "staging", videoID)
	defer os.RemoveAll(staging)

	result, err := r.client.DownloadAudio(ctx, videoID, staging)
	if err != nil {
		return err
	}
	if result.Info == nil {
		return fmt.Errorf("download produced no metadata sidecar")
	}

	relDir, base, err := r.namer.Destination(ctx, result.Info)
	if err != nil {
		return err
	}
	destDir := filepath.Join(r.cfg.Paths.LibraryDir, filepath.FromSlash(relDir))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create destination dir: %w", err)
	}

	logger := logging.WithContext(ctx, r.logger)
	for _, src := range result.Files {
		suffix := strings.TrimPrefix(filepath.Base(src), videoID)
		dest := filepath.Join(destDir, base+suffix)
		if err := fileutil.MoveFile(src, dest); err != nil {
			return fmt.Errorf("file %s: %w", filepath.Base(src), err)
		}
		logger.Debug("filed asset", logging.String(logging.FieldPath, dest))

		if suffix != ".m4a" {
			continue
		}
		size := result.Info.Filesize
		if stat, err := os.Stat(dest); err == nil {
			size = stat.Size()
		}
		if _, err := r.records.InsertVideoFile(ctx, store.VideoFile{
			VideoID:   videoID,
			AFormatID: result.Info.FormatID,
			FileSize:  size,
			LocalPath: dest,
		}); err != nil {
			return err
		}
	}

	logger.Info("download filed",
		logging.String(logging.FieldVideoID, videoID),
		logging.String(logging.FieldPath, destDir))
	return nil
}
