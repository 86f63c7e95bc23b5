package discovery

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"dugout/internal/config"
	"dugout/internal/logging"
	"dugout/internal/services/ytdlp"
)

// Lister enumerates entry IDs for a channel or playlist URL.
type Lister interface {
	ListIDs(ctx context.Context, url string) ([]string, error)
}

// Recorder persists discovered video IDs.
type Recorder interface {
	UpsertVideoIDs(ctx context.Context, videoIDs []string) (int64, error)
	CountBacklog(ctx context.Context) (int, error)
}

// Result summarizes one discovery run.
type Result struct {
	Channels       int
	Playlists      int
	VideosInserted int64
	Backlog        int
}

// Runner drives the three discovery stages.
type Runner struct {
	lister  Lister
	records Recorder
	workers config.Workers
	logger  *slog.Logger
}

const pollInterval = 250 * time.Millisecond

// NewRunner builds a discovery runner.
func NewRunner(lister Lister, records Recorder, workers config.Workers, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		lister:  lister,
		records: records,
		workers: workers,
		logger:  logger.With(slog.String(logging.FieldComponent, "discovery")),
	}
}

// stage pairs a queue with a pending count covering queued plus in-flight
// items. A stage is finished only when pending reaches zero, so downstream
// stages never stop while upstream work can still produce IDs.
type stage struct {
	queue   idQueue
	pending atomic.Int64
}

func (s *stage) push(ids ...string) {
	if len(ids) == 0 {
		return
	}
	s.queue.push(ids...)
	s.pending.Add(int64(len(ids)))
}

func (s *stage) finished() bool {
	return s.pending.Load() == 0
}

// Run walks every input source and records the discovered video IDs.
// Listing failures are logged and skipped so one bad source does not
// abort the walk.
func (r *Runner) Run(ctx context.Context, input Input) (Result, error) {
	var result Result

	channelIDs, err := ExpandIDs(input.Channels, input.ChannelFiles)
	if err != nil {
		return result, err
	}
	playlistIDs, err := ExpandIDs(input.Playlists, input.PlaylistFiles)
	if err != nil {
		return result, err
	}
	videoIDs, err := ExpandIDs(input.Videos, input.VideoFiles)
	if err != nil {
		return result, err
	}
	result.Channels = len(channelIDs)
	result.Playlists = len(playlistIDs)

	// Directly-seeded video IDs need no enumeration; record them in one
	// bulk upsert instead of routing them through the worker queues.
	var inserted atomic.Int64
	if len(videoIDs) > 0 {
		count, err := r.records.UpsertVideoIDs(ctx, videoIDs)
		if err != nil {
			return result, err
		}
		inserted.Add(count)
		r.logger.Info("seed video ids recorded",
			logging.Int(logging.FieldCount, len(videoIDs)),
			logging.Int64("inserted", count))
	}

	var channels, playlists, videos stage
	channels.push(channelIDs...)
	playlists.push(playlistIDs...)
	var wg sync.WaitGroup

	runPool := func(count int, worker func()) {
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				worker()
			}()
		}
	}

	runPool(r.workers.Channel, func() {
		r.channelWorker(ctx, &channels, &playlists, &videos)
	})
	runPool(r.workers.Playlist, func() {
		r.playlistWorker(ctx, &channels, &playlists, &videos)
	})
	runPool(r.workers.Video, func() {
		r.videoWorker(ctx, &channels, &playlists, &videos, &inserted)
	})
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}

	result.VideosInserted = inserted.Load()
	if result.Backlog, err = r.records.CountBacklog(ctx); err != nil {
		return result, err
	}
	return result, nil
}

func (r *Runner) channelWorker(ctx context.Context, channels, playlists, videos *stage) {
	for ctx.Err() == nil {
		channelID, ok := channels.queue.pop()
		if !ok {
			if channels.finished() {
				return
			}
			sleepOrDone(ctx, pollInterval)
			continue
		}

		playlistsURL := ytdlp.ChannelPlaylistsURL(channelID)
		if ids, err := r.lister.ListIDs(ctx, playlistsURL); err != nil {
			r.logger.Warn("channel playlist listing failed",
				logging.String(logging.FieldURL, playlistsURL), logging.Error(err))
		} else {
			playlists.push(ids...)
		}

		videosURL := ytdlp.ChannelVideosURL(channelID)
		if ids, err := r.lister.ListIDs(ctx, videosURL); err != nil {
			r.logger.Warn("channel video listing failed",
				logging.String(logging.FieldURL, videosURL), logging.Error(err))
		} else {
			videos.push(ids...)
		}

		channels.pending.Add(-1)
	}
}

func (r *Runner) playlistWorker(ctx context.Context, channels, playlists, videos *stage) {
	for ctx.Err() == nil {
		playlistID, ok := playlists.queue.pop()
		if !ok {
			if channels.finished() && playlists.finished() {
				return
			}
			sleepOrDone(ctx, pollInterval)
			continue
		}

		playlistURL := ytdlp.PlaylistURL(playlistID)
		if ids, err := r.lister.ListIDs(ctx, playlistURL); err != nil {
			r.logger.Warn("playlist listing failed",
				logging.String(logging.FieldURL, playlistURL), logging.Error(err))
		} else {
			videos.push(ids...)
		}

		playlists.pending.Add(-1)
	}
}

func (r *Runner) videoWorker(ctx context.Context, channels, playlists, videos *stage, inserted *atomic.Int64) {
	for ctx.Err() == nil {
		batch := videos.queue.drain()
		if len(batch) == 0 {
			if channels.finished() && playlists.finished() && videos.finished() {
				return
			}
			sleepOrDone(ctx, pollInterval)
			continue
		}

		count, err := r.records.UpsertVideoIDs(ctx, batch)
		if err != nil {
			r.logger.Error("record video ids failed",
				logging.Int(logging.FieldCount, len(batch)), logging.Error(err))
		} else {
			inserted.Add(count)
			r.logger.Info("video ids recorded",
				logging.Int(logging.FieldCount, len(batch)),
				logging.Int64("inserted", count))
		}

		videos.pending.Add(-int64(len(batch)))
	}
}

func sleepOrDone(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
