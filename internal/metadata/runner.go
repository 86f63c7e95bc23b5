package metadata

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"dugout/internal/config"
	"dugout/internal/dateparse"
	"dugout/internal/logging"
	"dugout/internal/services"
	"dugout/internal/store"
	"dugout/internal/textutil"
)

// BatchSize is how many backlog IDs one API request covers.
const BatchSize = 50

// maxSaveWorkers caps the save pool so a large retrieve pool cannot flood
// the store with writers.
const maxSaveWorkers = 150

// retryDelay paces retrieve retries after a transient fetch failure.
const retryDelay = 250 * time.Millisecond

// Fetcher retrieves metadata records for a batch of video IDs.
type Fetcher interface {
	FetchVideos(ctx context.Context, videoIDs []string) ([]*store.Video, error)
}

// Store is the persistence surface the pipeline needs.
type Store interface {
	NextMetadataBatch(ctx context.Context, limit int, exclude []string) ([]string, error)
	QuarantineVideoIDs(ctx context.Context, videoIDs []string) (int64, error)
	UpsertVideo(ctx context.Context, video *store.Video) error
}

// Result summarizes one metadata run.
type Result struct {
	Saved          int64
	Quarantined    int64
	QuotaExhausted bool
}

// Runner coordinates the retrieve and save worker pools.
type Runner struct {
	fetcher Fetcher
	records Store
	workers config.Workers
	logger  *slog.Logger

	quota atomic.Bool

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewRunner builds a metadata runner.
func NewRunner(fetcher Fetcher, records Store, workers config.Workers, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		fetcher:  fetcher,
		records:  records,
		workers:  workers,
		logger:   logger.With(slog.String(logging.FieldComponent, "metadata")),
		inflight: make(map[string]struct{}),
	}
}

// Run fetches and saves metadata until the backlog is drained, the API
// quota runs out, or the context is canceled.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	retrieveWorkers := r.workers.MetadataRetrieve
	if retrieveWorkers <= 0 {
		retrieveWorkers = 1
	}

	saveCh := make(chan *store.Video, retrieveWorkers*BatchSize)

	var saved, quarantined atomic.Int64
	var retrieveWG, saveWG sync.WaitGroup

	for i := 0; i < retrieveWorkers; i++ {
		retrieveWG.Add(1)
		go func(worker int) {
			defer retrieveWG.Done()
			r.retrieveLoop(services.WithWorker(ctx, worker), saveCh, &quarantined)
		}(i)
	}
	for i := 0; i < saveWorkerCount(retrieveWorkers); i++ {
		saveWG.Add(1)
		go func(worker int) {
			defer saveWG.Done()
			r.saveLoop(services.WithWorker(ctx, worker), saveCh, &saved)
		}(i)
	}

	retrieveWG.Wait()
	close(saveCh)
	saveWG.Wait()

	result := Result{
		Saved:          saved.Load(),
		Quarantined:    quarantined.Load(),
		QuotaExhausted: r.quota.Load(),
	}
	return result, ctx.Err()
}

func (r *Runner) retrieveLoop(ctx context.Context, saveCh chan<- *store.Video, quarantined *atomic.Int64) {
	logger := logging.WithContext(ctx, r.logger)
	for ctx.Err() == nil && !r.quota.Load() {
		batch, err := r.records.NextMetadataBatch(ctx, BatchSize, r.inflightIDs())
		if err != nil {
			logger.Error("select metadata batch failed", logging.Error(err))
			return
		}
		if len(batch) == 0 {
			return
		}
		r.markInflight(batch)

		videos, err := r.fetcher.FetchVideos(ctx, batch)
		if err != nil {
			if services.IsQuotaExhausted(err) {
				logger.Error("metadata quota exhausted, stopping requests")
				r.quota.Store(true)
			} else {
				// Transient failure: the batch stays eligible and the
				// worker keeps polling.
				logger.Error("fetch metadata failed", logging.Int(logging.FieldCount, len(batch)), logging.Error(err))
				r.clearInflight(batch)
				select {
				case <-ctx.Done():
					return
				case <-time.After(retryDelay):
				}
				continue
			}
		}

		returned := make(map[string]struct{}, len(videos))
		for _, video := range videos {
			normalize(video, logger)
			returned[video.VideoID] = struct{}{}
			select {
			case saveCh <- video:
			case <-ctx.Done():
				return
			}
		}

		// IDs the API would not return never resolve on retry.
		var missing []string
		for _, id := range batch {
			if _, ok := returned[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 && !r.quota.Load() {
			count, err := r.records.QuarantineVideoIDs(ctx, missing)
			if err != nil {
				logger.Error("quarantine failed", logging.Error(err))
			} else {
				quarantined.Add(count)
				logger.Info("video ids quarantined", logging.Int(logging.FieldCount, len(missing)))
			}
			r.clearInflight(missing)
		} else if len(missing) > 0 {
			r.clearInflight(missing)
		}
	}
}

func (r *Runner) saveLoop(ctx context.Context, saveCh <-chan *store.Video, saved *atomic.Int64) {
	logger := logging.WithContext(ctx, r.logger)
	for video := range saveCh {
		if err := r.records.UpsertVideo(ctx, video); err != nil {
			logger.Error("save metadata failed",
				logging.String(logging.FieldVideoID, video.VideoID), logging.Error(err))
		} else {
			saved.Add(1)
		}
		r.clearInflight([]string{video.VideoID})
	}
}

// normalize derives the stored fields the API does not provide directly.
func normalize(video *store.Video, logger *slog.Logger) {
	seconds, err := ParseISODuration(video.Duration)
	if err != nil {
		logger.Warn("unparseable duration",
			logging.String(logging.FieldVideoID, video.VideoID),
			logging.String("duration", video.Duration))
	}
	video.DurationSeconds = seconds

	if date, ok := dateparse.Extract(textutil.Normalize(video.Title)); ok {
		video.EventDateLocal = date.Format("2006-01-02")
	}
}

// saveWorkerCount sizes the save pool so writes keep pace with batch-50
// retrieval, capped at maxSaveWorkers.
func saveWorkerCount(retrieveWorkers int) int {
	count := retrieveWorkers * BatchSize
	if count > maxSaveWorkers {
		count = maxSaveWorkers
	}
	if count < 1 {
		count = 1
	}
	return count
}

func (r *Runner) inflightIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.inflight) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.inflight))
	for id := range r.inflight {
		ids = append(ids, id)
	}
	return ids
}

func (r *Runner) markInflight(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		r.inflight[id] = struct{}{}
	}
}

func (r *Runner) clearInflight(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.inflight, id)
	}
}
