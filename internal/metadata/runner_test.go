package metadata_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"dugout/internal/metadata"
	"dugout/internal/services"
	"dugout/internal/store"
	"dugout/internal/testsupport"
)

type fakeFetcher struct {
	mu       sync.Mutex
	records  map[string]*store.Video
	err      error
	failures int
	calls    int
}

func (f *fakeFetcher) FetchVideos(ctx context.Context, videoIDs []string) ([]*store.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, services.Wrap(services.ErrTransient, "ytapi", "list", "metadata request failed", errors.New("503"))
	}
	if f.err != nil {
		return nil, f.err
	}
	var videos []*store.Video
	for _, id := range videoIDs {
		if record, ok := f.records[id]; ok {
			copied := *record
			videos = append(videos, &copied)
		}
	}
	return videos, nil
}

func TestRunSavesAndQuarantines(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedBacklog(t, st, "good1", "good2", "gone1")

	fetcher := &fakeFetcher{
		records: map[string]*store.Video{
			"good1": {
				VideoID:  "good1",
				Title:    "Red Sox at Yankees 07.04.2021",
				Duration: "PT2H55M3S",
				Tags:     []string{"MLB"},
			},
			"good2": {
				VideoID:  "good2",
				Title:    "Pregame Show",
				Duration: "PT45M",
			},
		},
	}

	runner := metadata.NewRunner(fetcher, st, cfg.Workers, nil)
	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Saved != 2 {
		t.Fatalf("saved = %d, want 2", result.Saved)
	}
	if result.Quarantined != 1 {
		t.Fatalf("quarantined = %d, want 1", result.Quarantined)
	}
	if result.QuotaExhausted {
		t.Fatal("quota flag set unexpectedly")
	}

	ctx := context.Background()
	backlog, err := st.CountBacklog(ctx)
	if err != nil {
		t.Fatalf("CountBacklog: %v", err)
	}
	if backlog != 0 {
		t.Fatalf("backlog = %d, want 0", backlog)
	}
	quarantined, err := st.CountQuarantined(ctx)
	if err != nil {
		t.Fatalf("CountQuarantined: %v", err)
	}
	if quarantined != 1 {
		t.Fatalf("quarantined rows = %d, want 1", quarantined)
	}

	video, err := st.GetVideo(ctx, "good1")
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if video == nil {
		t.Fatal("good1 not saved")
	}
	if video.DurationSeconds != 2*3600+55*60+3 {
		t.Fatalf("duration seconds = %d", video.DurationSeconds)
	}
	if video.EventDateLocal != "2021-07-04" {
		t.Fatalf("event date = %q", video.EventDateLocal)
	}

	other, err := st.GetVideo(ctx, "good2")
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if other == nil || other.EventDateLocal != "" {
		t.Fatalf("good2 = %+v", other)
	}
}

func TestRunStopsOnQuotaExhaustion(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedBacklog(t, st, "v1", "v2")

	fetcher := &fakeFetcher{
		err: services.Wrap(services.ErrQuotaExceeded, "ytapi", "list", "daily quota exhausted", errors.New("403")),
	}

	runner := metadata.NewRunner(fetcher, st, cfg.Workers, nil)
	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !result.QuotaExhausted {
		t.Fatal("quota flag not set")
	}
	if result.Saved != 0 || result.Quarantined != 0 {
		t.Fatalf("result = %+v", result)
	}

	// The backlog is untouched for the next run.
	backlog, err := st.CountBacklog(context.Background())
	if err != nil {
		t.Fatalf("CountBacklog: %v", err)
	}
	if backlog != 2 {
		t.Fatalf("backlog = %d, want 2", backlog)
	}
}

func TestRunRetriesAfterTransientFetchFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedBacklog(t, st, "v1", "v2")

	fetcher := &fakeFetcher{
		failures: 1,
		records: map[string]*store.Video{
			"v1": {VideoID: "v1", Title: "Game One", Duration: "PT3H"},
			"v2": {VideoID: "v2", Title: "Game Two", Duration: "PT3H"},
		},
	}

	workers := cfg.Workers
	workers.MetadataRetrieve = 1

	runner := metadata.NewRunner(fetcher, st, workers, nil)
	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The worker survives the failed batch and picks it up again.
	if fetcher.calls < 2 {
		t.Fatalf("fetch calls = %d, want at least 2", fetcher.calls)
	}
	if result.Saved != 2 {
		t.Fatalf("saved = %d, want 2", result.Saved)
	}
	if result.Quarantined != 0 {
		t.Fatalf("quarantined = %d, want 0", result.Quarantined)
	}

	backlog, err := st.CountBacklog(context.Background())
	if err != nil {
		t.Fatalf("CountBacklog: %v", err)
	}
	if backlog != 0 {
		t.Fatalf("backlog = %d, want 0", backlog)
	}
}

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"PT2H55M3S", 10503, false},
		{"PT45M", 2700, false},
		{"PT50S", 50, false},
		{"P1DT1H", 90000, false},
		{"", 0, false},
		{"2h30m", 0, true},
	}
	for _, tc := range cases {
		got, err := metadata.ParseISODuration(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseISODuration(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseISODuration(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseISODuration(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}
