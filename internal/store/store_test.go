package store_test

import (
	"context"
	"testing"
	"time"

	"dugout/internal/store"
	"dugout/internal/testsupport"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return testsupport.MustOpenStore(t, testsupport.NewConfig(t))
}

func TestUpsertVideoIDsIsIdempotent(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	inserted, err := st.UpsertVideoIDs(ctx, []string{"a1", "b2", "c3"})
	if err != nil {
		t.Fatalf("UpsertVideoIDs: %v", err)
	}
	if inserted != 3 {
		t.Fatalf("inserted = %d, want 3", inserted)
	}

	inserted, err = st.UpsertVideoIDs(ctx, []string{"b2", "c3", "d4"})
	if err != nil {
		t.Fatalf("UpsertVideoIDs: %v", err)
	}
	if inserted != 1 {
		t.Fatalf("inserted = %d, want 1", inserted)
	}

	count, err := st.CountBacklog(ctx)
	if err != nil {
		t.Fatalf("CountBacklog: %v", err)
	}
	if count != 4 {
		t.Fatalf("backlog = %d, want 4", count)
	}
}

func TestNextMetadataBatchExcludesQuarantined(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	testsupport.SeedBacklog(t, st, "keep1", "keep2", "bad1")
	if _, err := st.QuarantineVideoIDs(ctx, []string{"bad1"}); err != nil {
		t.Fatalf("QuarantineVideoIDs: %v", err)
	}

	batch, err := st.NextMetadataBatch(ctx, 50, nil)
	if err != nil {
		t.Fatalf("NextMetadataBatch: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("batch = %v, want 2 ids", batch)
	}
	for _, id := range batch {
		if id == "bad1" {
			t.Fatal("quarantined id returned")
		}
	}

	quarantined, err := st.CountQuarantined(ctx)
	if err != nil {
		t.Fatalf("CountQuarantined: %v", err)
	}
	if quarantined != 1 {
		t.Fatalf("quarantined = %d, want 1", quarantined)
	}
}

func TestNextMetadataBatchHonorsExcludeAndLimit(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	testsupport.SeedBacklog(t, st, "v1", "v2", "v3")

	batch, err := st.NextMetadataBatch(ctx, 10, []string{"v1", "v3"})
	if err != nil {
		t.Fatalf("NextMetadataBatch: %v", err)
	}
	if len(batch) != 1 || batch[0] != "v2" {
		t.Fatalf("batch = %v, want [v2]", batch)
	}

	batch, err = st.NextMetadataBatch(ctx, 2, nil)
	if err != nil {
		t.Fatalf("NextMetadataBatch: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("batch size = %d, want 2", len(batch))
	}
}

func TestUpsertVideoClearsBacklogAndUpdates(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	testsupport.SeedBacklog(t, st, "game1")

	video := &store.Video{
		VideoID:         "game1",
		Title:           "Red Sox at Yankees 07.04.2021",
		Description:     "full radio broadcast",
		DurationSeconds: 10503,
		Duration:        "PT2H55M3S",
		EventDateLocal:  "2021-07-04",
		Tags:            []string{"MLB", "baseball"},
		Thumbnails: []store.Thumbnail{
			{Size: "default", URL: "https://example.test/default.jpg", Width: 120, Height: 90},
		},
		Localizations: []store.Localization{
			{Language: "en", Title: "Red Sox at Yankees 07.04.2021"},
		},
		Topics: []string{"https://en.wikipedia.org/wiki/Baseball"},
	}
	if err := st.UpsertVideo(ctx, video); err != nil {
		t.Fatalf("UpsertVideo: %v", err)
	}

	count, err := st.CountBacklog(ctx)
	if err != nil {
		t.Fatalf("CountBacklog: %v", err)
	}
	if count != 0 {
		t.Fatalf("backlog = %d after metadata save, want 0", count)
	}

	video.Title = "Red Sox at Yankees 07.04.2021 Full Game"
	video.ViewCount = 1000
	if err := st.UpsertVideo(ctx, video); err != nil {
		t.Fatalf("UpsertVideo (update): %v", err)
	}

	got, err := st.GetVideo(ctx, "game1")
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if got == nil {
		t.Fatal("video not found")
	}
	if got.Title != video.Title || got.ViewCount != 1000 {
		t.Fatalf("video = %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "MLB" {
		t.Fatalf("tags = %v", got.Tags)
	}
	if len(got.Thumbnails) != 1 || got.Thumbnails[0].Width != 120 {
		t.Fatalf("thumbnails = %v", got.Thumbnails)
	}
	if len(got.Localizations) != 1 || got.Localizations[0].Language != "en" {
		t.Fatalf("localizations = %v", got.Localizations)
	}
	if got.EventDateLocal != "2021-07-04" {
		t.Fatalf("event date = %q", got.EventDateLocal)
	}
}

func TestGetVideoMissing(t *testing.T) {
	st := newStore(t)
	got, err := st.GetVideo(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestEventsInsertAndLookups(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	date := time.Date(2021, time.July, 4, 23, 5, 0, 0, time.UTC)
	events := []store.Event{
		{
			EventID: "401228211", Date: date, DateKey: "2021-07-04",
			SeasonType: 2, ShortName: "BOS @ NYY",
			HomeTeam: "Yankees", AwayTeam: "Red Sox",
			HomeTeamNormalized: "nya", AwayTeamNormalized: "bos",
		},
		{
			EventID: "401228212", Date: date, DateKey: "2021-07-04",
			SeasonType: 2, ShortName: "LAD @ SF",
			HomeTeam: "Giants", AwayTeam: "Dodgers",
			HomeTeamNormalized: "sfn", AwayTeamNormalized: "lan",
		},
	}

	inserted, err := st.InsertEvents(ctx, events)
	if err != nil {
		t.Fatalf("InsertEvents: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("inserted = %d, want 2", inserted)
	}

	// Second insert is a no-op.
	inserted, err = st.InsertEvents(ctx, events)
	if err != nil {
		t.Fatalf("InsertEvents: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("inserted = %d, want 0", inserted)
	}

	has, err := st.HasEventsForDate(ctx, "2021-07-04")
	if err != nil || !has {
		t.Fatalf("HasEventsForDate = %v, %v", has, err)
	}
	has, err = st.HasEventsForDate(ctx, "2021-07-05")
	if err != nil || has {
		t.Fatalf("HasEventsForDate = %v, %v for empty date", has, err)
	}

	home, err := st.OpposingTeam(ctx, "2021-07-04", "bos", true)
	if err != nil || home != "nya" {
		t.Fatalf("OpposingTeam home = %q, %v", home, err)
	}
	away, err := st.OpposingTeam(ctx, "2021-07-04", "sfn", false)
	if err != nil || away != "lan" {
		t.Fatalf("OpposingTeam away = %q, %v", away, err)
	}
	missing, err := st.OpposingTeam(ctx, "2021-07-04", "chn", true)
	if err != nil || missing != "" {
		t.Fatalf("OpposingTeam missing = %q, %v", missing, err)
	}

	eventID, err := st.EventID(ctx, "2021-07-04", "nya", "bos")
	if err != nil || eventID != "401228211" {
		t.Fatalf("EventID = %q, %v", eventID, err)
	}
	eventID, err = st.EventID(ctx, "2021-07-04", "", "lan")
	if err != nil || eventID != "401228212" {
		t.Fatalf("EventID away only = %q, %v", eventID, err)
	}
	eventID, err = st.EventID(ctx, "2021-07-04", "", "")
	if err != nil || eventID != "" {
		t.Fatalf("EventID both unknown = %q, %v", eventID, err)
	}
}

func TestInsertVideoFileCompositeKey(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	file := store.VideoFile{VideoID: "game1", AFormatID: "140", FileSize: 1024, LocalPath: "/tmp/a.m4a"}
	added, err := st.InsertVideoFile(ctx, file)
	if err != nil || !added {
		t.Fatalf("InsertVideoFile = %v, %v", added, err)
	}

	added, err = st.InsertVideoFile(ctx, file)
	if err != nil {
		t.Fatalf("InsertVideoFile repeat: %v", err)
	}
	if added {
		t.Fatal("duplicate composite key inserted")
	}

	// Same video, different audio format is a distinct row.
	file.AFormatID = "251"
	added, err = st.InsertVideoFile(ctx, file)
	if err != nil || !added {
		t.Fatalf("InsertVideoFile new format = %v, %v", added, err)
	}

	got, err := st.GetVideoFile(ctx, "game1", "140")
	if err != nil {
		t.Fatalf("GetVideoFile: %v", err)
	}
	if got == nil || got.LocalPath != "/tmp/a.m4a" {
		t.Fatalf("file = %+v", got)
	}
}

func TestDownloadCandidates(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	seed := func(id, title string, seconds int64, tags ...string) {
		t.Helper()
		testsupport.SeedVideo(t, st, &store.Video{
			VideoID:         id,
			Title:           title,
			DurationSeconds: seconds,
			Tags:            tags,
		})
	}

	seed("good", "Red Sox at Yankees 07.04.2021", 3*3600, "MLB", "baseball")
	seed("short", "Cubs at Cardinals 05.01.2021", 600, "baseball")
	seed("untagged", "Red Sox at Yankees 07.05.2021", 3*3600, "music")
	seed("ncaa", "Regional Final", 3*3600, "NCAA baseball")
	seed("denied", "2021 MLB Draft Day 1", 3*3600, "mlb")
	seed("downloaded", "Giants at Dodgers 06.01.2021", 3*3600, "world series")

	if _, err := st.InsertVideoFile(ctx, store.VideoFile{
		VideoID: "downloaded", AFormatID: "140", LocalPath: "/tmp/x.m4a",
	}); err != nil {
		t.Fatalf("InsertVideoFile: %v", err)
	}

	candidates, err := st.DownloadCandidates(ctx, 75*time.Minute, 1000)
	if err != nil {
		t.Fatalf("DownloadCandidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0] != "good" {
		t.Fatalf("candidates = %v, want [good]", candidates)
	}
}

func TestStats(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	testsupport.SeedBacklog(t, st, "p1", "p2", "q1")
	if _, err := st.QuarantineVideoIDs(ctx, []string{"q1"}); err != nil {
		t.Fatalf("QuarantineVideoIDs: %v", err)
	}
	testsupport.SeedVideo(t, st, &store.Video{VideoID: "m1", Title: "x"})

	summary, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := store.Summary{Backlog: 2, Quarantined: 1, Videos: 1}
	if summary != want {
		t.Fatalf("summary = %+v, want %+v", summary, want)
	}
}
