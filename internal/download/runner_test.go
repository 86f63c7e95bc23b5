package download_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dugout/internal/config"
	"dugout/internal/download"
	"dugout/internal/services/ytdlp"
	"dugout/internal/store"
	"dugout/internal/testsupport"
)

type fakeDownloader struct {
	infos map[string]*ytdlp.Info
	fail  map[string]error
}

func (f *fakeDownloader) DownloadAudio(ctx context.Context, videoID, stagingDir string) (*ytdlp.DownloadResult, error) {
	if err, ok := f.fail[videoID]; ok {
		return nil, err
	}
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return nil, err
	}
	audio := filepath.Join(stagingDir, videoID+".m4a")
	subs := filepath.Join(stagingDir, videoID+".en.ttml")
	if err := os.WriteFile(audio, []byte("audio-bytes"), 0o644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(subs, []byte("<tt/>"), 0o644); err != nil {
		return nil, err
	}
	return &ytdlp.DownloadResult{
		StagingDir: stagingDir,
		Files:      []string{audio, subs},
		Info:       f.infos[videoID],
	}, nil
}

func seedCandidate(t *testing.T, st *store.Store, videoID, title string) {
	t.Helper()
	testsupport.SeedVideo(t, st, &store.Video{
		VideoID:         videoID,
		Title:           title,
		DurationSeconds: 3 * 3600,
		Tags:            []string{"MLB", "baseball"},
	})
}

func newRunner(t *testing.T, cfg *config.Config, st *store.Store, client download.Downloader) *download.Runner {
	t.Helper()
	namer := download.NewNamer(st, &fakeSchedule{}, nil)
	return download.NewRunner(client, namer, st, cfg, nil)
}

func TestRunDownloadsAndFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	seedGame(t, st)
	seedCandidate(t, st, "abc123", "Red Sox at Yankees 07.04.2021")

	client := &fakeDownloader{
		infos: map[string]*ytdlp.Info{
			"abc123": {
				ID:       "abc123",
				Title:    "Red Sox at Yankees 07.04.2021",
				Language: "en",
				ACodec:   "mp4a.40.2",
				FormatID: "140",
				Duration: 10503,
				ASR:      44100,
			},
		},
	}

	runner := newRunner(t, cfg, st, client)
	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Candidates != 1 || result.Downloaded != 1 || result.Failed != 0 {
		t.Fatalf("result = %+v", result)
	}

	destDir := filepath.Join(cfg.Paths.LibraryDir, "2021", "07", "04")
	entries, err := os.ReadDir(destDir)
	if err != nil {
		t.Fatalf("read dest dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("filed %d assets, want 2", len(entries))
	}

	var audioPath string
	for _, entry := range entries {
		parsed := download.ExtractFileInfo(entry.Name())
		if parsed.VideoID != "abc123" {
			t.Fatalf("filed name %q missing video token", entry.Name())
		}
		if filepath.Ext(entry.Name()) == ".m4a" {
			audioPath = filepath.Join(destDir, entry.Name())
		}
	}
	if audioPath == "" {
		t.Fatal("audio file not filed")
	}

	ctx := context.Background()
	file, err := st.GetVideoFile(ctx, "abc123", "140")
	if err != nil {
		t.Fatalf("GetVideoFile: %v", err)
	}
	if file == nil {
		t.Fatal("video file row missing")
	}
	if file.LocalPath != audioPath {
		t.Fatalf("local path = %q, want %q", file.LocalPath, audioPath)
	}
	if file.FileSize != int64(len("audio-bytes")) {
		t.Fatalf("file size = %d", file.FileSize)
	}

	// Filed videos drop out of the candidate set.
	again, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run (second): %v", err)
	}
	if again.Candidates != 0 {
		t.Fatalf("second run candidates = %d, want 0", again.Candidates)
	}

	// Staging leftovers are cleaned up.
	if _, err := os.Stat(filepath.Join(cfg.Paths.AudioDir, "staging", "abc123")); !os.IsNotExist(err) {
		t.Fatalf("staging dir still present: %v", err)
	}
}

func TestRunCountsFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	seedCandidate(t, st, "bad1", "Cubs at Cardinals 05.01.2021")

	client := &fakeDownloader{
		fail: map[string]error{"bad1": errors.New("exit status 1")},
	}

	runner := newRunner(t, cfg, st, client)
	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Candidates != 1 || result.Downloaded != 0 || result.Failed != 1 {
		t.Fatalf("result = %+v", result)
	}
}
