package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"dugout/internal/config"
	"dugout/internal/store"
	"dugout/internal/testsupport"
)

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\naudio_dir = %q\nlibrary_dir = %q\nlog_dir = %q\n\n"+
			"[api]\nyoutube_api_key = %q\nyoutube_endpoint = %q\nscoreboard_base_url = %q\n\n"+
			"[downloader]\nbinary = %q\n",
		cfg.Paths.DataDir,
		cfg.Paths.AudioDir,
		cfg.Paths.LibraryDir,
		cfg.Paths.LogDir,
		cfg.API.YouTubeAPIKey,
		cfg.API.YouTubeEndpoint,
		cfg.API.ScoreboardBaseURL,
		cfg.Downloader.Binary,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func setupCLIConfig(t *testing.T, opts ...testsupport.ConfigOption) (*config.Config, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	configPath := filepath.Join(filepath.Dir(cfg.Paths.DataDir), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return cfg, configPath
}

func TestCLIStatusCommand(t *testing.T) {
	cfg, configPath := setupCLIConfig(t)

	st := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedBacklog(t, st, "vid01", "vid02")

	out, _, err := runCLI(t, []string{"status"}, configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Backlog") || !strings.Contains(out, "2") {
		t.Fatalf("unexpected status output: %q", out)
	}
}

func TestCLIBackfillCommand(t *testing.T) {
	cfg, configPath := setupCLIConfig(t)

	gameDir := filepath.Join(cfg.Paths.LibraryDir, "2021", "07", "04")
	named := filepath.Join(gameDir, "bos at nya - 2021.07.04 - [en][2H 55M 3S][44100][No DRC][mp4a.40.2][3][]{fid-140}{e-401228211}{yt-vid01}.m4a")
	testsupport.WriteFile(t, named, 2048)
	testsupport.WriteFile(t, filepath.Join(gameDir, "untagged notes.m4a"), 16)
	testsupport.WriteFile(t, filepath.Join(gameDir, "transcript.ttml"), 16)

	out, _, err := runCLI(t, []string{"backfill"}, configPath)
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if !strings.Contains(out, "Scanned 2 audio files; recovered 1 download records") {
		t.Fatalf("unexpected backfill output: %q", out)
	}

	st := testsupport.MustOpenStore(t, cfg)
	file, err := st.GetVideoFile(context.Background(), "vid01", "140")
	if err != nil {
		t.Fatalf("GetVideoFile: %v", err)
	}
	if file == nil {
		t.Fatal("expected recovered download record")
	}
	if file.FileSize != 2048 {
		t.Fatalf("unexpected file size: %d", file.FileSize)
	}
	if file.LocalPath != named {
		t.Fatalf("unexpected local path: %s", file.LocalPath)
	}

	out, _, err = runCLI(t, []string{"backfill"}, configPath)
	if err != nil {
		t.Fatalf("backfill rerun: %v", err)
	}
	if !strings.Contains(out, "recovered 0 download records") {
		t.Fatalf("expected rerun to recover nothing: %q", out)
	}
}

func TestCLIPreflightCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, configPath := setupCLIConfig(t,
		testsupport.WithScoreboardURL(server.URL),
		testsupport.WithStubbedBinaries("yt-dlp"),
	)

	out, _, err := runCLI(t, []string{"preflight"}, configPath)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	if !strings.Contains(out, "yt-dlp") || !strings.Contains(out, "OK") {
		t.Fatalf("unexpected preflight output: %q", out)
	}
	if strings.Contains(out, "FAIL") {
		t.Fatalf("expected all checks to pass: %q", out)
	}
}

func TestCLIMetadataCommandSeedsBacklog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"kind":"youtube#videoListResponse","items":[]}`)
	}))
	defer server.Close()

	cfg, configPath := setupCLIConfig(t, testsupport.WithYouTubeEndpoint(server.URL+"/"))

	idFile := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(idFile, []byte("vid02\n"), 0o644); err != nil {
		t.Fatalf("write id file: %v", err)
	}

	out, _, err := runCLI(t, []string{"metadata", "--video-ids", "vid01", "--video-id-files", idFile}, configPath)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	// Both seeds entered the backlog; the API knows neither, so both
	// end up quarantined.
	if !strings.Contains(out, "quarantined 2") {
		t.Fatalf("unexpected metadata output: %q", out)
	}

	st := testsupport.MustOpenStore(t, cfg)
	quarantined, err := st.CountQuarantined(context.Background())
	if err != nil {
		t.Fatalf("CountQuarantined: %v", err)
	}
	if quarantined != 2 {
		t.Fatalf("quarantined = %d, want 2", quarantined)
	}
}

func TestCLIEventsCommandHonorsRunLock(t *testing.T) {
	cfg, configPath := setupCLIConfig(t)

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("TryLock: locked=%v err=%v", locked, err)
	}
	defer lock.Unlock()

	_, _, err = runCLI(t, []string{"events", "2021-07-04"}, configPath)
	if err == nil || !strings.Contains(err.Error(), "already in progress") {
		t.Fatalf("err = %v, want run lock error", err)
	}
}

func TestValidateWorkerOverride(t *testing.T) {
	if err := validateWorkerOverride(0, false); err != nil {
		t.Fatalf("unchanged flag should pass: %v", err)
	}
	if err := validateWorkerOverride(4, true); err != nil {
		t.Fatalf("positive override should pass: %v", err)
	}
	if err := validateWorkerOverride(0, true); err == nil {
		t.Fatal("expected zero override to fail")
	}
	if err := validateWorkerOverride(-2, true); err == nil {
		t.Fatal("expected negative override to fail")
	}
}

func TestRenderSummaryTable(t *testing.T) {
	out := renderSummaryTable(store.Summary{Backlog: 3, Quarantined: 1, Videos: 7, Events: 15, Files: 2})
	for _, want := range []string{"Backlog", "Quarantined", "Videos", "Events", "Files", "3", "15"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary table missing %q:\n%s", want, out)
		}
	}
}

func TestMaskKey(t *testing.T) {
	if got := maskKey(""); got != "(not set)" {
		t.Fatalf("unexpected mask for empty key: %s", got)
	}
	if got := maskKey("abc"); got != "****" {
		t.Fatalf("unexpected mask for short key: %s", got)
	}
	if got := maskKey("AIzaSyExample1234"); !strings.HasSuffix(got, "1234") || strings.Contains(got, "AIza") {
		t.Fatalf("unexpected mask for long key: %s", got)
	}
}
