package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dugout/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("missing file reported as existing")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Downloader.Binary != "yt-dlp" {
		t.Fatalf("downloader binary = %q", cfg.Downloader.Binary)
	}
	if cfg.Filters.MinDurationMinutes != 75 {
		t.Fatalf("min duration = %d", cfg.Filters.MinDurationMinutes)
	}
	if cfg.Workers.Video <= 0 {
		t.Fatalf("video workers = %d", cfg.Workers.Video)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	path := writeConfig(t, `
[paths]
data_dir = "~/dugout-data"

[api]
scoreboard_base_url = "http://127.0.0.1:8080/scoreboard/"

[downloader]
subtitle_langs = ["EN", "en", " en-orig "]

[logging]
format = "JSON"
level = "DEBUG"
`)
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("file not detected")
	}
	home, _ := os.UserHomeDir()
	if cfg.Paths.DataDir != filepath.Join(home, "dugout-data") {
		t.Fatalf("data dir = %q", cfg.Paths.DataDir)
	}
	if cfg.API.ScoreboardBaseURL != "http://127.0.0.1:8080/scoreboard" {
		t.Fatalf("scoreboard url = %q", cfg.API.ScoreboardBaseURL)
	}
	if got := cfg.Downloader.SubtitleLangs; len(got) != 2 || got[0] != "en" || got[1] != "en-orig" {
		t.Fatalf("subtitle langs = %v", got)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadRejectsBadScoreboardURL(t *testing.T) {
	path := writeConfig(t, `
[api]
scoreboard_base_url = "not a url"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadRejectsNonPositiveWorkers(t *testing.T) {
	path := writeConfig(t, `
[workers]
video = -1
`)
	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "workers.video") {
		t.Fatalf("err = %v", err)
	}
}

func TestYouTubeKeyFromEnv(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "env-key")
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.YouTubeAPIKey != "env-key" {
		t.Fatalf("api key = %q", cfg.API.YouTubeAPIKey)
	}
	if err := cfg.RequireYouTubeKey(); err != nil {
		t.Fatalf("RequireYouTubeKey: %v", err)
	}
}

func TestRequireYouTubeKeyMissing(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")
	cfg := config.Default()
	if err := cfg.RequireYouTubeKey(); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestDatabaseAndLockPaths(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = "/tmp/dugout"
	if cfg.DatabasePath() != "/tmp/dugout/dugout.db" {
		t.Fatalf("db path = %q", cfg.DatabasePath())
	}
	if cfg.LockPath() != "/tmp/dugout/dugout.lock" {
		t.Fatalf("lock path = %q", cfg.LockPath())
	}
}

func TestCreateSampleParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("Load sample: exists=%v err=%v", exists, err)
	}
}
