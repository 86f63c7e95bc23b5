package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAPI()
	c.normalizeDownloader()
	c.normalizeFilters()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.AudioDir, err = expandPath(c.Paths.AudioDir); err != nil {
		return fmt.Errorf("paths.audio_dir: %w", err)
	}
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAPI() {
	c.API.YouTubeAPIKey = strings.TrimSpace(c.API.YouTubeAPIKey)
	if c.API.YouTubeAPIKey == "" {
		if value, ok := os.LookupEnv("YOUTUBE_API_KEY"); ok {
			c.API.YouTubeAPIKey = strings.TrimSpace(value)
		}
	}
	c.API.YouTubeEndpoint = strings.TrimSpace(c.API.YouTubeEndpoint)
	c.API.ScoreboardBaseURL = strings.TrimRight(strings.TrimSpace(c.API.ScoreboardBaseURL), "/")
	if c.API.ScoreboardBaseURL == "" {
		c.API.ScoreboardBaseURL = defaultScoreboardBaseURL
	}
	if c.API.RequestTimeout <= 0 {
		c.API.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeDownloader() {
	c.Downloader.Binary = strings.TrimSpace(c.Downloader.Binary)
	if c.Downloader.Binary == "" {
		c.Downloader.Binary = defaultDownloaderBinary
	}
	if c.Downloader.TimeoutSeconds <= 0 {
		c.Downloader.TimeoutSeconds = defaultDownloadTimeout
	}
	langs := make([]string, 0, len(c.Downloader.SubtitleLangs))
	seen := make(map[string]struct{}, len(c.Downloader.SubtitleLangs))
	for _, lang := range c.Downloader.SubtitleLangs {
		normalized := strings.ToLower(strings.TrimSpace(lang))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		langs = append(langs, normalized)
	}
	if len(langs) == 0 {
		langs = []string{"en", "en-orig"}
	}
	c.Downloader.SubtitleLangs = langs
	c.Downloader.SubtitleFormat = strings.ToLower(strings.TrimSpace(c.Downloader.SubtitleFormat))
	if c.Downloader.SubtitleFormat == "" {
		c.Downloader.SubtitleFormat = defaultSubtitleFormat
	}
	c.Downloader.CookiesFromUser = strings.TrimSpace(c.Downloader.CookiesFromUser)
}

func (c *Config) normalizeFilters() {
	if c.Filters.MinDurationMinutes <= 0 {
		c.Filters.MinDurationMinutes = defaultMinDurationMinutes
	}
	if c.Filters.SelectionLimit <= 0 {
		c.Filters.SelectionLimit = defaultSelectionLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "console", "json", "auto":
	default:
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
