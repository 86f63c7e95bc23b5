package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateWorkers(); err != nil {
		return err
	}
	if err := c.validateFilters(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAPI() error {
	parsed, err := url.Parse(c.API.ScoreboardBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.scoreboard_base_url %q is not an absolute URL", c.API.ScoreboardBaseURL)
	}
	if c.API.YouTubeEndpoint != "" {
		parsed, err := url.Parse(c.API.YouTubeEndpoint)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("api.youtube_endpoint %q is not an absolute URL", c.API.YouTubeEndpoint)
		}
	}
	return nil
}

func (c *Config) validateWorkers() error {
	return ensurePositiveMap(map[string]int{
		"workers.channel":           c.Workers.Channel,
		"workers.playlist":          c.Workers.Playlist,
		"workers.video":             c.Workers.Video,
		"workers.metadata_retrieve": c.Workers.MetadataRetrieve,
		"workers.event":             c.Workers.Event,
		"workers.download":          c.Workers.Download,
	})
}

func (c *Config) validateFilters() error {
	if c.Filters.MinDurationMinutes <= 0 {
		return errors.New("filters.min_duration_minutes must be positive")
	}
	if c.Filters.SelectionLimit <= 0 {
		return errors.New("filters.selection_limit must be positive")
	}
	return nil
}

// RequireYouTubeKey returns an error directing the operator to configure an
// API key. Only the metadata pipeline needs it, so validation is deferred to
// the commands that call the API.
func (c *Config) RequireYouTubeKey() error {
	if c.API.YouTubeAPIKey != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/dugout/config.toml"
	}
	return fmt.Errorf("api.youtube_api_key is required. Set YOUTUBE_API_KEY env var or edit %s (create with 'dugout config init')", defaultPath)
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
