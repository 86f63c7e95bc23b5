package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dugout/internal/logging"
	"dugout/internal/services"
)

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary         string
	timeout        time.Duration
	subtitleLangs  []string
	subtitleFormat string
	writeInfoJSON  bool
	exec           Executor
	logger         *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger routes download progress through the given logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.With(slog.String(logging.FieldComponent, "ytdlp"))
		}
	}
}

// New constructs a yt-dlp client.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{
		binary:         binary,
		timeout:        time.Duration(timeoutSeconds) * time.Second,
		subtitleLangs:  []string{"en", "en-orig"},
		subtitleFormat: "ttml",
		writeInfoJSON:  true,
		exec:           commandExecutor{},
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// WithSubtitles overrides the automatic subtitle languages and format.
func WithSubtitles(langs []string, format string) Option {
	return func(c *Client) {
		if len(langs) > 0 {
			c.subtitleLangs = langs
		}
		if format != "" {
			c.subtitleFormat = format
		}
	}
}

// WithInfoJSON toggles writing the metadata sidecar during downloads.
func WithInfoJSON(enabled bool) Option {
	return func(c *Client) {
		c.writeInfoJSON = enabled
	}
}

// ChannelVideosURL returns the uploads listing for a channel handle.
func ChannelVideosURL(channelID string) string {
	return fmt.Sprintf("https://www.youtube.com/@%s/videos", channelID)
}

// ChannelPlaylistsURL returns the playlists listing for a channel handle.
func ChannelPlaylistsURL(channelID string) string {
	return fmt.Sprintf("https://www.youtube.com/@%s/playlists", channelID)
}

// PlaylistURL returns the listing URL for a playlist ID.
func PlaylistURL(playlistID string) string {
	return fmt.Sprintf("https://www.youtube.com/playlist?list=%s", playlistID)
}

// WatchURL returns the watch page for a video ID.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}

// ListIDs enumerates entry IDs from a channel or playlist URL without
// resolving each entry. Blank lines are dropped.
func (c *Client) ListIDs(ctx context.Context, url string) ([]string, error) {
	if strings.TrimSpace(url) == "" {
		return nil, services.Wrap(services.ErrValidation, "ytdlp", "list", "listing URL required", nil)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{"--flat-playlist", "--print", "id", url}
	var ids []string
	err := c.exec.Run(runCtx, c.binary, args, func(line string) {
		line = strings.TrimSpace(line)
		if line != "" {
			ids = append(ids, line)
		}
	})
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "list", "id listing failed", err)
	}
	return ids, nil
}
