package ytapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"dugout/internal/config"
	"dugout/internal/services"
	"dugout/internal/store"
)

// videoParts lists every resource part requested per video.
var videoParts = []string{
	"contentDetails", "id", "liveStreamingDetails", "localizations",
	"player", "recordingDetails", "snippet", "statistics", "status",
	"topicDetails",
}

// MaxBatchSize is the largest number of video IDs one list call accepts.
const MaxBatchSize = 50

// Client wraps the YouTube Data API videos.list endpoint.
type Client struct {
	svc *youtube.Service
}

// New constructs a metadata client from configuration. A non-default
// endpoint redirects requests, which tests use to point at local servers.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	key := strings.TrimSpace(cfg.API.YouTubeAPIKey)
	if key == "" {
		return nil, services.Wrap(services.ErrConfiguration, "ytapi", "new", "YouTube API key is not set", nil)
	}

	opts := []option.ClientOption{option.WithAPIKey(key)}
	if cfg.API.YouTubeEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.API.YouTubeEndpoint))
	}
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "ytapi", "new", "build YouTube service", err)
	}
	return &Client{svc: svc}, nil
}

// FetchVideos retrieves metadata for the given IDs. IDs the API does not
// return are simply absent from the result; callers quarantine those.
// Quota exhaustion surfaces as services.ErrQuotaExceeded.
func (c *Client) FetchVideos(ctx context.Context, videoIDs []string) ([]*store.Video, error) {
	var videos []*store.Video
	for start := 0; start < len(videoIDs); start += MaxBatchSize {
		end := start + MaxBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		chunk := videoIDs[start:end]

		response, err := c.svc.Videos.List(videoParts).Id(chunk...).Context(ctx).Do()
		if err != nil {
			if isQuotaExceeded(err) {
				return videos, services.Wrap(services.ErrQuotaExceeded, "ytapi", "list", "daily quota exhausted", err)
			}
			return videos, services.Wrap(services.ErrTransient, "ytapi", "list", "videos.list request failed", err)
		}
		for _, item := range response.Items {
			videos = append(videos, convertVideo(item))
		}
	}
	return videos, nil
}

func isQuotaExceeded(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusForbidden {
		return false
	}
	for _, item := range apiErr.Errors {
		if item.Reason == "quotaExceeded" {
			return true
		}
	}
	return false
}
