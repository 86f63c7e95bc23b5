package ytapi

import (
	"sort"
	"time"

	"google.golang.org/api/youtube/v3"

	"dugout/internal/store"
)

// convertVideo flattens an API video resource into the stored record.
// Duration parsing and event date extraction happen later in the
// metadata pipeline.
func convertVideo(item *youtube.Video) *store.Video {
	video := &store.Video{
		VideoID: item.Id,
		Kind:    item.Kind,
		Etag:    item.Etag,
	}

	if snippet := item.Snippet; snippet != nil {
		video.Title = snippet.Title
		video.Description = snippet.Description
		video.ChannelID = snippet.ChannelId
		video.ChannelTitle = snippet.ChannelTitle
		video.CategoryID = snippet.CategoryId
		video.LiveBroadcastContent = snippet.LiveBroadcastContent
		video.DefaultLanguage = snippet.DefaultLanguage
		video.DefaultAudioLanguage = snippet.DefaultAudioLanguage
		video.Tags = snippet.Tags
		if published, err := time.Parse(time.RFC3339, snippet.PublishedAt); err == nil {
			video.PublishedAt = published
		}
		video.Thumbnails = convertThumbnails(snippet.Thumbnails)
		if snippet.Localized != nil {
			language := snippet.DefaultLanguage
			if language == "" {
				language = "en"
			}
			video.Localizations = append(video.Localizations, store.Localization{
				Language:    language,
				Title:       snippet.Localized.Title,
				Description: snippet.Localized.Description,
			})
		}
	}

	if details := item.ContentDetails; details != nil {
		video.Duration = details.Duration
		video.Dimension = details.Dimension
		video.Definition = details.Definition
		video.Caption = details.Caption
		video.LicensedContent = details.LicensedContent
		video.Projection = details.Projection
	}

	if status := item.Status; status != nil {
		video.UploadStatus = status.UploadStatus
		video.PrivacyStatus = status.PrivacyStatus
		video.License = status.License
		video.Embeddable = status.Embeddable
		video.PublicStatsViewable = status.PublicStatsViewable
		video.MadeForKids = status.MadeForKids
	}

	if stats := item.Statistics; stats != nil {
		video.ViewCount = int64(stats.ViewCount)
		video.LikeCount = int64(stats.LikeCount)
		video.DislikeCount = int64(stats.DislikeCount)
		video.FavoriteCount = int64(stats.FavoriteCount)
		video.CommentCount = int64(stats.CommentCount)
	}

	for language, localized := range item.Localizations {
		video.Localizations = append(video.Localizations, store.Localization{
			Language:    language,
			Title:       localized.Title,
			Description: localized.Description,
		})
	}
	sort.Slice(video.Localizations, func(i, j int) bool {
		return video.Localizations[i].Language < video.Localizations[j].Language
	})

	if topics := item.TopicDetails; topics != nil {
		video.Topics = topics.TopicCategories
	}

	return video
}

func convertThumbnails(details *youtube.ThumbnailDetails) []store.Thumbnail {
	if details == nil {
		return nil
	}
	sizes := []struct {
		name  string
		thumb *youtube.Thumbnail
	}{
		{"default", details.Default},
		{"medium", details.Medium},
		{"high", details.High},
		{"standard", details.Standard},
		{"maxres", details.Maxres},
	}
	var thumbnails []store.Thumbnail
	for _, size := range sizes {
		if size.thumb == nil {
			continue
		}
		thumbnails = append(thumbnails, store.Thumbnail{
			Size:   size.name,
			URL:    size.thumb.Url,
			Width:  size.thumb.Width,
			Height: size.thumb.Height,
		})
	}
	return thumbnails
}
