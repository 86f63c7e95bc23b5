package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Thumbnail is one rendition of a video's thumbnail set.
type Thumbnail struct {
	Size   string
	URL    string
	Width  int64
	Height int64
}

// Localization is a translated title/description pair.
type Localization struct {
	Language    string
	Title       string
	Description string
}

// Video holds the full metadata record for one video.
type Video struct {
	VideoID              string
	Kind                 string
	Etag                 string
	Title                string
	Description          string
	PublishedAt          time.Time
	ChannelID            string
	ChannelTitle         string
	CategoryID           string
	LiveBroadcastContent string
	DefaultLanguage      string
	DefaultAudioLanguage string
	Duration             string
	DurationSeconds      int64
	Dimension            string
	Definition           string
	Caption              string
	LicensedContent      bool
	Projection           string
	UploadStatus         string
	PrivacyStatus        string
	License              string
	Embeddable           bool
	PublicStatsViewable  bool
	MadeForKids          bool
	ViewCount            int64
	LikeCount            int64
	DislikeCount         int64
	FavoriteCount        int64
	CommentCount         int64
	// EventDateLocal is the game date extracted from the title, in
	// YYYY-MM-DD form, or empty when no date was found.
	EventDateLocal string
	UpdatedAt      time.Time

	Tags          []string
	Thumbnails    []Thumbnail
	Localizations []Localization
	Topics        []string
}

// UpsertVideo writes a video's metadata and all child rows in one
// transaction, then removes the ID from the processing backlog. Re-running
// with fresh metadata updates the stored values in place.
func (s *Store) UpsertVideo(ctx context.Context, video *Video) error {
	if video == nil || video.VideoID == "" {
		return errors.New("video is missing an id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO videos (
            video_id, kind, etag, title, description, published_at,
            channel_id, channel_title, category_id, live_broadcast_content,
            default_language, default_audio_language, duration, duration_seconds,
            dimension, definition, caption, licensed_content, projection,
            upload_status, privacy_status, license, embeddable,
            public_stats_viewable, made_for_kids, view_count, like_count,
            dislike_count, favorite_count, comment_count, event_date_local, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (video_id) DO UPDATE SET
            kind = excluded.kind,
            etag = excluded.etag,
            title = excluded.title,
            description = excluded.description,
            published_at = excluded.published_at,
            channel_id = excluded.channel_id,
            channel_title = excluded.channel_title,
            category_id = excluded.category_id,
            live_broadcast_content = excluded.live_broadcast_content,
            default_language = excluded.default_language,
            default_audio_language = excluded.default_audio_language,
            duration = excluded.duration,
            duration_seconds = excluded.duration_seconds,
            dimension = excluded.dimension,
            definition = excluded.definition,
            caption = excluded.caption,
            licensed_content = excluded.licensed_content,
            projection = excluded.projection,
            upload_status = excluded.upload_status,
            privacy_status = excluded.privacy_status,
            license = excluded.license,
            embeddable = excluded.embeddable,
            public_stats_viewable = excluded.public_stats_viewable,
            made_for_kids = excluded.made_for_kids,
            view_count = excluded.view_count,
            like_count = excluded.like_count,
            dislike_count = excluded.dislike_count,
            favorite_count = excluded.favorite_count,
            comment_count = excluded.comment_count,
            event_date_local = excluded.event_date_local,
            updated_at = excluded.updated_at`,
		video.VideoID,
		nullableString(video.Kind),
		nullableString(video.Etag),
		video.Title,
		video.Description,
		nullableTime(video.PublishedAt),
		nullableString(video.ChannelID),
		nullableString(video.ChannelTitle),
		nullableString(video.CategoryID),
		nullableString(video.LiveBroadcastContent),
		nullableString(video.DefaultLanguage),
		nullableString(video.DefaultAudioLanguage),
		nullableString(video.Duration),
		video.DurationSeconds,
		nullableString(video.Dimension),
		nullableString(video.Definition),
		nullableString(video.Caption),
		boolToInt(video.LicensedContent),
		nullableString(video.Projection),
		nullableString(video.UploadStatus),
		nullableString(video.PrivacyStatus),
		nullableString(video.License),
		boolToInt(video.Embeddable),
		boolToInt(video.PublicStatsViewable),
		boolToInt(video.MadeForKids),
		video.ViewCount,
		video.LikeCount,
		video.DislikeCount,
		video.FavoriteCount,
		video.CommentCount,
		nullableString(video.EventDateLocal),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert video %s: %w", video.VideoID, err)
	}

	for _, tag := range video.Tags {
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO video_tags (video_id, tag) VALUES (?, ?)
             ON CONFLICT (video_id, tag) DO NOTHING`,
			video.VideoID, tag,
		); err != nil {
			return fmt.Errorf("upsert tag: %w", err)
		}
	}

	for _, thumb := range video.Thumbnails {
		if thumb.Size == "" {
			continue
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO video_thumbnails (video_id, size, url, width, height) VALUES (?, ?, ?, ?, ?)
             ON CONFLICT (video_id, size) DO UPDATE SET
                 url = excluded.url, width = excluded.width, height = excluded.height`,
			video.VideoID, thumb.Size, thumb.URL, thumb.Width, thumb.Height,
		); err != nil {
			return fmt.Errorf("upsert thumbnail: %w", err)
		}
	}

	for _, loc := range video.Localizations {
		if loc.Language == "" {
			continue
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO video_localizations (video_id, language, title, description) VALUES (?, ?, ?, ?)
             ON CONFLICT (video_id, language) DO UPDATE SET
                 title = excluded.title, description = excluded.description`,
			video.VideoID, loc.Language, loc.Title, loc.Description,
		); err != nil {
			return fmt.Errorf("upsert localization: %w", err)
		}
	}

	for _, topic := range video.Topics {
		if topic == "" {
			continue
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO video_topics (video_id, category) VALUES (?, ?)
             ON CONFLICT (video_id, category) DO NOTHING`,
			video.VideoID, topic,
		); err != nil {
			return fmt.Errorf("upsert topic: %w", err)
		}
	}

	if _, err := tx.ExecContext(
		ctx,
		`DELETE FROM videos_to_be_processed WHERE video_id = ?`,
		video.VideoID,
	); err != nil {
		return fmt.Errorf("clear backlog entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

// GetVideo fetches a video's metadata with tags, thumbnails, localizations,
// and topics. Returns nil when the video is unknown.
func (s *Store) GetVideo(ctx context.Context, videoID string) (*Video, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT video_id, kind, etag, title, description, published_at,
                channel_id, channel_title, category_id, live_broadcast_content,
                default_language, default_audio_language, duration, duration_seconds,
                dimension, definition, caption, licensed_content, projection,
                upload_status, privacy_status, license, embeddable,
                public_stats_viewable, made_for_kids, view_count, like_count,
                dislike_count, favorite_count, comment_count, event_date_local, updated_at
         FROM videos WHERE video_id = ?`,
		videoID,
	)

	var (
		video           Video
		kind            sql.NullString
		etag            sql.NullString
		publishedRaw    sql.NullString
		channelID       sql.NullString
		channelTitle    sql.NullString
		categoryID      sql.NullString
		liveBroadcast   sql.NullString
		defaultLanguage sql.NullString
		defaultAudio    sql.NullString
		duration        sql.NullString
		dimension       sql.NullString
		definition      sql.NullString
		caption         sql.NullString
		licensed        int
		projection      sql.NullString
		uploadStatus    sql.NullString
		privacyStatus   sql.NullString
		license         sql.NullString
		embeddable      int
		statsViewable   int
		madeForKids     int
		eventDateLocal  sql.NullString
		updatedRaw      string
	)

	err := row.Scan(
		&video.VideoID, &kind, &etag, &video.Title, &video.Description, &publishedRaw,
		&channelID, &channelTitle, &categoryID, &liveBroadcast,
		&defaultLanguage, &defaultAudio, &duration, &video.DurationSeconds,
		&dimension, &definition, &caption, &licensed, &projection,
		&uploadStatus, &privacyStatus, &license, &embeddable,
		&statsViewable, &madeForKids, &video.ViewCount, &video.LikeCount,
		&video.DislikeCount, &video.FavoriteCount, &video.CommentCount, &eventDateLocal, &updatedRaw,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}

	video.Kind = kind.String
	video.Etag = etag.String
	video.ChannelID = channelID.String
	video.ChannelTitle = channelTitle.String
	video.CategoryID = categoryID.String
	video.LiveBroadcastContent = liveBroadcast.String
	video.DefaultLanguage = defaultLanguage.String
	video.DefaultAudioLanguage = defaultAudio.String
	video.Duration = duration.String
	video.Dimension = dimension.String
	video.Definition = definition.String
	video.Caption = caption.String
	video.LicensedContent = licensed != 0
	video.Projection = projection.String
	video.UploadStatus = uploadStatus.String
	video.PrivacyStatus = privacyStatus.String
	video.License = license.String
	video.Embeddable = embeddable != 0
	video.PublicStatsViewable = statsViewable != 0
	video.MadeForKids = madeForKids != 0
	video.EventDateLocal = eventDateLocal.String
	if publishedRaw.Valid {
		if published, err := parseTimeString(publishedRaw.String); err == nil {
			video.PublishedAt = published
		}
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		video.UpdatedAt = updated
	}

	if video.Tags, err = s.videoStrings(ctx, `SELECT tag FROM video_tags WHERE video_id = ? ORDER BY tag`, videoID); err != nil {
		return nil, err
	}
	if video.Topics, err = s.videoStrings(ctx, `SELECT category FROM video_topics WHERE video_id = ? ORDER BY category`, videoID); err != nil {
		return nil, err
	}

	thumbRows, err := s.db.QueryContext(ctx, `SELECT size, url, width, height FROM video_thumbnails WHERE video_id = ? ORDER BY size`, videoID)
	if err != nil {
		return nil, fmt.Errorf("get thumbnails: %w", err)
	}
	defer thumbRows.Close()
	for thumbRows.Next() {
		var thumb Thumbnail
		if err := thumbRows.Scan(&thumb.Size, &thumb.URL, &thumb.Width, &thumb.Height); err != nil {
			return nil, err
		}
		video.Thumbnails = append(video.Thumbnails, thumb)
	}
	if err := thumbRows.Err(); err != nil {
		return nil, err
	}

	locRows, err := s.db.QueryContext(ctx, `SELECT language, title, description FROM video_localizations WHERE video_id = ? ORDER BY language`, videoID)
	if err != nil {
		return nil, fmt.Errorf("get localizations: %w", err)
	}
	defer locRows.Close()
	for locRows.Next() {
		var loc Localization
		if err := locRows.Scan(&loc.Language, &loc.Title, &loc.Description); err != nil {
			return nil, err
		}
		video.Localizations = append(video.Localizations, loc)
	}
	if err := locRows.Err(); err != nil {
		return nil, err
	}

	return &video, nil
}

// CountVideos returns the number of videos with stored metadata.
func (s *Store) CountVideos(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM videos`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}
	return count, nil
}

func (s *Store) videoStrings(ctx context.Context, query, videoID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("query video strings: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}
