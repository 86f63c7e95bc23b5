package store

import (
	"context"
	"fmt"
)

type migration struct {
	version string
	sql     string
}

// Migrations run in order inside one transaction each startup; applied
// versions are recorded in schema_migrations and skipped on later runs.
var migrations = []migration{
	{
		version: "0001_initial",
		sql: `
CREATE TABLE IF NOT EXISTS videos_to_be_processed (
    video_id            TEXT PRIMARY KEY,
    has_failed_metadata INTEGER NOT NULL DEFAULT 0,
    created_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS videos (
    video_id               TEXT PRIMARY KEY,
    kind                   TEXT,
    etag                   TEXT,
    title                  TEXT NOT NULL DEFAULT '',
    description            TEXT NOT NULL DEFAULT '',
    published_at           TEXT,
    channel_id             TEXT,
    channel_title          TEXT,
    category_id            TEXT,
    live_broadcast_content TEXT,
    default_language       TEXT,
    default_audio_language TEXT,
    duration               TEXT,
    duration_seconds       INTEGER NOT NULL DEFAULT 0,
    dimension              TEXT,
    definition             TEXT,
    caption                TEXT,
    licensed_content       INTEGER NOT NULL DEFAULT 0,
    projection             TEXT,
    upload_status          TEXT,
    privacy_status         TEXT,
    license                TEXT,
    embeddable             INTEGER NOT NULL DEFAULT 0,
    public_stats_viewable  INTEGER NOT NULL DEFAULT 0,
    made_for_kids          INTEGER NOT NULL DEFAULT 0,
    view_count             INTEGER NOT NULL DEFAULT 0,
    like_count             INTEGER NOT NULL DEFAULT 0,
    dislike_count          INTEGER NOT NULL DEFAULT 0,
    favorite_count         INTEGER NOT NULL DEFAULT 0,
    comment_count          INTEGER NOT NULL DEFAULT 0,
    event_date_local       TEXT,
    updated_at             TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS video_tags (
    video_id TEXT NOT NULL,
    tag      TEXT NOT NULL,
    PRIMARY KEY (video_id, tag)
);

CREATE TABLE IF NOT EXISTS video_thumbnails (
    video_id TEXT NOT NULL,
    size     TEXT NOT NULL,
    url      TEXT NOT NULL DEFAULT '',
    width    INTEGER NOT NULL DEFAULT 0,
    height   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (video_id, size)
);

CREATE TABLE IF NOT EXISTS video_localizations (
    video_id    TEXT NOT NULL,
    language    TEXT NOT NULL,
    title       TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (video_id, language)
);

CREATE TABLE IF NOT EXISTS video_topics (
    video_id TEXT NOT NULL,
    category TEXT NOT NULL,
    PRIMARY KEY (video_id, category)
);

CREATE TABLE IF NOT EXISTS events (
    event_id             TEXT PRIMARY KEY,
    date_utc             TEXT NOT NULL,
    date_key             TEXT NOT NULL,
    season_type          INTEGER NOT NULL DEFAULT 0,
    short_name           TEXT NOT NULL DEFAULT '',
    home_team            TEXT NOT NULL DEFAULT '',
    away_team            TEXT NOT NULL DEFAULT '',
    home_team_normalized TEXT NOT NULL DEFAULT '',
    away_team_normalized TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_events_date_key ON events(date_key);

CREATE TABLE IF NOT EXISTS video_files (
    video_id    TEXT NOT NULL,
    a_format_id TEXT NOT NULL,
    file_size   INTEGER NOT NULL DEFAULT 0,
    local_path  TEXT NOT NULL,
    created_at  TEXT NOT NULL,
    PRIMARY KEY (video_id, a_format_id)
);
`,
	},
}

func (s *Store) applyMigrations(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", m.version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}
