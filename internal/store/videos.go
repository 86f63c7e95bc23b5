package store

import (
	"context"
	"fmt"
	"time"
)

// UpsertVideoIDs adds discovered video IDs to the processing backlog.
// Already-known IDs are skipped; the return value counts new rows.
func (s *Store) UpsertVideoIDs(ctx context.Context, videoIDs []string) (int64, error) {
	if len(videoIDs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO videos_to_be_processed (video_id, created_at) VALUES (?, ?)
         ON CONFLICT (video_id) DO NOTHING`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	var inserted int64
	for _, videoID := range videoIDs {
		if videoID == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, videoID, timestamp)
		if err != nil {
			return 0, fmt.Errorf("insert video id %s: %w", videoID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		inserted += affected
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}
	return inserted, nil
}

// CountBacklog returns the number of videos still awaiting metadata,
// excluding quarantined IDs.
func (s *Store) CountBacklog(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM videos_to_be_processed WHERE has_failed_metadata = 0`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count backlog: %w", err)
	}
	return count, nil
}

// NextMetadataBatch selects up to limit backlog IDs in random order so
// concurrent retrieve workers rarely collide on the same batch. IDs in
// exclude are skipped.
func (s *Store) NextMetadataBatch(ctx context.Context, limit int, exclude []string) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `SELECT video_id FROM videos_to_be_processed WHERE has_failed_metadata = 0`
	args := make([]any, 0, len(exclude)+1)
	if len(exclude) > 0 {
		query += ` AND video_id NOT IN (` + makePlaceholders(len(exclude)) + `)`
		for _, id := range exclude {
			args = append(args, id)
		}
	}
	query += ` ORDER BY RANDOM() LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select metadata batch: %w", err)
	}
	defer rows.Close()

	var videoIDs []string
	for rows.Next() {
		var videoID string
		if err := rows.Scan(&videoID); err != nil {
			return nil, err
		}
		videoIDs = append(videoIDs, videoID)
	}
	return videoIDs, rows.Err()
}

// QuarantineVideoIDs flags IDs the metadata API refused to return, so later
// batches skip them instead of retrying forever.
func (s *Store) QuarantineVideoIDs(ctx context.Context, videoIDs []string) (int64, error) {
	if len(videoIDs) == 0 {
		return 0, nil
	}
	args := make([]any, len(videoIDs))
	for i, id := range videoIDs {
		args[i] = id
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE videos_to_be_processed SET has_failed_metadata = 1
         WHERE video_id IN (`+makePlaceholders(len(videoIDs))+`)`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("quarantine video ids: %w", err)
	}
	return res.RowsAffected()
}

// CountQuarantined returns the number of quarantined backlog IDs.
func (s *Store) CountQuarantined(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM videos_to_be_processed WHERE has_failed_metadata = 1`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count quarantined: %w", err)
	}
	return count, nil
}
