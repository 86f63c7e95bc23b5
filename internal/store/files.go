package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// VideoFile records one downloaded audio file for a video.
type VideoFile struct {
	VideoID   string
	AFormatID string
	FileSize  int64
	LocalPath string
	CreatedAt time.Time
}

// Tag substrings that mark a video as a candidate broadcast. A video
// qualifies when any tag matches the allow list and none match "ncaa".
var candidateTagTerms = []string{
	"major league", "mlb", "baseball", "alcs", "nlcs", "world series",
}

// Title substrings that exclude a video from download candidacy. These
// catch drafts, other sports, highlight shows, and similar channel filler.
var excludedTitleTerms = []string{
	"draft", "ncaa", "mls", "nfl", "nba", "college", "cws", "topgolf",
	"futures", "all star game", "all-star game", "wbc", "world baseball",
	"derby", "softball", "mlb the show", "interview", "makeup",
	"ballpark zen", "check out", "breaks down",
}

// InsertVideoFile records a downloaded file, skipping rows already present
// for the same video and audio format.
func (s *Store) InsertVideoFile(ctx context.Context, file VideoFile) (bool, error) {
	if file.VideoID == "" || file.AFormatID == "" {
		return false, errors.New("video file is missing identifiers")
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO video_files (video_id, a_format_id, file_size, local_path, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT (video_id, a_format_id) DO NOTHING`,
		file.VideoID,
		file.AFormatID,
		file.FileSize,
		file.LocalPath,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, fmt.Errorf("insert video file: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// GetVideoFile fetches the stored file record for a video and audio format.
// Returns nil when absent.
func (s *Store) GetVideoFile(ctx context.Context, videoID, aFormatID string) (*VideoFile, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT video_id, a_format_id, file_size, local_path, created_at
         FROM video_files WHERE video_id = ? AND a_format_id = ?`,
		videoID, aFormatID,
	)
	var (
		file       VideoFile
		createdRaw string
	)
	err := row.Scan(&file.VideoID, &file.AFormatID, &file.FileSize, &file.LocalPath, &createdRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video file: %w", err)
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		file.CreatedAt = created
	}
	return &file, nil
}

// DownloadCandidates selects videos worth downloading: tagged as a
// big-league broadcast, not excluded by title, at least minDuration long,
// and not yet downloaded. At most limit IDs are returned.
func (s *Store) DownloadCandidates(ctx context.Context, minDuration time.Duration, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `
        SELECT v.video_id
        FROM videos v
        LEFT JOIN video_files vf ON v.video_id = vf.video_id
        WHERE v.video_id IN (
            SELECT DISTINCT video_id
            FROM video_tags
            WHERE (` + likeAnyClause("lower(tag)", len(candidateTagTerms)) + `)
              AND lower(tag) NOT LIKE ?
        )`
	args := make([]any, 0, len(candidateTagTerms)+len(excludedTitleTerms)+3)
	for _, term := range candidateTagTerms {
		args = append(args, "%"+term+"%")
	}
	args = append(args, "%ncaa%")

	for range excludedTitleTerms {
		query += `
          AND lower(v.title) NOT LIKE ?`
	}
	for _, term := range excludedTitleTerms {
		args = append(args, "%"+term+"%")
	}

	query += `
          AND v.duration_seconds >= ?
          AND vf.video_id IS NULL
        LIMIT ?`
	args = append(args, int64(minDuration.Seconds()), limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select download candidates: %w", err)
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

// CountFiles returns the number of recorded downloads.
func (s *Store) CountFiles(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM video_files`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return count, nil
}

// Summary aggregates table counts for status output.
type Summary struct {
	Backlog     int
	Quarantined int
	Videos      int
	Events      int
	Files       int
}

// Stats returns row counts across the pipeline tables.
func (s *Store) Stats(ctx context.Context) (Summary, error) {
	var (
		summary Summary
		err     error
	)
	if summary.Backlog, err = s.CountBacklog(ctx); err != nil {
		return summary, err
	}
	if summary.Quarantined, err = s.CountQuarantined(ctx); err != nil {
		return summary, err
	}
	if summary.Videos, err = s.CountVideos(ctx); err != nil {
		return summary, err
	}
	if summary.Events, err = s.CountEvents(ctx); err != nil {
		return summary, err
	}
	if summary.Files, err = s.CountFiles(ctx); err != nil {
		return summary, err
	}
	return summary, nil
}

func likeAnyClause(column string, count int) string {
	clause := ""
	for i := 0; i < count; i++ {
		if i > 0 {
			clause += " OR "
		}
		clause += column + " LIKE ?"
	}
	return clause
}
