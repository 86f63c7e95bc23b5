package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Event is one scheduled game from the schedule API.
type Event struct {
	EventID string
	Date    time.Time
	// DateKey is the game date in the Eastern timezone, YYYY-MM-DD.
	DateKey            string
	SeasonType         int
	ShortName          string
	HomeTeam           string
	AwayTeam           string
	HomeTeamNormalized string
	AwayTeamNormalized string
}

// InsertEvents stores schedule events, skipping IDs already present.
func (s *Store) InsertEvents(ctx context.Context, events []Event) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin events tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO events (
            event_id, date_utc, date_key, season_type, short_name,
            home_team, away_team, home_team_normalized, away_team_normalized
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (event_id) DO NOTHING`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare events insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, event := range events {
		if event.EventID == "" {
			continue
		}
		res, err := stmt.ExecContext(
			ctx,
			event.EventID,
			event.Date.UTC().Format(time.RFC3339Nano),
			event.DateKey,
			event.SeasonType,
			event.ShortName,
			event.HomeTeam,
			event.AwayTeam,
			event.HomeTeamNormalized,
			event.AwayTeamNormalized,
		)
		if err != nil {
			return 0, fmt.Errorf("insert event %s: %w", event.EventID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		inserted += affected
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit events: %w", err)
	}
	return inserted, nil
}

// HasEventsForDate reports whether any events exist for an Eastern game date.
func (s *Store) HasEventsForDate(ctx context.Context, dateKey string) (bool, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM events WHERE date_key = ?`, dateKey)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("count events for date: %w", err)
	}
	return count > 0, nil
}

// OpposingTeam resolves the missing side of a matchup from the schedule.
// When homeUnknown is true the known code is the away team and the home
// code is returned; otherwise the reverse. Returns empty when no single
// event matches.
func (s *Store) OpposingTeam(ctx context.Context, dateKey, knownTeam string, homeUnknown bool) (string, error) {
	wantColumn, knownColumn := "home_team_normalized", "away_team_normalized"
	if !homeUnknown {
		wantColumn, knownColumn = "away_team_normalized", "home_team_normalized"
	}

	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+wantColumn+` FROM events WHERE date_key = ? AND `+knownColumn+` = ?`,
		dateKey, knownTeam,
	)
	var team string
	err := row.Scan(&team)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup opposing team: %w", err)
	}
	return team, nil
}

// EventID returns the schedule event for a matchup on an Eastern game date.
// At least one team code must be known; returns empty when no event matches.
func (s *Store) EventID(ctx context.Context, dateKey, homeTeam, awayTeam string) (string, error) {
	var row *sql.Row
	switch {
	case homeTeam != "" && awayTeam != "":
		row = s.db.QueryRowContext(
			ctx,
			`SELECT event_id FROM events
             WHERE date_key = ? AND home_team_normalized = ? AND away_team_normalized = ?`,
			dateKey, homeTeam, awayTeam,
		)
	case homeTeam != "":
		row = s.db.QueryRowContext(
			ctx,
			`SELECT event_id FROM events WHERE date_key = ? AND home_team_normalized = ?`,
			dateKey, homeTeam,
		)
	case awayTeam != "":
		row = s.db.QueryRowContext(
			ctx,
			`SELECT event_id FROM events WHERE date_key = ? AND away_team_normalized = ?`,
			dateKey, awayTeam,
		)
	default:
		return "", nil
	}

	var eventID string
	err := row.Scan(&eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup event id: %w", err)
	}
	return eventID, nil
}

// CountEvents returns the number of stored schedule events.
func (s *Store) CountEvents(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM events`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}
