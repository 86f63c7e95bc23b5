package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dugout/internal/dateparse"
	"dugout/internal/logging"
	"dugout/internal/services/scoreboard"
	"dugout/internal/store"
	"dugout/internal/teams"
)

// Scheduler fetches scheduled games for a YYYYMMDD date stub.
type Scheduler interface {
	GamesForDate(ctx context.Context, dateStub string) ([]scoreboard.Game, error)
}

// Store is the persistence surface the loader needs.
type Store interface {
	HasEventsForDate(ctx context.Context, dateKey string) (bool, error)
	InsertEvents(ctx context.Context, events []store.Event) (int64, error)
}

// Loader fetches and persists one date of schedule data at a time.
type Loader struct {
	scheduler Scheduler
	records   Store
	logger    *slog.Logger
	eastern   *time.Location
}

// NewLoader builds a schedule loader. Game dates are keyed in Eastern
// time, where every big-league game date is unambiguous.
func NewLoader(scheduler Scheduler, records Store, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("load eastern timezone: %w", err)
	}
	return &Loader{
		scheduler: scheduler,
		records:   records,
		logger:    logger.With(slog.String(logging.FieldComponent, "events")),
		eastern:   eastern,
	}, nil
}

// LoadDate fetches the schedule for a date unless it is already stored.
// The date may be given as YYYY-MM-DD, YYYY/MM/DD, or YYYYMMDD. Returns
// the number of newly stored events.
func (l *Loader) LoadDate(ctx context.Context, dateStub string) (int64, error) {
	stub, err := dateparse.NormalizeDateStub(dateStub)
	if err != nil {
		return 0, err
	}
	day, err := time.Parse("20060102", stub)
	if err != nil {
		return 0, fmt.Errorf("invalid date stub %q: %w", dateStub, err)
	}
	dateKey := day.Format("2006-01-02")
	logger := l.logger.With(logging.String(logging.FieldDate, dateKey))

	loaded, err := l.records.HasEventsForDate(ctx, dateKey)
	if err != nil {
		return 0, err
	}
	if loaded {
		logger.Debug("schedule already loaded")
		return 0, nil
	}

	games, err := l.scheduler.GamesForDate(ctx, stub)
	if err != nil {
		return 0, err
	}

	events := make([]store.Event, 0, len(games))
	for _, game := range games {
		// Season type 1 is preseason; those games never air as full
		// broadcasts on the channels this pipeline follows.
		if game.SeasonType <= 1 {
			continue
		}
		home, away := teams.Extract(fmt.Sprintf("%s @ %s", game.AwayTeam, game.HomeTeam))
		events = append(events, store.Event{
			EventID:            game.ID,
			Date:               game.Date,
			DateKey:            game.Date.In(l.eastern).Format("2006-01-02"),
			SeasonType:         game.SeasonType,
			ShortName:          game.ShortName,
			HomeTeam:           game.HomeTeam,
			AwayTeam:           game.AwayTeam,
			HomeTeamNormalized: home,
			AwayTeamNormalized: away,
		})
	}

	inserted, err := l.records.InsertEvents(ctx, events)
	if err != nil {
		return 0, err
	}
	logger.Info("schedule loaded", logging.Int(logging.FieldCount, int(inserted)))
	return inserted, nil
}
