package download

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strconv"

	"dugout/internal/dateparse"
	"dugout/internal/logging"
	"dugout/internal/services/ytdlp"
	"dugout/internal/teams"
	"dugout/internal/textutil"
)

// unknownDate partitions files whose game date could not be determined.
const unknownDate = "unknown_date"

// unknownTeamsDir partitions files whose matchup could not be resolved.
const unknownTeamsDir = "unknown_teams"

// MatchupStore resolves matchups against the stored schedule.
type MatchupStore interface {
	OpposingTeam(ctx context.Context, dateKey, knownTeam string, homeUnknown bool) (string, error)
	EventID(ctx context.Context, dateKey, homeTeam, awayTeam string) (string, error)
}

// ScheduleLoader fills the schedule for a date on demand.
type ScheduleLoader interface {
	LoadDate(ctx context.Context, dateStub string) (int64, error)
}

// Namer derives the destination directory and base filename for a
// downloaded asset.
type Namer struct {
	records  MatchupStore
	schedule ScheduleLoader
	logger   *slog.Logger
}

// NewNamer builds a namer. The schedule loader may be nil, in which case
// matchup lookups run against whatever schedule data is already stored.
func NewNamer(records MatchupStore, schedule ScheduleLoader, logger *slog.Logger) *Namer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Namer{
		records:  records,
		schedule: schedule,
		logger:   logger.With(slog.String(logging.FieldComponent, "namer")),
	}
}

// Destination returns the library-relative directory and the base
// filename (no extension) for a downloaded video.
//
// The date comes from the title, then the description; without one the
// file lands under unknown_date. Teams resolve the same way, with the
// stored schedule filling in a single missing side. Files with an
// unresolved matchup are partitioned under unknown_teams so they can be
// refiled once identified.
func (n *Namer) Destination(ctx context.Context, info *ytdlp.Info) (string, string, error) {
	if info == nil || info.ID == "" {
		return "", "", fmt.Errorf("download info is missing an id")
	}

	// Uploader text carries non-breaking spaces, zero-width characters,
	// and compatibility forms; fold them before matching.
	title := textutil.Normalize(info.Title)
	description := textutil.Normalize(info.Description)

	pathDate := unknownDate
	filenameDate := unknownDate
	dateKey := ""
	if date, ok := dateparse.Extract(title); ok {
		dateKey = date.Format("2006-01-02")
	} else if date, ok := dateparse.Extract(description); ok {
		dateKey = date.Format("2006-01-02")
	}
	if dateKey != "" {
		pathDate = dateKey[:4] + "/" + dateKey[5:7] + "/" + dateKey[8:]
		filenameDate = dateKey[:4] + "." + dateKey[5:7] + "." + dateKey[8:]
		if n.schedule != nil {
			if _, err := n.schedule.LoadDate(ctx, dateKey); err != nil {
				n.logger.Warn("schedule load failed",
					logging.String(logging.FieldDate, dateKey), logging.Error(err))
			}
		}
	}

	home, away := teams.Extract(title)
	if home == teams.Unknown && away == teams.Unknown {
		home, away = teams.Extract(description)
	}
	if dateKey != "" {
		if home == teams.Unknown && away != teams.Unknown {
			if found, err := n.records.OpposingTeam(ctx, dateKey, away, true); err != nil {
				return "", "", err
			} else if found != "" {
				home = found
			}
		} else if away == teams.Unknown && home != teams.Unknown {
			if found, err := n.records.OpposingTeam(ctx, dateKey, home, false); err != nil {
				return "", "", err
			} else if found != "" {
				away = found
			}
		}
	}

	eventToken := ""
	if dateKey != "" {
		lookupHome, lookupAway := home, away
		if lookupHome == teams.Unknown {
			lookupHome = ""
		}
		if lookupAway == teams.Unknown {
			lookupAway = ""
		}
		eventID, err := n.records.EventID(ctx, dateKey, lookupHome, lookupAway)
		if err != nil {
			return "", "", err
		}
		if eventID != "" {
			eventToken = fmt.Sprintf("{e-%s}", eventID)
		}
	}

	dir := pathDate
	if home == teams.Unknown || away == teams.Unknown {
		dir = path.Join(unknownTeamsDir, pathDate)
	}

	dynamicRange := info.DynamicRange
	if dynamicRange == "" || dynamicRange == "None" {
		dynamicRange = "No DRC"
	}

	base := fmt.Sprintf("%s at %s - %s - [%s][%s][%d][%s][%s][%s][%s]{fid-%s}%s{yt-%s}",
		away, home, filenameDate,
		info.Language,
		FormatDuration(int64(info.Duration)),
		info.ASR,
		dynamicRange,
		info.ACodec,
		strconv.FormatFloat(info.Quality, 'f', -1, 64),
		info.FormatNote,
		info.FormatID,
		eventToken,
		info.ID,
	)
	return dir, textutil.SanitizeFileName(base), nil
}
