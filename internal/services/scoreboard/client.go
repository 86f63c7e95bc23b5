package scoreboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dugout/internal/config"
	"dugout/internal/services"
)

// Game is one scheduled event returned by the scoreboard API.
type Game struct {
	ID         string
	Date       time.Time
	SeasonType int
	ShortName  string
	HomeTeam   string
	AwayTeam   string
}

// Client queries the scoreboard endpoint.
type Client struct {
	baseURL string
	limit   int
	http    *http.Client
}

// New constructs a scoreboard client from configuration.
func New(cfg *config.Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.API.ScoreboardBaseURL), "/")
	if base == "" {
		return nil, services.Wrap(services.ErrConfiguration, "scoreboard", "new", "scoreboard base URL is not set", nil)
	}
	timeout := time.Duration(cfg.API.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limit := cfg.Filters.SelectionLimit
	if limit <= 0 {
		limit = 1000
	}
	return &Client{
		baseURL: base,
		limit:   limit,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type scoreboardResponse struct {
	Events []struct {
		ID        string `json:"id"`
		Date      string `json:"date"`
		ShortName string `json:"shortName"`
		Season    struct {
			Type int `json:"type"`
		} `json:"season"`
		Competitions []struct {
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Team     struct {
					Abbreviation string `json:"abbreviation"`
				} `json:"team"`
			} `json:"competitors"`
		} `json:"competitions"`
	} `json:"events"`
}

// The API truncates seconds from game times.
const eventDateLayout = "2006-01-02T15:04Z"

// GamesForDate fetches every scheduled game for a date stub in YYYYMMDD
// form. Events missing an ID, date, or short name are skipped.
func (c *Client) GamesForDate(ctx context.Context, dateStub string) ([]Game, error) {
	endpoint := fmt.Sprintf("%s?limit=%d&dates=%s", c.baseURL, c.limit, url.QueryEscape(dateStub))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build scoreboard request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "scoreboard", "fetch", "scoreboard request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, services.Wrap(
			services.ErrTransient, "scoreboard", "fetch",
			fmt.Sprintf("scoreboard returned status %d", resp.StatusCode), nil,
		)
	}

	var payload scoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrTransient, "scoreboard", "fetch", "decode scoreboard response", err)
	}

	games := make([]Game, 0, len(payload.Events))
	for _, event := range payload.Events {
		if event.ID == "" || event.Date == "" || event.ShortName == "" {
			continue
		}
		date, err := time.Parse(eventDateLayout, event.Date)
		if err != nil {
			continue
		}
		game := Game{
			ID:         event.ID,
			Date:       date.UTC(),
			SeasonType: event.Season.Type,
			ShortName:  event.ShortName,
		}
		if len(event.Competitions) > 0 {
			for _, competitor := range event.Competitions[0].Competitors {
				switch competitor.HomeAway {
				case "home":
					game.HomeTeam = competitor.Team.Abbreviation
				case "away":
					game.AwayTeam = competitor.Team.Abbreviation
				}
			}
		}
		games = append(games, game)
	}
	return games, nil
}
