package preflight

import (
	"context"
	"strings"

	"dugout/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for the given config. Directory and
// binary checks always run; the scoreboard check is skipped when no base URL
// is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("Audio directory", cfg.Paths.AudioDir))
	if cfg.Paths.LibraryDir != "" {
		results = append(results, CheckDirectoryAccess("Library directory", cfg.Paths.LibraryDir))
	}

	for _, status := range CheckSystemDeps(cfg) {
		result := Result{Name: status.Name, Passed: status.Available}
		if status.Available {
			result.Detail = status.Command
		} else {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}

	results = append(results, CheckYouTubeKey(cfg.API.YouTubeAPIKey))

	if strings.TrimSpace(cfg.API.ScoreboardBaseURL) != "" {
		results = append(results, CheckScoreboard(ctx, cfg.API.ScoreboardBaseURL))
	}

	return results
}

// CheckYouTubeKey verifies that an API key is configured. It deliberately
// avoids issuing a request so a preflight run never spends quota.
func CheckYouTubeKey(key string) Result {
	const name = "YouTube API key"
	if strings.TrimSpace(key) == "" {
		return Result{Name: name, Detail: "not set (metadata fetch will fail)"}
	}
	return Result{Name: name, Passed: true, Detail: "configured"}
}
