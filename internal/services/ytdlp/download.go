package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dugout/internal/logging"
	"dugout/internal/services"
)

// audioFormatChain prefers DRC-free AAC audio in an m4a container, then
// relaxes one constraint at a time down to whatever best audio exists.
const audioFormatChain = "bestaudio[ext=m4a][acodec^=mp4a][format_note!*=DRC]" +
	"/bestaudio[ext=m4a][acodec^=mp4a]" +
	"/bestaudio[acodec^=mp4a][format_note!*=DRC]" +
	"/bestaudio[format_note!*=DRC]" +
	"/bestaudio"

// Info carries the fields of the yt-dlp metadata sidecar used for filing.
type Info struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	FormatID     string  `json:"format_id"`
	FormatNote   string  `json:"format_note"`
	ACodec       string  `json:"acodec"`
	Language     string  `json:"language"`
	DynamicRange string  `json:"dynamic_range"`
	Duration     float64 `json:"duration"`
	ASR          int64   `json:"asr"`
	Quality      float64 `json:"quality"`
	Filesize     int64   `json:"filesize"`
}

// DownloadResult reports what a download produced in its staging directory.
type DownloadResult struct {
	StagingDir string
	Files      []string
	Info       *Info
}

// DownloadAudio fetches the best matching audio stream for a video into
// stagingDir, along with the metadata sidecar and automatic subtitles.
// Output files are named after the video ID.
func (c *Client) DownloadAudio(ctx context.Context, videoID, stagingDir string) (*DownloadResult, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, services.Wrap(services.ErrValidation, "ytdlp", "download", "video ID required", nil)
	}
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{
		"--format", audioFormatChain,
		"--format-sort", "abr",
		"--newline",
		"--progress",
		"--output", filepath.Join(stagingDir, "%(id)s.%(ext)s"),
	}
	if c.writeInfoJSON {
		args = append(args, "--write-info-json")
	}
	if len(c.subtitleLangs) > 0 {
		args = append(args,
			"--write-auto-subs",
			"--sub-langs", strings.Join(c.subtitleLangs, ","),
			"--sub-format", c.subtitleFormat,
		)
	}
	args = append(args, WatchURL(videoID))

	onStdout := func(line string) {
		percent, speed, ok := parseProgress(line)
		if !ok {
			return
		}
		c.logger.Debug("download progress",
			logging.String(logging.FieldVideoID, videoID),
			logging.String("percent", percent),
			logging.String("speed", speed))
	}
	if err := c.exec.Run(runCtx, c.binary, args, onStdout); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "download", "audio download failed", err)
	}

	result := &DownloadResult{StagingDir: stagingDir}
	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		return nil, fmt.Errorf("inspect staging dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), videoID) {
			continue
		}
		result.Files = append(result.Files, filepath.Join(stagingDir, entry.Name()))
	}
	if len(result.Files) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "download", "no output files produced", nil)
	}

	infoPath := filepath.Join(stagingDir, videoID+".info.json")
	if info, err := readInfo(infoPath); err == nil {
		result.Info = info
	} else if c.writeInfoJSON {
		return nil, err
	}
	return result, nil
}

// parseProgress pulls the percent and transfer speed out of a --newline
// progress line such as
//
//	[download]  42.5% of 50.00MiB at 1.23MiB/s ETA 00:30
//
// Non-progress lines report ok=false.
func parseProgress(line string) (percent, speed string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "[download]" || !strings.HasSuffix(fields[1], "%") {
		return "", "", false
	}
	percent = strings.TrimSuffix(fields[1], "%")
	for i := 2; i < len(fields)-1; i++ {
		if fields[i] == "at" {
			speed = fields[i+1]
			break
		}
	}
	return percent, speed, true
}

func readInfo(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read info sidecar: %w", err)
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decode info sidecar: %w", err)
	}
	return &info, nil
}
