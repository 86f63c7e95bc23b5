package download

import (
	"fmt"
	"strings"
)

// FileInfo carries the identifiers embedded in a filed asset's name.
type FileInfo struct {
	VideoID   string
	AFormatID string
	EventID   string
}

// ExtractFileInfo recovers the embedded identifiers from a filename.
// Tokens look like {yt-VIDEOID}, {fid-FORMATID}, and {e-EVENTID}; order
// and surrounding text do not matter.
func ExtractFileInfo(filename string) FileInfo {
	var info FileInfo
	parts := strings.Split(filename, "{")
	for _, part := range parts[1:] {
		end := strings.Index(part, "}")
		if end < 0 {
			continue
		}
		token := part[:end]
		switch {
		case strings.HasPrefix(token, "yt-"):
			info.VideoID = strings.TrimPrefix(token, "yt-")
		case strings.HasPrefix(token, "fid-"):
			info.AFormatID = strings.TrimPrefix(token, "fid-")
		case strings.HasPrefix(token, "e-"):
			info.EventID = strings.TrimPrefix(token, "e-")
		}
	}
	return info
}

// FormatDuration renders whole seconds as an hour/minute/second triple,
// e.g. "2H 55M 3S".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dH %dM %dS", seconds/3600, seconds%3600/60, seconds%60)
}
