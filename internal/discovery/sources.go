package discovery

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Input names the channels, playlists, and videos to discover. ID lists
// accept comma or whitespace separated values; files hold one ID per line
// (.txt) or one per row in the first column (.csv).
type Input struct {
	Channels      []string
	ChannelFiles  []string
	Playlists     []string
	PlaylistFiles []string
	Videos        []string
	VideoFiles    []string
}

// SplitIDs breaks a comma or whitespace separated argument into IDs.
func SplitIDs(raw string) []string {
	return strings.Fields(strings.ReplaceAll(raw, ",", " "))
}

// ReadIDFile loads IDs from a .txt or .csv file.
func ReadIDFile(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read id file: %w", err)
		}
		var ids []string
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				ids = append(ids, line)
			}
		}
		return ids, nil
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open id file: %w", err)
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("parse csv id file: %w", err)
		}
		var ids []string
		for _, row := range rows {
			if len(row) == 0 {
				continue
			}
			id := strings.TrimSpace(row[0])
			if id != "" {
				ids = append(ids, id)
			}
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("unsupported id file %s: use .txt or .csv", filepath.Base(path))
	}
}

// ExpandIDs merges literal IDs with IDs read from files.
func ExpandIDs(ids, files []string) ([]string, error) {
	merged := make([]string, 0, len(ids))
	for _, raw := range ids {
		merged = append(merged, SplitIDs(raw)...)
	}
	for _, file := range files {
		fromFile, err := ReadIDFile(file)
		if err != nil {
			return nil, err
		}
		merged = append(merged, fromFile...)
	}
	return merged, nil
}
