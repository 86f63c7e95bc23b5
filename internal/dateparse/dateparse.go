// Package dateparse extracts game dates from video titles and descriptions.
//
// Uploaders write dates in wildly inconsistent forms; extraction walks a
// fixed list of patterns and accepts the first candidate that parses as a
// real calendar date.
package dateparse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// pattern pairs a regular expression locating a date-shaped substring with
// the layouts tried against it. Layout order matters for ambiguous shapes:
// month-first is tried before day-first, so "07.04.2021" reads as July 4th
// while "23.04.2021" falls through to April 23rd.
type pattern struct {
	re      *regexp.Regexp
	layouts []string
}

var patterns = []pattern{
	{regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{4}`), []string{"1.2.2006", "2.1.2006"}},
	{regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{2}`), []string{"1.2.06"}},
	{regexp.MustCompile(`\d{4}/\d{1,2}/\d{1,2}`), []string{"2006/1/2"}},
	{regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2}`), []string{"1/2/06"}},
	{regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`), []string{"2006-1-2"}},
	{regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{2}`), []string{"1-2-06", "2-1-06"}},
	{
		regexp.MustCompile(`(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}`),
		[]string{"January 2, 2006"},
	},
	{
		regexp.MustCompile(`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\s+\d{1,2},\s+\d{4}`),
		[]string{"Jan 2, 2006"},
	},
}

// Extract finds the first parseable date in text. Only the first match of
// each pattern is considered; a match that fails calendar validation moves
// on to the next pattern rather than scanning further into the text.
func Extract(text string) (time.Time, bool) {
	for _, p := range patterns {
		candidate := p.re.FindString(text)
		if candidate == "" {
			continue
		}
		for _, layout := range p.layouts {
			if parsed, err := time.Parse(layout, candidate); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// NormalizeDateStub converts a date stub in YYYY-MM-DD, YYYY/MM/DD, or
// YYYYMMDD form to the compact YYYYMMDD form used in schedule lookups.
func NormalizeDateStub(stub string) (string, error) {
	var layout string
	switch {
	case strings.Contains(stub, "-"):
		layout = "2006-1-2"
	case strings.Contains(stub, "/"):
		layout = "2006/1/2"
	default:
		layout = "20060102"
	}
	parsed, err := time.Parse(layout, stub)
	if err != nil {
		return "", fmt.Errorf("normalize date stub %q: %w", stub, err)
	}
	return parsed.Format("20060102"), nil
}
