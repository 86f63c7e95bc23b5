package ytdlp

import "testing"

func TestParseProgress(t *testing.T) {
	cases := []struct {
		line    string
		percent string
		speed   string
		ok      bool
	}{
		{"[download]  42.5% of 50.00MiB at 1.23MiB/s ETA 00:30", "42.5", "1.23MiB/s", true},
		{"[download] 100% of 50.00MiB in 00:41", "100", "", true},
		{"[download] Destination: staging/abc123.m4a", "", "", false},
		{"[info] abc123: Downloading subtitles", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		percent, speed, ok := parseProgress(tc.line)
		if ok != tc.ok || percent != tc.percent || speed != tc.speed {
			t.Errorf("parseProgress(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.line, percent, speed, ok, tc.percent, tc.speed, tc.ok)
		}
	}
}
