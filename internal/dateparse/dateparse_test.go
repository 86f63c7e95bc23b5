package dateparse_test

import (
	"testing"
	"time"

	"dugout/internal/dateparse"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		text string
		want time.Time
	}{
		{"dotted month first", "Red Sox at Yankees 07.04.2021 Full Game", date(2021, time.July, 4)},
		{"dotted day first fallback", "Highlights 23.04.2021", date(2021, time.April, 23)},
		{"dotted two digit year", "Classic 9.28.11 walk-off", date(2011, time.September, 28)},
		{"slash year first", "Archive 2019/08/14", date(2019, time.August, 14)},
		{"slash two digit year", "Replay 6/3/18", date(2018, time.June, 3)},
		{"iso dashes", "uploaded 2020-09-01", date(2020, time.September, 1)},
		{"dashed two digit year", "game 10-02-16 radio", date(2016, time.October, 2)},
		{"full month name", "Played on October 27, 2004 at Busch", date(2004, time.October, 27)},
		{"abbreviated month name", "Game of Sep 5, 1998", date(1998, time.September, 5)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := dateparse.Extract(tc.text)
			if !ok {
				t.Fatalf("Extract(%q) found no date", tc.text)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestExtractNoDate(t *testing.T) {
	for _, text := range []string{
		"",
		"Yankees at Red Sox full game",
		"inning 7 pitch 102",
		"13.13.2021 is not a date",
	} {
		if got, ok := dateparse.Extract(text); ok {
			t.Errorf("Extract(%q) = %v, want no match", text, got)
		}
	}
}

func TestExtractPrefersEarlierPatterns(t *testing.T) {
	// A four-digit-year dotted date wins over a later ISO date in the text.
	got, ok := dateparse.Extract("04.05.2021 rebroadcast of 1999-10-13 original")
	if !ok || !got.Equal(date(2021, time.April, 5)) {
		t.Fatalf("Extract = %v, %v", got, ok)
	}
}

func TestNormalizeDateStub(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2021-07-04", "20210704"},
		{"2021/7/4", "20210704"},
		{"20210704", "20210704"},
	}
	for _, tc := range cases {
		got, err := dateparse.NormalizeDateStub(tc.in)
		if err != nil {
			t.Fatalf("NormalizeDateStub(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("NormalizeDateStub(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := dateparse.NormalizeDateStub("July 4th"); err == nil {
		t.Fatal("NormalizeDateStub accepted garbage input")
	}
}
