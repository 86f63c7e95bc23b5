package teams

import (
	"regexp"
	"strings"
)

// Unknown is returned when a side of the matchup cannot be resolved.
const Unknown = "unknown"

// Delimiters separating the away side from the home side, tried in order.
// The left side of the first matching delimiter is the away team.
var delimiters = []string{" at ", " @ ", " vs ", " vs. "}

var aliasPatterns = compileAliasPatterns()

func compileAliasPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(aliases))
	for alias := range aliases {
		patterns[alias] = regexp.MustCompile(`\b` + regexp.QuoteMeta(alias) + `\b`)
	}
	return patterns
}

// Extract resolves the home and away team codes from free text such as a
// video title. Text is matched case-insensitively against the alias table on
// either side of the first recognized delimiter. When a side matches several
// teams, a code already claimed by the other side is discarded before giving
// up. Either value may be Unknown.
func Extract(text string) (home, away string) {
	normalized := strings.ToLower(text)

	for _, delimiter := range delimiters {
		if !strings.Contains(normalized, delimiter) {
			continue
		}
		parts := strings.Split(normalized, delimiter)
		awayCandidates := findCandidates(parts[0])
		homeCandidates := findCandidates(parts[1])

		switch {
		case len(awayCandidates) == 1 && len(homeCandidates) == 1:
			return one(homeCandidates), one(awayCandidates)
		case len(awayCandidates) == 1 && len(homeCandidates) == 0:
			return Unknown, one(awayCandidates)
		case len(homeCandidates) == 1 && len(awayCandidates) == 0:
			return one(homeCandidates), Unknown
		case len(awayCandidates) == 1 && len(homeCandidates) > 1:
			knownAway := one(awayCandidates)
			delete(homeCandidates, knownAway)
			if len(homeCandidates) == 1 {
				return one(homeCandidates), knownAway
			}
			return Unknown, knownAway
		case len(homeCandidates) == 1 && len(awayCandidates) > 1:
			knownHome := one(homeCandidates)
			delete(awayCandidates, knownHome)
			if len(awayCandidates) == 1 {
				return knownHome, one(awayCandidates)
			}
			return knownHome, Unknown
		case len(awayCandidates) > 1 && len(homeCandidates) > 1:
			return Unknown, Unknown
		}
		// No candidates on one or both sides; try the next delimiter.
	}

	return Unknown, Unknown
}

// Code resolves a single team name or abbreviation to its canonical code.
func Code(name string) (string, bool) {
	code, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

func findCandidates(segment string) map[string]struct{} {
	candidates := make(map[string]struct{})
	for alias, pattern := range aliasPatterns {
		if pattern.MatchString(segment) {
			candidates[aliases[alias]] = struct{}{}
		}
	}
	return candidates
}

func one(set map[string]struct{}) string {
	for code := range set {
		return code
	}
	return Unknown
}
