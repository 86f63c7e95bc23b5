package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var normalizer = transform.Chain(
	norm.NFKC,
	runes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}),
	runes.Remove(runes.In(unicode.Cf)),
)

// Normalize flattens unicode noise in free text: compatibility forms are
// folded (full-width punctuation, ligatures), all whitespace becomes a plain
// space, and invisible format characters are dropped. Runs of spaces are
// collapsed and the result is trimmed.
func Normalize(text string) string {
	out, _, err := transform.String(normalizer, text)
	if err != nil {
		out = text
	}
	return strings.Join(strings.Fields(out), " ")
}
