package analyze

import (
	"regexp"
	"strings"
)

var (
	blankLines     = regexp.MustCompile(`\n[ \t]*(\n[ \t]*)+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Normalize collapses blank-line sequences, then collapses every remaining
// run of whitespace to a single space and trims the ends. The result is a
// single-line string, which lets the chunker reconstruct it losslessly by
// re-joining sentences with single spaces. Pure function; empty input
// yields an empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = blankLines.ReplaceAllString(s, "\n")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
