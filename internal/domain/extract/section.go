package extract

import (
	"strings"
	"unicode/utf8"
)

// sectionAfterStart is how many characters past the start marker the
// end-marker scan begins, so a compound heading cannot terminate its own
// section.
const sectionAfterStart = 10

// extractSection cuts the slice of text between the earliest start marker
// and the nearest end marker found after it. Matching is case-insensitive.
// The returned slice includes the start marker itself, so line parsers can
// rely on their skip rules to drop the heading. Returns "" and false when
// no start marker occurs.
func extractSection(text string, startMarkers, endMarkers []string) (string, bool) {
	lower := strings.ToLower(text)

	start := -1
	for _, marker := range startMarkers {
		if idx := strings.Index(lower, strings.ToLower(marker)); idx >= 0 {
			if start == -1 || idx < start {
				start = idx
			}
		}
	}
	if start == -1 {
		return "", false
	}

	end := len(text)
	from := start
	for i := 0; i < sectionAfterStart && from < len(lower); i++ {
		_, size := utf8.DecodeRuneInString(lower[from:])
		from += size
	}
	for _, marker := range endMarkers {
		if idx := strings.Index(lower[from:], strings.ToLower(marker)); idx >= 0 {
			if from+idx < end {
				end = from + idx
			}
		}
	}
	return text[start:end], true
}
