package extract

import (
	"regexp"
	"strings"
)

var (
	tabRunRe        = regexp.MustCompile(`\t+`)
	spaceRunRe      = regexp.MustCompile(` {2,}`)
	underscoreRunRe = regexp.MustCompile(`_+`)
)

// normalize flattens the noise PDF text extraction leaves behind: tab
// runs and multi-space runs collapse to a single space, CRLF becomes LF
// and underscore runs (form fill-in lines) become spaces. Returns the
// normalized text plus its trimmed non-empty lines.
func normalize(text string) (string, []string) {
	text = tabRunRe.ReplaceAllString(text, " ")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = underscoreRunRe.ReplaceAllString(text, " ")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return text, lines
}

// cleanText collapses all whitespace in a narrative fragment to single
// spaces and drops fill-in underscores.
func cleanText(s string) string {
	s = underscoreRunRe.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	return s
}
