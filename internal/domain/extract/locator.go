package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// findByPatterns runs a pattern cascade over the text and returns the
// first capture group of the first pattern that yields a plausible value
// (non-empty and under 100 characters). Ordering is the contract: callers
// arrange patterns from most to least specific and the first hit wins.
func findByPatterns(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		if n := utf8.RuneCountInString(value); n >= 1 && n < 100 {
			return value
		}
	}
	return ""
}

// findFieldValue scans lines for any of the given label aliases. A
// same-line "label: value" form is preferred; when the label stands alone
// the immediately following line is taken, provided it is not itself a
// field label and has a plausible length.
func findFieldValue(lines []string, aliases []string) string {
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, alias := range aliases {
			if !strings.Contains(lower, strings.ToLower(alias)) {
				continue
			}
			if re := sameLineRes[alias]; re != nil {
				if m := re.FindStringSubmatch(line); m != nil {
					if v := strings.TrimSpace(m[1]); v != "" {
						return v
					}
				}
			}
			if i+1 < len(lines) {
				next := lines[i+1]
				if !fieldLabelRe.MatchString(next) {
					if n := utf8.RuneCountInString(next); n > 1 && n < 100 {
						return next
					}
				}
			}
		}
	}
	return ""
}
