package extract

import "unicode/utf8"

// minNarrativeLen guards the whole-text fallbacks: a capture this short is
// a stray label, not an answer.
const minNarrativeLen = 3

// extractNarrative fills concerns, improvements and priorities. The
// additional-information section is preferred; when a field is missing
// there (or the section is absent) concerns and improvements get one more
// chance as single-line matches over the whole text.
func (e *extractor) extractNarrative() {
	section, _ := extractSection(e.text, additionalStartMarkers, additionalEndMarkers)

	if section != "" {
		if m := concernsSectionRe.FindStringSubmatch(section); m != nil {
			if v := cleanText(m[1]); v != "" {
				e.report.Concerns = &v
				e.trace("concerns", m[1], v, false)
			}
		}
		if m := improvementsSectionRe.FindStringSubmatch(section); m != nil {
			if v := cleanText(m[1]); v != "" {
				e.report.Improvements = &v
				e.trace("improvements", m[1], v, false)
			}
		}
		if m := prioritiesSectionRe.FindStringSubmatch(section); m != nil {
			if v := cleanText(m[1]); v != "" {
				e.report.Priorities = &v
				e.trace("priorities", m[1], v, false)
			}
		}
	}

	if e.report.Concerns == nil {
		if m := concernsLineRe.FindStringSubmatch(e.text); m != nil {
			if v := cleanText(m[1]); utf8.RuneCountInString(v) >= minNarrativeLen {
				e.report.Concerns = &v
				e.trace("concerns", m[1], v, true)
			}
		}
	}
	if e.report.Improvements == nil {
		if m := improvementsLineRe.FindStringSubmatch(e.text); m != nil {
			if v := cleanText(m[1]); utf8.RuneCountInString(v) >= minNarrativeLen {
				e.report.Improvements = &v
				e.trace("improvements", m[1], v, true)
			}
		}
	}
}
