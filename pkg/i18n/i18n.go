// Package i18n holds the bilingual label tables used in user-facing
// output: notifications, exports and kanban card descriptions.
package i18n

import (
	"fmt"

	"github.com/samihq/weekly-reports/internal/domain/extract"
)

// Lang selects a label language. Unknown values fall back to Ukrainian,
// the product's primary language.
type Lang string

const (
	LangUK Lang = "uk"
	LangEN Lang = "en"
)

func (l Lang) valid() Lang {
	if l == LangEN {
		return LangEN
	}
	return LangUK
}

var workloadLabels = map[Lang]map[int]string{
	LangUK: {
		1: "🟢 Дуже низьке",
		2: "🟢 Низьке",
		3: "🟡 Середнє",
		4: "🟠 Високе",
		5: "🔴 Критичне",
	},
	LangEN: {
		1: "🟢 Very Low",
		2: "🟢 Low",
		3: "🟡 Medium",
		4: "🟠 High",
		5: "🔴 Critical",
	},
}

var positionLabels = map[Lang]map[extract.Position]string{
	LangUK: {
		extract.PositionPM:       "Проджект Менеджер",
		extract.PositionDev:      "Розробник",
		extract.PositionDesign:   "Дизайнер",
		extract.PositionQA:       "Тестувальник",
		extract.PositionBA:       "Бізнес-аналітик",
		extract.PositionHelpdesk: "Хелпдеск",
		extract.PositionSupport:  "Підтримка",
		extract.PositionOther:    "Інше",
	},
	LangEN: {
		extract.PositionPM:       "Project Manager",
		extract.PositionDev:      "Developer",
		extract.PositionDesign:   "Designer",
		extract.PositionQA:       "QA Engineer",
		extract.PositionBA:       "Business Analyst",
		extract.PositionHelpdesk: "Helpdesk",
		extract.PositionSupport:  "Support",
		extract.PositionOther:    "Other",
	},
}

// Workload renders the 1-5 load rating with its traffic-light emoji.
func Workload(workload int, lang Lang) string {
	if label, ok := workloadLabels[lang.valid()][workload]; ok {
		return label
	}
	return ""
}

// Position renders a canonical position in the requested language.
func Position(pos extract.Position, lang Lang) string {
	if label, ok := positionLabels[lang.valid()][pos]; ok {
		return label
	}
	return string(pos)
}

// Team labels are shared between languages; team names are product nouns.
func Team(team extract.Team) string {
	return string(team)
}

// CompletionRate renders a percentage with a severity marker.
func CompletionRate(rate int) string {
	marker := "❌"
	switch {
	case rate >= 90:
		marker = "📈"
	case rate >= 70:
		marker = "✅"
	case rate >= 50:
		marker = "⚠️"
	}
	return fmt.Sprintf("%s %d%%", marker, rate)
}
