package extract

import "regexp"

// Pattern tables for locating fields in free-form report text. Ordering
// matters everywhere: the first pattern that matches wins, so the more
// specific forms come first. Labels cover both Ukrainian and English
// spellings seen in real reports.

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:ПІБ|Ім['` + "`" + `’]?я|Name|Прізвище|Співробітник|ФІО|Employee|Reporter|Автор|Звітує)\s*[:：]?\s*(.+)`),
	// Two or three capitalized words alone on a line, e.g. "Іван Петренко".
	regexp.MustCompile(`(?m)^([А-ЯІЇЄҐA-Z][а-яіїєґa-z]+\s+[А-ЯІЇЄҐA-Z][а-яіїєґa-z]+(?:\s+[А-ЯІЇЄҐA-Z][а-яіїєґa-z]+)?)\s*$`),
}

var positionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Посада|Position|Роль|Role|Title|Job)\s*[:：]?\s*(.+)`),
}

var weekPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Тиждень|Week|Номер\s*тижня)\s*(?:№|No|#)?\s*[:：]?\s*(\d+)`),
	regexp.MustCompile(`(?i)(?:№|No|#)\s*(\d+)\s*(?:тиждень|week)`),
	regexp.MustCompile(`(?i)week\s*(\d+)`),
}

var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Рік|Year)\s*[:：]?\s*(\d{4})`),
	regexp.MustCompile(`(?i)(\d{4})\s*(?:рік|year|р\.)`),
}

var workloadPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Навантаження|Workload|Оцінка|Rate|Rating|Завантаженість|Score)\s*[:\-\s]+(\d)\s*(?:/\s*\d)?`),
	regexp.MustCompile(`(?i)(\d)\s*(?:із|з|of|/)\s*5`),
	regexp.MustCompile(`(?i)(?:рівень|level)\s*[:\s]+(\d)`),
}

var teamAliasNames = []string{"Команда", "Team", "Відділ", "Department", "Group"}

var nameAliasNames = []string{"ПІБ", "Ім'я", "Name", "Прізвище", "Співробітник"}

var positionAliasNames = []string{"Посада", "Position", "Роль", "Role"}

// sameLineRes holds one "label: value" regex per alias, compiled once.
var sameLineRes = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp)
	for _, aliases := range [][]string{nameAliasNames, positionAliasNames, teamAliasNames} {
		for _, alias := range aliases {
			out[alias] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(alias) + `\s*[:：]?\s*(.+)`)
		}
	}
	return out
}()

// fieldLabelRe recognizes lines that are themselves field labels; the
// next-line fallback in alias lookup must never swallow one of these.
var fieldLabelRe = regexp.MustCompile(`(?i)^(ПІБ|Посада|Команда|Тиждень|Рік|Дата|№|No|Навантаження|Виконані|Невиконані)`)

// positionAliases maps the lowercased raw position text to a canonical
// position. Lookup is exact; anything else falls back to Other.
var positionAliases = map[string]Position{
	"pm":           PositionPM,
	"dev":          PositionDev,
	"розробник":    PositionDev,
	"developer":    PositionDev,
	"design":       PositionDesign,
	"дизайнер":     PositionDesign,
	"designer":     PositionDesign,
	"qa":           PositionQA,
	"тестувальник": PositionQA,
	"tester":       PositionQA,
	"ba":           PositionBA,
	"аналітик":     PositionBA,
	"analyst":      PositionBA,
	"менеджер":     PositionPM,
	"manager":      PositionPM,
	"хелпдеск":     PositionHelpdesk,
	"helpdesk":     PositionHelpdesk,
	"support":      PositionSupport,
	"підтримка":    PositionSupport,
}

var teamAliases = map[string]Team{
	"core":           TeamCore,
	"mobile":         TeamMobile,
	"web":            TeamWeb,
	"frontend":       TeamWeb,
	"фронтенд":       TeamWeb,
	"infra":          TeamInfra,
	"інфраструктура": TeamInfra,
	"data":           TeamData,
	"дата":           TeamData,
	"backend":        TeamCore,
	"бекенд":         TeamCore,
	"sami":           TeamSAMI,
	"самі":           TeamSAMI,
}

// Section boundary markers. Start markers are tried in order and the
// earliest occurrence in the text wins; end markers bound the section at
// the nearest occurrence past the start.

var completedStartMarkers = []string{
	"ВИКОНАНІ ЗАДАЧІ", "ВИКОНАНО", "COMPLETED",
	"Виконані задачі", "Completed tasks", "Done", "Зроблено", "Finished",
}

var completedEndMarkers = []string{
	"НЕВИКОНАНІ ЗАДАЧІ", "НЕ ВИКОНАНО", "NOT COMPLETED",
	"Невиконані", "ДОДАТКОВА", "Incomplete", "Pending", "In progress",
}

var notCompletedStartMarkers = []string{
	"НЕВИКОНАНІ ЗАДАЧІ", "НЕ ВИКОНАНО", "NOT COMPLETED",
	"Невиконані задачі", "Incomplete tasks", "Pending", "In progress", "Не завершено",
}

var notCompletedEndMarkers = []string{
	"ДОДАТКОВА ІНФОРМАЦІЯ", "Що турбує", "Що вас турбує", "Concerns",
	"Пропозиції", "Навантаження", "Workload", "Additional",
}

var additionalStartMarkers = []string{
	"ДОДАТКОВА ІНФОРМАЦІЯ", "ADDITIONAL INFO", "Додаткова",
	"Additional", "Що турбує", "Concerns",
}

var additionalEndMarkers = []string{"---", "===", "Підпис", "Signature", "END"}

// Completed-task line patterns, most specific first. A three-group match
// carries title|project|hours, a two-group match title|hours.
var completedTaskPatterns = []*regexp.Regexp{
	// 1. Title | 8
	regexp.MustCompile(`^\d+[.)\s]+(.+?)\s*[|\t]\s*(\d+(?:[.,]\d+)?)\s*$`),
	// 1. Title | Project | 8
	regexp.MustCompile(`^\d+[.)\s]+(.+?)\s*[|\t]\s*(.+?)\s*[|\t]\s*(\d+(?:[.,]\d+)?)\s*$`),
	// • Title - 8 год
	regexp.MustCompile(`(?i)^[•\-*]\s+(.+?)\s*[-–—]\s*(\d+(?:[.,]\d+)?)\s*(?:год|h|hours?)?`),
	// • Title (8 год)
	regexp.MustCompile(`(?i)^[•\-*]\s+(.+?)\s*\((\d+(?:[.,]\d+)?)\s*(?:год|h|hours?)?\)`),
	// Title: 8 год
	regexp.MustCompile(`(?i)^(.+?)\s*[:：]\s*(\d+(?:[.,]\d+)?)\s*(?:год|h|hours?)?$`),
	// 1 Title 8
	regexp.MustCompile(`^\d+\s+(.+?)\s+(\d+(?:[.,]\d+)?)\s*$`),
}

// completedSkipRe matches table headers and section titles that must never
// be mistaken for task rows.
var completedSkipRe = regexp.MustCompile(`(?i)^(№|No\b|#|Назва|Title|Задача|Task|Години|Hours|Проєкт|Project|ВИКОНАНІ|НЕВИКОНАНІ|COMPLETED|NOT\s*COMPLETED|Виконано|Done)`)

var notCompletedSkipRe = regexp.MustCompile(`(?i)^(№|No\b|#|Назва|Title|Задача|Task|Причина|Reason|ETA|Blocker|НЕВИКОНАНІ|ВИКОНАНІ|NOT\s*COMPLETED|COMPLETED|ОЦІНКА|Pending|In\s*progress)`)

var (
	ordinalPrefixRe = regexp.MustCompile(`^\d+[.)\s]+`)
	columnSplitRe   = regexp.MustCompile(`[|\t]|\s{2,}`)
	bareNumberRe    = regexp.MustCompile(`^\d+\s*$`)
	leadingNumberRe = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)`)
	trailingHoursRe = regexp.MustCompile(`^(.+?)\s+(\d+(?:[.,]\d+)?)\s*$`)
)

// Narrative field patterns. Each captures everything from its label up to
// the next known label or the end of the section.
var (
	concernsSectionRe     = regexp.MustCompile(`(?is)(?:Що\s+(?:вас\s+)?турбує|Concerns?|Побоювання|Issues?|Problems?)\s*[?:：]?\s*(.*?)(?:Пропозиції|Improvements?|$)`)
	improvementsSectionRe = regexp.MustCompile(`(?is)(?:Пропозиції|Improvements?|Suggestions?|Ideas?)\s*[?:：]?\s*(.*?)(?:Пріоритети|Priorities?|$)`)
	prioritiesSectionRe   = regexp.MustCompile(`(?is)(?:Пріоритети|Priorities?|Next\s*week|Plans?)\s*[?:：]?\s*(.*)$`)

	// Single-line whole-text fallbacks for documents without an explicit
	// additional-information section.
	concernsLineRe     = regexp.MustCompile(`(?i)(?:Що\s+(?:вас\s+)?турбує|Concerns?|Побоювання)\s*[?:：]?\s*([^\n]+)`)
	improvementsLineRe = regexp.MustCompile(`(?i)(?:Пропозиції|Improvements?|Suggestions?)\s*[?:：]?\s*([^\n]+)`)
)
