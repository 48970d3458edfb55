package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// minTaskTitleLen filters out false positives: anything shorter after
// trimming is table debris, not a task title.
const minTaskTitleLen = 3

const minNotCompletedLineLen = 5

var etaLayouts = []string{"02.01.2006", "2006-01-02", "02/01/2006"}

// parseCompletedTasks walks the lines of the completed-tasks section and
// recovers (title, project, hours) rows. Each line runs through the
// pattern cascade first; lines no pattern claims fall to a column-split
// heuristic, and finally to a trailing-number match.
func parseCompletedTasks(section string) []CompletedTask {
	var tasks []CompletedTask
	for _, line := range splitLines(section) {
		if task, ok := parseCompletedLine(line); ok {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

// looseTaskLineRe gates the no-section fallback: only lines that already
// look authored as task rows (ordinal or bullet prefix) are considered,
// so scalar field lines like "Рік: 2026" never become tasks.
var looseTaskLineRe = regexp.MustCompile(`^(?:\d+[.)\s]|[•\-*]\s)`)

// parseLooseCompletedTasks handles documents without a recognizable
// completed-tasks heading. Numbered or bulleted lines anywhere in the
// text are treated as completed-task rows; everything else is ignored.
func parseLooseCompletedTasks(text string) []CompletedTask {
	var tasks []CompletedTask
	for _, line := range splitLines(text) {
		if !looseTaskLineRe.MatchString(line) {
			continue
		}
		if task, ok := parseCompletedLine(line); ok {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

func parseCompletedLine(line string) (CompletedTask, bool) {
	if completedSkipRe.MatchString(line) ||
		utf8.RuneCountInString(line) < minTaskTitleLen ||
		bareNumberRe.MatchString(line) {
		return CompletedTask{}, false
	}

	for _, re := range completedTaskPatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		task := CompletedTask{Title: strings.TrimSpace(m[1])}
		switch len(m) {
		case 3:
			task.Hours = parseHours(m[2])
		case 4:
			task.Project = strings.TrimSpace(m[2])
			task.Hours = parseHours(m[3])
		}
		if utf8.RuneCountInString(task.Title) >= minTaskTitleLen {
			return task, true
		}
		return CompletedTask{}, false
	}

	return splitCompletedColumns(line)
}

// splitCompletedColumns handles table-ish lines the patterns missed: the
// ordinal prefix is stripped, the rest is split on pipes, tabs or wide
// gaps, and a trailing numeric column is taken as hours.
func splitCompletedColumns(line string) (CompletedTask, bool) {
	content := ordinalPrefixRe.ReplaceAllString(line, "")
	parts := splitColumns(content)

	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		if m := leadingNumberRe.FindStringSubmatch(last); m != nil {
			task := CompletedTask{
				Title: parts[0],
				Hours: parseHours(m[1]),
			}
			if len(parts) > 2 {
				task.Project = strings.Join(parts[1:len(parts)-1], " ")
			}
			if utf8.RuneCountInString(task.Title) >= minTaskTitleLen {
				return task, true
			}
			return CompletedTask{}, false
		}
	}

	if m := trailingHoursRe.FindStringSubmatch(content); m != nil {
		title := strings.TrimSpace(m[1])
		if utf8.RuneCountInString(title) >= minTaskTitleLen {
			return CompletedTask{Title: title, Hours: parseHours(m[2])}, true
		}
	}
	return CompletedTask{}, false
}

// parseNotCompletedTasks recovers (title, reason, eta, blocker) rows from
// the not-completed section. Rows that do not carry at least a title and
// a reason column are dropped rather than padded with placeholders.
func parseNotCompletedTasks(section string) []NotCompletedTask {
	var tasks []NotCompletedTask
	for _, line := range splitLines(section) {
		if notCompletedSkipRe.MatchString(line) ||
			utf8.RuneCountInString(line) < minNotCompletedLineLen {
			continue
		}

		content := ordinalPrefixRe.ReplaceAllString(line, "")
		parts := splitColumns(content)
		if len(parts) < 2 {
			continue
		}

		task := NotCompletedTask{
			Title:  parts[0],
			Reason: parts[1],
		}
		if utf8.RuneCountInString(task.Title) < minTaskTitleLen {
			continue
		}
		if len(parts) > 2 {
			if eta, ok := parseETA(parts[2]); ok {
				task.ETA = &eta
			} else {
				task.ETARaw = parts[2]
			}
		}
		if len(parts) > 3 {
			task.Blocker = parts[3]
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func splitColumns(s string) []string {
	var parts []string
	for _, part := range columnSplitRe.Split(s, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func parseHours(s string) float64 {
	s = strings.Replace(s, ",", ".", 1)
	hours, err := strconv.ParseFloat(s, 64)
	if err != nil || hours < 0 {
		return 0
	}
	return hours
}

func parseETA(s string) (time.Time, bool) {
	for _, layout := range etaLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
