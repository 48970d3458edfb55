package kanban

import (
	"fmt"
	"strings"
	"time"

	"github.com/samihq/weekly-reports/internal/domain/reports"
	"github.com/samihq/weekly-reports/pkg/i18n"
)

// CardName builds the card title: 📋 Name - Week NN/YYYY.
func CardName(report *reports.Report) string {
	return fmt.Sprintf("📋 %s - Week %02d/%d", report.UserName, report.WeekNumber, report.Year)
}

// workloadLabelName maps a workload score onto its board label.
func workloadLabelName(workload int) string {
	switch workload {
	case 1, 2:
		return "Load: Low (1-2)"
	case 3:
		return "Load: Medium (3)"
	case 4:
		return "Load: High (4)"
	case 5:
		return "Load: Critical (5)"
	}
	return ""
}

// cardLabels picks the label set for a report.
func (c *Client) cardLabels(report *reports.Report) []string {
	var ids []string
	add := func(name string) {
		if id := c.labelID(name); id != "" {
			ids = append(ids, id)
		}
	}

	if name := workloadLabelName(report.Workload); name != "" {
		add(name)
	}
	add("Needs Review")
	if report.HasBlockers {
		add("Has Blockers")
	}
	if report.CompletionRate == 100 {
		add("All Tasks Done")
	}
	if report.Concerns != nil && strings.TrimSpace(*report.Concerns) != "" {
		add("Has Concerns")
	}
	return ids
}

// targetList routes a report: critical workload or blockers go straight
// to follow-up, everything else lands in new reports.
func (c *Client) targetList(report *reports.Report) string {
	if report.Workload == 5 || report.HasBlockers {
		if id := c.listID(ListFollowUp); id != "" {
			return id
		}
	}
	return c.listID(ListNewReports)
}

// CardDescription renders the markdown body of a report card.
func CardDescription(report *reports.Report, position string, now time.Time) string {
	var b strings.Builder

	b.WriteString("## 📊 Weekly Report\n\n")
	fmt.Fprintf(&b, "**👤 Співробітник:** %s\n", report.UserName)
	if position != "" {
		fmt.Fprintf(&b, "**💼 Посада:** %s\n", position)
	}
	fmt.Fprintf(&b, "**📅 Дата:** %s\n\n", now.Format("02.01.2006"))
	b.WriteString("---\n\n")

	b.WriteString("### 📈 Підсумок\n")
	fmt.Fprintf(&b, "- **Навантаження:** %s (%d/5)\n", i18n.Workload(report.Workload, i18n.LangUK), report.Workload)
	fmt.Fprintf(&b, "- **Виконано:** %d задач\n", report.TasksCompleted)
	fmt.Fprintf(&b, "- **Не виконано:** %d задач\n", report.TasksNotCompleted)
	fmt.Fprintf(&b, "- **%% виконання:** %d%%\n\n", report.CompletionRate)

	if len(report.CompletedTasks) > 0 {
		b.WriteString("### ✅ Виконані задачі\n")
		for i, t := range report.CompletedTasks {
			fmt.Fprintf(&b, "%d. **%s** - %gh\n", i+1, t.Title, t.Hours)
		}
		b.WriteString("\n")
	}

	if len(report.NotCompletedTasks) > 0 {
		b.WriteString("### ❌ Невиконані задачі\n")
		for i, t := range report.NotCompletedTasks {
			fmt.Fprintf(&b, "%d. **%s**\n", i+1, t.Title)
			fmt.Fprintf(&b, "   - Причина: %s\n", t.Reason)
			if t.ETA != nil {
				fmt.Fprintf(&b, "   - ETA: %s\n", t.ETA.Format("02.01.2006"))
			} else if t.ETARaw != "" {
				fmt.Fprintf(&b, "   - ETA: %s\n", t.ETARaw)
			}
			if t.Blocker != "" {
				fmt.Fprintf(&b, "   - ⚠️ Блокер: %s\n", t.Blocker)
			}
		}
		b.WriteString("\n")
	}

	if report.Concerns != nil && *report.Concerns != "" {
		fmt.Fprintf(&b, "### 😟 Що турбує\n%s\n\n", *report.Concerns)
	}
	if report.Improvements != nil && *report.Improvements != "" {
		fmt.Fprintf(&b, "### 💡 Що покращити\n%s\n\n", *report.Improvements)
	}
	if report.Priorities != nil && *report.Priorities != "" {
		fmt.Fprintf(&b, "### 🎯 Пріоритети на наступний тиждень\n%s\n\n", *report.Priorities)
	}

	b.WriteString("---\n*Згенеровано SAMI Weekly Reports*")
	return b.String()
}

// checklistItems renders the checklist rows for both task lists.
func checklistItems(report *reports.Report) (completed, notCompleted []string) {
	for _, t := range report.CompletedTasks {
		item := t.Title
		if t.Project != "" {
			item = fmt.Sprintf("%s (%s)", t.Title, t.Project)
		}
		completed = append(completed, fmt.Sprintf("%s - %gh", item, t.Hours))
	}
	for _, t := range report.NotCompletedTasks {
		notCompleted = append(notCompleted, fmt.Sprintf("%s - %s", t.Title, t.Reason))
	}
	return completed, notCompleted
}
