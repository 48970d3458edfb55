package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_TypicalUkrainianReport(t *testing.T) {
	text := "ПІБ: Петренко Олександр\nПосада: Developer\nТиждень №: 9\nРік: 2026\n1. Розробка API | 12\n2. Рев'ю PR | 4\nНавантаження: 4/5"

	result := Extract(text)
	report := result.Report

	require.NotNil(t, report.Name)
	assert.Equal(t, "Петренко Олександр", *report.Name)

	require.NotNil(t, report.Position)
	assert.Equal(t, PositionDev, *report.Position)

	require.NotNil(t, report.WeekNumber)
	assert.Equal(t, 9, *report.WeekNumber)

	require.NotNil(t, report.Year)
	assert.Equal(t, 2026, *report.Year)

	require.NotNil(t, report.Workload)
	assert.Equal(t, 4, *report.Workload)

	require.Len(t, report.CompletedTasks, 2)
	assert.Equal(t, "Розробка API", report.CompletedTasks[0].Title)
	assert.Equal(t, float64(12), report.CompletedTasks[0].Hours)
	assert.Equal(t, "Рев'ю PR", report.CompletedTasks[1].Title)
	assert.Equal(t, float64(4), report.CompletedTasks[1].Hours)
}

func TestExtract_OutOfRangeWorkloadDiscarded(t *testing.T) {
	result := Extract("ПІБ: Іваненко Марія\nНавантаження: 7/5")

	// 7 is outside [1,5]: the field must be absent, never clamped to 5.
	assert.Nil(t, result.Report.Workload)
}

func TestExtract_NotCompletedTaskWithETA(t *testing.T) {
	text := "ВИКОНАНІ ЗАДАЧІ\n1. Налаштування CI | 6\nНЕВИКОНАНІ ЗАДАЧІ\n1. Інтеграція з платіжною системою | Очікування доступів | 28.02.2026"

	result := Extract(text)
	report := result.Report

	require.Len(t, report.CompletedTasks, 1)
	assert.Equal(t, "Налаштування CI", report.CompletedTasks[0].Title)

	require.Len(t, report.NotCompletedTasks, 1)
	task := report.NotCompletedTasks[0]
	assert.Equal(t, "Інтеграція з платіжною системою", task.Title)
	assert.Equal(t, "Очікування доступів", task.Reason)
	require.NotNil(t, task.ETA)
	assert.Equal(t, 2026, task.ETA.Year())
	assert.Equal(t, 2, int(task.ETA.Month()))
	assert.Equal(t, 28, task.ETA.Day())
	assert.Empty(t, task.ETARaw)
}

func TestExtract_NoiseTextYieldsEmptyReport(t *testing.T) {
	text := "лорем іпсум без жодної структури в цьому документі\nпросто кілька рядків випадкових слів поспіль\nнічого схожого на звіт тут немає взагалі"

	result := Extract(text)
	report := result.Report

	assert.Nil(t, report.Name)
	assert.Nil(t, report.Position)
	assert.Nil(t, report.Team)
	assert.Nil(t, report.WeekNumber)
	assert.Nil(t, report.Year)
	assert.Nil(t, report.Workload)
	assert.Empty(t, report.CompletedTasks)
	assert.Empty(t, report.NotCompletedTasks)
	assert.Nil(t, report.Concerns)
	assert.Nil(t, report.Improvements)
	assert.Nil(t, report.Priorities)
	assert.True(t, report.Empty())
}

func TestExtract_MixedLanguageLabels(t *testing.T) {
	text := "Name: Olena Kovalenko\nPosition: QA\nКоманда: Mobile\nWeek: 12\nРік: 2026"

	result := Extract(text)
	report := result.Report

	require.NotNil(t, report.Position)
	assert.Equal(t, PositionQA, *report.Position)

	require.NotNil(t, report.Team)
	assert.Equal(t, TeamMobile, *report.Team)

	require.NotNil(t, report.WeekNumber)
	assert.Equal(t, 12, *report.WeekNumber)
}

func TestExtract_BilingualWeekLabels(t *testing.T) {
	for _, text := range []string{"Тиждень: 9", "Week: 9"} {
		result := Extract(text)
		require.NotNil(t, result.Report.WeekNumber, "input %q", text)
		assert.Equal(t, 9, *result.Report.WeekNumber, "input %q", text)
	}
}

func TestExtract_NarrativeRoundTrip(t *testing.T) {
	// The report generator writes narrative headings in this exact shape;
	// extracting them back must recover the identical text.
	result := Extract("ЩО ТУРБУЄ? Багато контекстних перемикань між проєктами")

	require.NotNil(t, result.Report.Concerns)
	assert.Equal(t, "Багато контекстних перемикань між проєктами", *result.Report.Concerns)
}

func TestExtract_TraceFlagsLowConfidenceMapping(t *testing.T) {
	result := Extract("ПІБ: Шевченко Тарас\nПосада: Космонавт")

	require.NotNil(t, result.Report.Position)
	assert.Equal(t, PositionOther, *result.Report.Position)

	var positionEvent *Event
	for i := range result.Trace {
		if result.Trace[i].Field == "position" {
			positionEvent = &result.Trace[i]
		}
	}
	require.NotNil(t, positionEvent)
	assert.True(t, positionEvent.Fallback)
	assert.Equal(t, "Космонавт", positionEvent.Raw)
}

func TestExtract_DeterministicAcrossCalls(t *testing.T) {
	text := "ВИКОНАНІ ЗАДАЧІ\n1. Деплой релізу | 3\nНЕВИКОНАНІ ЗАДАЧІ\n1. Міграція бази | Бракує вікна обслуговування"

	first := Extract(text)
	second := Extract(text)
	assert.Equal(t, first.Report, second.Report)
	assert.Equal(t, first.Trace, second.Trace)
}
