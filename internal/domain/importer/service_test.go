package importer

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samihq/weekly-reports/internal/domain/extract"
)

func newTestService() *Service {
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), time.UTC)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestFromText_FullReport(t *testing.T) {
	svc := newTestService()

	text := strings.Join([]string{
		"ПІБ: Коваль Андрій",
		"Посада: Розробник",
		"Команда: Core",
		"Тиждень: 9",
		"Рік: 2026",
		"Завантаженість: 4",
		"",
		"ВИКОНАНІ ЗАДАЧІ",
		"1. Розробка API | Billing | 12",
		"",
		"НЕВИКОНАНІ ЗАДАЧІ",
		"1. Міграція бази | Бракує вікна | 15.03.2026",
	}, "\n")

	draft, err := svc.FromText(7, text)
	require.NoError(t, err)

	assert.Equal(t, int64(7), draft.Input.UserID)
	assert.Equal(t, 9, draft.Input.WeekNumber)
	assert.Equal(t, 2026, draft.Input.Year)
	assert.Equal(t, 4, draft.Input.Workload)

	require.NotNil(t, draft.Name)
	assert.Equal(t, "Коваль Андрій", *draft.Name)
	require.NotNil(t, draft.Position)
	assert.Equal(t, extract.PositionDev, *draft.Position)

	require.Len(t, draft.Input.CompletedTasks, 1)
	assert.Equal(t, "Розробка API", draft.Input.CompletedTasks[0].Title)
	require.Len(t, draft.Input.NotCompletedTasks, 1)
	require.NotNil(t, draft.Input.NotCompletedTasks[0].ETA)
	assert.NotEmpty(t, draft.Trace)
}

func TestFromText_DefaultsForMissingScalars(t *testing.T) {
	svc := newTestService()

	text := strings.Join([]string{
		"ВИКОНАНІ ЗАДАЧІ",
		"1. Налаштування CI | 6",
	}, "\n")

	draft, err := svc.FromText(7, text)
	require.NoError(t, err)

	// 2026-03-02 is ISO week 10.
	assert.Equal(t, 10, draft.Input.WeekNumber)
	assert.Equal(t, 2026, draft.Input.Year)
	assert.Equal(t, defaultWorkload, draft.Input.Workload)
}

func TestFromText_RejectsNoise(t *testing.T) {
	svc := newTestService()

	_, err := svc.FromText(7, "просто якийсь текст без жодної структури")
	assert.ErrorIs(t, err, ErrNoReportContent)
}

func TestFromText_PadsShortReason(t *testing.T) {
	svc := newTestService()

	text := strings.Join([]string{
		"НЕВИКОНАНІ ЗАДАЧІ",
		"1. Міграція бази | ok",
	}, "\n")

	draft, err := svc.FromText(7, text)
	require.NoError(t, err)
	require.Len(t, draft.Input.NotCompletedTasks, 1)
	assert.Equal(t, "не вказано", draft.Input.NotCompletedTasks[0].Reason)
}

func TestDescribe(t *testing.T) {
	assert.Contains(t, Describe(ErrNoReportContent), "weekly report")
}
