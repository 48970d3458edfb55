package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompletedTasks(t *testing.T) {
	t.Run("numbered pipe rows", func(t *testing.T) {
		section := "ВИКОНАНІ ЗАДАЧІ\n1. Оновлення документації | 3\n2. Фікс багів у формі | 5,5"

		tasks := parseCompletedTasks(section)

		require.Len(t, tasks, 2)
		assert.Equal(t, "Оновлення документації", tasks[0].Title)
		assert.Equal(t, 3.0, tasks[0].Hours)
		assert.Equal(t, "Фікс багів у формі", tasks[1].Title)
		assert.Equal(t, 5.5, tasks[1].Hours, "decimal comma becomes a dot")
	})

	t.Run("bulleted rows with unit suffix", func(t *testing.T) {
		section := "Completed tasks\n• Налаштування моніторингу - 4 год\n• Код-рев'ю (2h)"

		tasks := parseCompletedTasks(section)

		require.Len(t, tasks, 2)
		assert.Equal(t, "Налаштування моніторингу", tasks[0].Title)
		assert.Equal(t, 4.0, tasks[0].Hours)
		assert.Equal(t, "Код-рев'ю", tasks[1].Title)
		assert.Equal(t, 2.0, tasks[1].Hours)
	})

	t.Run("column split recovers project", func(t *testing.T) {
		section := "ВИКОНАНО\n1. Оптимізація запитів | Billing | 8 год"

		tasks := parseCompletedTasks(section)

		require.Len(t, tasks, 1)
		assert.Equal(t, "Оптимізація запитів", tasks[0].Title)
		assert.Equal(t, "Billing", tasks[0].Project)
		assert.Equal(t, 8.0, tasks[0].Hours)
	})

	t.Run("skips headers and placeholder rows", func(t *testing.T) {
		section := "ВИКОНАНІ ЗАДАЧІ\n№ Назва Години\n3\n1. Релізні нотатки | 1"

		tasks := parseCompletedTasks(section)

		require.Len(t, tasks, 1)
		assert.Equal(t, "Релізні нотатки", tasks[0].Title)
	})

	t.Run("rejects too-short titles", func(t *testing.T) {
		tasks := parseCompletedTasks("ВИКОНАНО\n1. ab | 4")
		assert.Empty(t, tasks)
	})

	t.Run("trailing number heuristic", func(t *testing.T) {
		tasks := parseCompletedTasks("ВИКОНАНО\nПідготовка презентації 2")

		require.Len(t, tasks, 1)
		assert.Equal(t, "Підготовка презентації", tasks[0].Title)
		assert.Equal(t, 2.0, tasks[0].Hours)
	})
}

func TestParseLooseCompletedTasks(t *testing.T) {
	text := "ПІБ: Бондаренко Ігор\nРік: 2026\n1. Розгортання стенду | 6\nНавантаження: 3"

	tasks := parseLooseCompletedTasks(text)

	// Only the ordinal-prefixed line is a task candidate; field lines with
	// trailing numbers must not leak in.
	require.Len(t, tasks, 1)
	assert.Equal(t, "Розгортання стенду", tasks[0].Title)
	assert.Equal(t, 6.0, tasks[0].Hours)
}

func TestParseNotCompletedTasks(t *testing.T) {
	t.Run("full row with eta and blocker", func(t *testing.T) {
		section := "НЕВИКОНАНІ ЗАДАЧІ\n1. Перенесення даних | Чекаю на бекап | 15.03.2026 | Немає доступу до проду"

		tasks := parseNotCompletedTasks(section)

		require.Len(t, tasks, 1)
		task := tasks[0]
		assert.Equal(t, "Перенесення даних", task.Title)
		assert.Equal(t, "Чекаю на бекап", task.Reason)
		require.NotNil(t, task.ETA)
		assert.Equal(t, 15, task.ETA.Day())
		assert.Equal(t, "Немає доступу до проду", task.Blocker)
	})

	t.Run("unparseable eta kept as text", func(t *testing.T) {
		section := "НЕ ВИКОНАНО\n1. Аудит безпеки | Бракує часу | наступного тижня"

		tasks := parseNotCompletedTasks(section)

		require.Len(t, tasks, 1)
		assert.Nil(t, tasks[0].ETA)
		assert.Equal(t, "наступного тижня", tasks[0].ETARaw)
	})

	t.Run("iso and slash dates", func(t *testing.T) {
		section := "NOT COMPLETED\n1. Data migration | waiting on backup | 2026-03-15\n2. Schema review | vendor delay | 15/03/2026"

		tasks := parseNotCompletedTasks(section)

		require.Len(t, tasks, 2)
		require.NotNil(t, tasks[0].ETA)
		require.NotNil(t, tasks[1].ETA)
		assert.Equal(t, tasks[0].ETA.Day(), tasks[1].ETA.Day())
	})

	t.Run("rows without a reason column are dropped", func(t *testing.T) {
		tasks := parseNotCompletedTasks("НЕВИКОНАНІ ЗАДАЧІ\n1. Самотній заголовок без причини")
		assert.Empty(t, tasks)
	})

	t.Run("skips header rows", func(t *testing.T) {
		section := "НЕВИКОНАНІ ЗАДАЧІ\n№ Назва Причина ETA\n1. Звірка рахунків | Очікую підтвердження"

		tasks := parseNotCompletedTasks(section)

		require.Len(t, tasks, 1)
		assert.Equal(t, "Звірка рахунків", tasks[0].Title)
	})
}
