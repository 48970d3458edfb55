package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_NarrativeFields(t *testing.T) {
	t.Run("all three fields from additional section", func(t *testing.T) {
		text := "ДОДАТКОВА ІНФОРМАЦІЯ\n" +
			"Що турбує: забагато нарад посеред дня\n" +
			"Пропозиції: винести наради на ранок\n" +
			"Пріоритети: завершити міграцію бази"

		result := Extract(text)
		report := result.Report

		require.NotNil(t, report.Concerns)
		assert.Equal(t, "забагато нарад посеред дня", *report.Concerns)

		require.NotNil(t, report.Improvements)
		assert.Equal(t, "винести наради на ранок", *report.Improvements)

		require.NotNil(t, report.Priorities)
		assert.Equal(t, "завершити міграцію бази", *report.Priorities)
	})

	t.Run("english labels", func(t *testing.T) {
		text := "ADDITIONAL INFO\nConcerns: too many context switches\nImprovements: batch the interrupts\nPriorities: ship the billing fix"

		result := Extract(text)
		report := result.Report

		require.NotNil(t, report.Concerns)
		assert.Equal(t, "too many context switches", *report.Concerns)
		require.NotNil(t, report.Improvements)
		assert.Equal(t, "batch the interrupts", *report.Improvements)
		require.NotNil(t, report.Priorities)
		assert.Equal(t, "ship the billing fix", *report.Priorities)
	})

	t.Run("whole-text fallback without section heading", func(t *testing.T) {
		result := Extract("ПІБ: Коваль Андрій\nПропозиції: оновити стенд розробки")

		require.NotNil(t, result.Report.Improvements)
		assert.Equal(t, "оновити стенд розробки", *result.Report.Improvements)
	})

	t.Run("priorities have no whole-text fallback", func(t *testing.T) {
		result := Extract("ПІБ: Коваль Андрій\nПріоритети наступного тижня поки не визначені остаточно")

		assert.Nil(t, result.Report.Priorities)
	})

	t.Run("section bounded by signature", func(t *testing.T) {
		text := "ДОДАТКОВА ІНФОРМАЦІЯ\nЩо турбує: нестабільний стенд\n---\nПідпис"

		result := Extract(text)

		require.NotNil(t, result.Report.Concerns)
		assert.Equal(t, "нестабільний стенд", *result.Report.Concerns)
	})
}
