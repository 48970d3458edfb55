package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_WeekRange(t *testing.T) {
	for _, week := range []int{0, 54, 100} {
		t.Run(fmt.Sprintf("week %d discarded", week), func(t *testing.T) {
			result := Extract(fmt.Sprintf("Тиждень: %d", week))
			assert.Nil(t, result.Report.WeekNumber)
		})
	}

	for _, week := range []int{1, 26, 53} {
		t.Run(fmt.Sprintf("week %d kept", week), func(t *testing.T) {
			result := Extract(fmt.Sprintf("Тиждень: %d", week))
			require.NotNil(t, result.Report.WeekNumber)
			assert.Equal(t, week, *result.Report.WeekNumber)
		})
	}
}

func TestExtract_YearRange(t *testing.T) {
	result := Extract("Рік: 2019")
	assert.Nil(t, result.Report.Year)

	result = Extract("Рік: 2101")
	assert.Nil(t, result.Report.Year)

	result = Extract("Рік: 2026")
	require.NotNil(t, result.Report.Year)
	assert.Equal(t, 2026, *result.Report.Year)
}

func TestExtract_WorkloadForms(t *testing.T) {
	t.Run("slash five form", func(t *testing.T) {
		result := Extract("Навантаження: 4/5")
		require.NotNil(t, result.Report.Workload)
		assert.Equal(t, 4, *result.Report.Workload)
	})

	t.Run("of five form", func(t *testing.T) {
		result := Extract("Оцінка тижня 3 із 5")
		require.NotNil(t, result.Report.Workload)
		assert.Equal(t, 3, *result.Report.Workload)
	})

	t.Run("english label", func(t *testing.T) {
		result := Extract("Workload: 5")
		require.NotNil(t, result.Report.Workload)
		assert.Equal(t, 5, *result.Report.Workload)
	})
}

func TestExtract_NameFallbacks(t *testing.T) {
	t.Run("labelled name", func(t *testing.T) {
		result := Extract("Співробітник: Коваль Андрій")
		require.NotNil(t, result.Report.Name)
		assert.Equal(t, "Коваль Андрій", *result.Report.Name)
	})

	t.Run("capitalized line without label", func(t *testing.T) {
		result := Extract("звіт за тиждень\nПетренко Олександр Іванович\nдалі текст")
		require.NotNil(t, result.Report.Name)
		assert.Equal(t, "Петренко Олександр Іванович", *result.Report.Name)
	})

	t.Run("label on its own line", func(t *testing.T) {
		result := Extract("ПІБ\nКоваль Андрій")
		require.NotNil(t, result.Report.Name)
		assert.Equal(t, "Коваль Андрій", *result.Report.Name)
	})
}

func TestMapPosition(t *testing.T) {
	cases := []struct {
		raw  string
		want Position
	}{
		{"Developer", PositionDev},
		{"розробник", PositionDev},
		{"QA", PositionQA},
		{"Дизайнер", PositionDesign},
		{"Analyst", PositionBA},
		{"Manager", PositionPM},
		{"підтримка", PositionSupport},
		{"хелпдеск", PositionHelpdesk},
	}
	for _, tc := range cases {
		pos, known := mapPosition(tc.raw)
		assert.Equal(t, tc.want, pos, "raw %q", tc.raw)
		assert.True(t, known, "raw %q", tc.raw)
	}
}

func TestMapPosition_ExactLookupOnly(t *testing.T) {
	// Aliases never match inside longer phrases; unknown values default to
	// Other with the low-confidence flag so the mapping stays auditable.
	for _, raw := range []string{
		"Backend Engineer", // "ba" must not fire inside "backend"
		"Senior QA Engineer",
		"щось незрозуміле",
	} {
		pos, known := mapPosition(raw)
		assert.Equal(t, PositionOther, pos, "raw %q", raw)
		assert.False(t, known, "raw %q", raw)
	}
}

func TestMapTeam(t *testing.T) {
	cases := []struct {
		raw  string
		want Team
	}{
		{"Core", TeamCore},
		{"бекенд", TeamCore},
		{"Mobile", TeamMobile},
		{"фронтенд", TeamWeb},
		{"Infra", TeamInfra},
		{"SAMI", TeamSAMI},
	}
	for _, tc := range cases {
		team, known := mapTeam(tc.raw)
		assert.Equal(t, tc.want, team, "raw %q", tc.raw)
		assert.True(t, known, "raw %q", tc.raw)
	}
}

func TestMapTeam_ExactLookupOnly(t *testing.T) {
	for _, raw := range []string{
		"SAMI Організаційна дата зустрічі", // contains two aliases, still Other
		"невідома команда",
	} {
		team, known := mapTeam(raw)
		assert.Equal(t, TeamOther, team, "raw %q", raw)
		assert.False(t, known, "raw %q", raw)
	}
}

func TestFindFieldValue(t *testing.T) {
	t.Run("same line value", func(t *testing.T) {
		lines := []string{"Команда: Web"}
		assert.Equal(t, "Web", findFieldValue(lines, teamAliasNames))
	})

	t.Run("next line value", func(t *testing.T) {
		lines := []string{"Team", "Mobile"}
		assert.Equal(t, "Mobile", findFieldValue(lines, teamAliasNames))
	})

	t.Run("next line that is a field label is rejected", func(t *testing.T) {
		lines := []string{"Команда", "Навантаження: 4"}
		assert.Equal(t, "", findFieldValue(lines, teamAliasNames))
	})

	t.Run("nothing found", func(t *testing.T) {
		assert.Equal(t, "", findFieldValue([]string{"просто рядок"}, teamAliasNames))
	})
}
