package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samihq/weekly-reports/pkg/config"
)

func TestReminderSlot(t *testing.T) {
	cases := []struct {
		name     string
		cfg      config.ReportConfig
		wantDay  int
		wantHour int
	}{
		{"same day", config.ReportConfig{DeadlineDay: 5, DeadlineHour: 18, ReminderHours: 3}, 5, 15},
		{"wraps to previous day", config.ReportConfig{DeadlineDay: 5, DeadlineHour: 2, ReminderHours: 5}, 4, 21},
		{"wraps across the week", config.ReportConfig{DeadlineDay: 0, DeadlineHour: 1, ReminderHours: 4}, 6, 21},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Scheduler{cfg: tc.cfg}
			day, hour := s.reminderSlot()
			assert.Equal(t, tc.wantDay, day)
			assert.Equal(t, tc.wantHour, hour)
		})
	}
}
