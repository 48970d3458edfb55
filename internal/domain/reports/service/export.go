package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/samihq/weekly-reports/internal/domain/reports"
)

// exportRow is one flattened report line for CSV export.
type exportRow struct {
	ReportID          int64  `csv:"report_id"`
	UserName          string `csv:"user_name"`
	Team              string `csv:"team"`
	WeekNumber        int    `csv:"week_number"`
	Year              int    `csv:"year"`
	Workload          int    `csv:"workload"`
	TasksCompleted    int    `csv:"tasks_completed"`
	TasksNotCompleted int    `csv:"tasks_not_completed"`
	CompletionRate    int    `csv:"completion_rate"`
	HasBlockers       bool   `csv:"has_blockers"`
	Concerns          string `csv:"concerns"`
	Improvements      string `csv:"improvements"`
	Priorities        string `csv:"priorities"`
	CreatedAt         string `csv:"created_at"`
}

// ExportCSV renders the filtered reports as a CSV document.
func (s *Service) ExportCSV(ctx context.Context, filter reports.Filter) ([]byte, error) {
	list, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]exportRow, 0, len(list))
	for _, r := range list {
		rows = append(rows, exportRow{
			ReportID:          r.ID,
			UserName:          r.UserName,
			Team:              r.Team,
			WeekNumber:        r.WeekNumber,
			Year:              r.Year,
			Workload:          r.Workload,
			TasksCompleted:    r.TasksCompleted,
			TasksNotCompleted: r.TasksNotCompleted,
			CompletionRate:    r.CompletionRate,
			HasBlockers:       r.HasBlockers,
			Concerns:          deref(r.Concerns),
			Improvements:      deref(r.Improvements),
			Priorities:        deref(r.Priorities),
			CreatedAt:         r.CreatedAt.Format(time.RFC3339),
		})
	}

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal csv: %w", err)
	}
	return out, nil
}

var xlsxHeaders = []string{
	"Report ID", "Name", "Team", "Week", "Year", "Workload",
	"Completed", "Not completed", "Completion %", "Blockers",
	"Concerns", "Improvements", "Priorities", "Created",
}

// ExportXLSX renders the filtered reports as an Excel workbook with a
// summary sheet and a task detail sheet.
func (s *Service) ExportXLSX(ctx context.Context, filter reports.Filter) ([]byte, error) {
	list, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const summary = "Reports"
	f.SetSheetName("Sheet1", summary)
	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(summary, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}
	for i, r := range list {
		blockers := "no"
		if r.HasBlockers {
			blockers = "yes"
		}
		row := []any{
			r.ID, r.UserName, r.Team, r.WeekNumber, r.Year, r.Workload,
			r.TasksCompleted, r.TasksNotCompleted, r.CompletionRate, blockers,
			deref(r.Concerns), deref(r.Improvements), deref(r.Priorities),
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	const tasks = "Tasks"
	if _, err := f.NewSheet(tasks); err != nil {
		return nil, fmt.Errorf("failed to create task sheet: %w", err)
	}
	taskHeaders := []any{"Report ID", "Name", "Status", "Title", "Project", "Hours", "Reason", "ETA", "Blocker"}
	if err := f.SetSheetRow(tasks, "A1", &taskHeaders); err != nil {
		return nil, fmt.Errorf("failed to write task header: %w", err)
	}
	line := 2
	for _, r := range list {
		for _, t := range r.CompletedTasks {
			row := []any{r.ID, r.UserName, "completed", t.Title, t.Project, t.Hours, "", "", ""}
			cell, _ := excelize.CoordinatesToCellName(1, line)
			if err := f.SetSheetRow(tasks, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write task row: %w", err)
			}
			line++
		}
		for _, t := range r.NotCompletedTasks {
			eta := t.ETARaw
			if t.ETA != nil {
				eta = t.ETA.Format("2006-01-02")
			}
			row := []any{r.ID, r.UserName, "not completed", t.Title, "", "", t.Reason, eta, t.Blocker}
			cell, _ := excelize.CoordinatesToCellName(1, line)
			if err := f.SetSheetRow(tasks, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write task row: %w", err)
			}
			line++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename builds a download name like reports_w09_2026.csv.
func ExportFilename(filter reports.Filter, ext string) string {
	var b strings.Builder
	b.WriteString("reports")
	if filter.Team != "" {
		fmt.Fprintf(&b, "_%s", strings.ToLower(filter.Team))
	}
	if filter.WeekNumber != nil {
		fmt.Fprintf(&b, "_w%02d", *filter.WeekNumber)
	}
	if filter.Year != nil {
		fmt.Fprintf(&b, "_%d", *filter.Year)
	}
	b.WriteString(ext)
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
