// Package stats computes team, user and period aggregates over the
// weekly reports.
package stats

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	userTrendWeeks    = 12
	topPerformerRate  = 90
	topPerformerLimit = 3
	problemRate       = 70
	problemWorkload   = 4
	problemLimit      = 5
	topReasonLimit    = 10

	// Reasons at most this far apart by edit distance are counted as
	// the same recurring reason.
	reasonDistance = 3
)

type source interface {
	teamWeekRows(ctx context.Context, team string, weekNumber, year int) ([]reportRow, error)
	userRows(ctx context.Context, userID int64, limit int) ([]reportRow, error)
	periodRows(ctx context.Context, year, fromWeek, toWeek int) ([]reportRow, error)
	overdueTaskCount(ctx context.Context, team string, weekNumber, year int, now time.Time) (int, error)
	periodReasons(ctx context.Context, year, fromWeek, toWeek int) ([]string, error)
	overall(ctx context.Context) (OverallStats, error)
}

// Service computes the aggregate views.
type Service struct {
	repo   source
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// TeamWeek aggregates a team's reports for one ISO week, including the
// best and the most troubled reports.
func (s *Service) TeamWeek(ctx context.Context, team string, weekNumber, year int) (*TeamWeekStats, error) {
	rows, err := s.repo.teamWeekRows(ctx, team, weekNumber, year)
	if err != nil {
		return nil, err
	}
	overdue, err := s.repo.overdueTaskCount(ctx, team, weekNumber, year, s.now())
	if err != nil {
		return nil, err
	}

	out := &TeamWeekStats{
		Team:           team,
		WeekNumber:     weekNumber,
		Year:           year,
		ReportCount:    len(rows),
		OverdueTasks:   overdue,
		TopPerformers:  []ReportBrief{},
		ProblemReports: []ReportBrief{},
	}
	if len(rows) == 0 {
		return out, nil
	}

	var workloadSum, rateSum int
	for _, r := range rows {
		workloadSum += r.Workload
		rateSum += r.CompletionRate
		if r.HasBlockers {
			out.BlockerCount++
		}
	}
	out.AvgWorkload = roundTo(float64(workloadSum)/float64(len(rows)), 1)
	out.AvgCompletionRate = roundTo(float64(rateSum)/float64(len(rows)), 1)
	out.TopPerformers = topPerformers(rows)
	out.ProblemReports = problemReports(rows)
	return out, nil
}

// User summarises a user's last weeks of reporting, newest first.
func (s *Service) User(ctx context.Context, userID int64) (*UserStats, error) {
	rows, err := s.repo.userRows(ctx, userID, userTrendWeeks)
	if err != nil {
		return nil, err
	}

	out := &UserStats{UserID: userID, ReportCount: len(rows), Trend: []TrendPoint{}}
	if len(rows) == 0 {
		return out, nil
	}

	var workloadSum, rateSum int
	for _, r := range rows {
		workloadSum += r.Workload
		rateSum += r.CompletionRate
		out.Trend = append(out.Trend, TrendPoint{
			WeekNumber:     r.WeekNumber,
			Year:           r.Year,
			Workload:       r.Workload,
			CompletionRate: r.CompletionRate,
			TasksCompleted: r.TasksCompleted,
			HasBlockers:    r.HasBlockers,
		})
	}
	out.AvgWorkload = roundTo(float64(workloadSum)/float64(len(rows)), 1)
	out.AvgCompletionRate = roundTo(float64(rateSum)/float64(len(rows)), 1)
	return out, nil
}

// Period aggregates every report in a week range of one year and surfaces
// the recurring not-completed reasons.
func (s *Service) Period(ctx context.Context, year, fromWeek, toWeek int) (*PeriodStats, error) {
	rows, err := s.repo.periodRows(ctx, year, fromWeek, toWeek)
	if err != nil {
		return nil, err
	}
	reasons, err := s.repo.periodReasons(ctx, year, fromWeek, toWeek)
	if err != nil {
		return nil, err
	}

	out := &PeriodStats{
		Year:        year,
		FromWeek:    fromWeek,
		ToWeek:      toWeek,
		ReportCount: len(rows),
		TopReasons:  topReasons(reasons),
	}
	if len(rows) == 0 {
		return out, nil
	}

	var workloadSum, rateSum int
	for _, r := range rows {
		workloadSum += r.Workload
		rateSum += r.CompletionRate
		if r.HasBlockers {
			out.BlockerCount++
		}
	}
	out.AvgWorkload = roundTo(float64(workloadSum)/float64(len(rows)), 1)
	out.AvgCompletionRate = roundTo(float64(rateSum)/float64(len(rows)), 1)
	return out, nil
}

// Overall returns the whole-system snapshot.
func (s *Service) Overall(ctx context.Context) (OverallStats, error) {
	o, err := s.repo.overall(ctx)
	if err != nil {
		return OverallStats{}, err
	}
	o.AvgCompletionRate = roundTo(o.AvgCompletionRate, 1)
	return o, nil
}

// topPerformers picks the reports at or above the performer threshold.
// Rows arrive sorted by completion rate descending.
func topPerformers(rows []reportRow) []ReportBrief {
	out := []ReportBrief{}
	for _, r := range rows {
		if r.CompletionRate < topPerformerRate {
			continue
		}
		out = append(out, brief(r))
		if len(out) == topPerformerLimit {
			break
		}
	}
	return out
}

// problemReports picks reports that need a manager's attention: low
// completion, heavy workload or an explicit blocker.
func problemReports(rows []reportRow) []ReportBrief {
	problems := []reportRow{}
	for _, r := range rows {
		if r.CompletionRate < problemRate || r.Workload >= problemWorkload || r.HasBlockers {
			problems = append(problems, r)
		}
	}
	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].CompletionRate < problems[j].CompletionRate
	})
	out := []ReportBrief{}
	for _, r := range problems {
		out = append(out, brief(r))
		if len(out) == problemLimit {
			break
		}
	}
	return out
}

// topReasons counts recurring reasons case-insensitively, folding
// near-duplicates into the first spelling seen.
func topReasons(reasons []string) []ReasonCount {
	keys := []string{}
	counts := map[string]int{}
	for _, reason := range reasons {
		norm := strings.ToLower(strings.TrimSpace(reason))
		if norm == "" {
			continue
		}
		key := norm
		for _, existing := range keys {
			if norm == existing || fuzzy.LevenshteinDistance(norm, existing) <= reasonDistance {
				key = existing
				break
			}
		}
		if _, ok := counts[key]; !ok {
			keys = append(keys, key)
		}
		counts[key]++
	}

	out := make([]ReasonCount, 0, len(counts))
	for _, key := range keys {
		out = append(out, ReasonCount{Reason: key, Count: counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > topReasonLimit {
		out = out[:topReasonLimit]
	}
	return out
}

func brief(r reportRow) ReportBrief {
	return ReportBrief{
		ReportID:       r.ReportID,
		UserID:         r.UserID,
		UserName:       r.UserName,
		CompletionRate: r.CompletionRate,
		Workload:       r.Workload,
		HasBlockers:    r.HasBlockers,
	}
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow10(digits)
	return math.Round(v*scale) / scale
}
