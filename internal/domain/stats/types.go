package stats

// ReportBrief is a compact report reference used in rankings.
type ReportBrief struct {
	ReportID       int64  `json:"reportId"`
	UserID         int64  `json:"userId"`
	UserName       string `json:"userName"`
	CompletionRate int    `json:"completionRate"`
	Workload       int    `json:"workload"`
	HasBlockers    bool   `json:"hasBlockers"`
}

// TeamWeekStats aggregates one team's reports for one ISO week.
type TeamWeekStats struct {
	Team              string        `json:"team"`
	WeekNumber        int           `json:"weekNumber"`
	Year              int           `json:"year"`
	ReportCount       int           `json:"reportCount"`
	AvgWorkload       float64       `json:"avgWorkload"`
	AvgCompletionRate float64       `json:"avgCompletionRate"`
	BlockerCount      int           `json:"blockerCount"`
	OverdueTasks      int           `json:"overdueTasks"`
	TopPerformers     []ReportBrief `json:"topPerformers"`
	ProblemReports    []ReportBrief `json:"problemReports"`
}

// TrendPoint is one week of a user's reporting history.
type TrendPoint struct {
	WeekNumber     int  `json:"weekNumber"`
	Year           int  `json:"year"`
	Workload       int  `json:"workload"`
	CompletionRate int  `json:"completionRate"`
	TasksCompleted int  `json:"tasksCompleted"`
	HasBlockers    bool `json:"hasBlockers"`
}

// UserStats summarises a user's recent reports.
type UserStats struct {
	UserID            int64        `json:"userId"`
	ReportCount       int          `json:"reportCount"`
	AvgWorkload       float64      `json:"avgWorkload"`
	AvgCompletionRate float64      `json:"avgCompletionRate"`
	Trend             []TrendPoint `json:"trend"`
}

// ReasonCount is a recurring not-completed reason with its frequency.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// PeriodStats aggregates all reports inside a week range of one year.
type PeriodStats struct {
	Year              int           `json:"year"`
	FromWeek          int           `json:"fromWeek"`
	ToWeek            int           `json:"toWeek"`
	ReportCount       int           `json:"reportCount"`
	AvgWorkload       float64       `json:"avgWorkload"`
	AvgCompletionRate float64       `json:"avgCompletionRate"`
	BlockerCount      int           `json:"blockerCount"`
	TopReasons        []ReasonCount `json:"topReasons"`
}

// OverallStats is the whole-system snapshot.
type OverallStats struct {
	Users             int     `json:"users"`
	Reports           int     `json:"reports"`
	TasksCompleted    int     `json:"tasksCompleted"`
	TasksNotCompleted int     `json:"tasksNotCompleted"`
	AvgCompletionRate float64 `json:"avgCompletionRate"`
}
