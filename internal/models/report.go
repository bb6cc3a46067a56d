// internal/models/report.go
package models

// Schema versions are embedded in both cache keys and cached payloads.
// Bump whenever the shape of the corresponding artifact changes so that
// entries written by older code are never served.
const (
	StatsSchemaVersion    = 2
	CalendarSchemaVersion = 2
)

// SummaryTotals is the headline block of a stats report.
type SummaryTotals struct {
	TotalTasksCompleted int     `json:"total_tasks_completed"`
	TasksDueInRange     int     `json:"tasks_due_in_range"`
	CompletionRate      float64 `json:"completion_rate"`
	CalmDays            int     `json:"calm_days"`
	HighSeverityDays    int     `json:"high_severity_days"`
	AvgPainLevel        float64 `json:"avg_pain_level"`
	AvgFatigueLevel     float64 `json:"avg_fatigue_level"`
	CurrentStreak       int     `json:"current_streak"`
}

// TaskCompletionDay is one bucket of the per-day completion history.
type TaskCompletionDay struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// StatsReport is the derived summary artifact. Not authoritative:
// reconstructible from the underlying facts at any time.
type StatsReport struct {
	SchemaVersion int           `json:"schema_version"`
	RangeDays     int           `json:"range_days"` // effective (post-gating) range
	Summary       SummaryTotals `json:"summary"`
	History       StatsHistory  `json:"history"`
}

type StatsHistory struct {
	Health []HealthDay         `json:"health"`
	Tasks  []TaskCompletionDay `json:"tasks"`
}

// CalendarDay is one cell of the heat-map calendar.
type CalendarDay struct {
	DayType           *DayType `json:"day_type"`
	PainLevel         *int     `json:"pain_level"`
	TotalTasks        int      `json:"total_tasks"`
	CompletionPercent int      `json:"completion_percent"`
}

// CalendarView is the derived calendar artifact, keyed by the stored
// naive calendar date (YYYY-MM-DD).
type CalendarView struct {
	SchemaVersion int                    `json:"schema_version"`
	Days          map[string]CalendarDay `json:"days"`
}
