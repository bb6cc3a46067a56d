package models

import "time"

// HealthMetric holds the per-day severity scores. One row per
// (user, date), upserted in place.
type HealthMetric struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	Date         string    `json:"date"` // YYYY-MM-DD
	PainLevel    int       `json:"pain_level"`
	FatigueLevel int       `json:"fatigue_level"`
	Mood         *string   `json:"mood,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HealthDay is the per-day slice of a metric row used in report history.
type HealthDay struct {
	Date         string `json:"date"` // YYYY-MM-DD
	PainLevel    int    `json:"pain_level"`
	FatigueLevel int    `json:"fatigue_level"`
}

// HealthAggregates are the range-scoped rollups for a summary report.
type HealthAggregates struct {
	HighSeverityDays int     `json:"high_severity_days"`
	CalmDays         int     `json:"calm_days"`
	AvgPainLevel     float64 `json:"avg_pain_level"`
	AvgFatigueLevel  float64 `json:"avg_fatigue_level"`
}
