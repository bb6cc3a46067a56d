package models

import "time"

type DayType string

const (
	DayTypeNormal  DayType = "NORMAL"
	DayTypeFlareUp DayType = "FLARE_UP"
	DayTypeRest    DayType = "REST"
)

// DailyLog marks that the owner engaged with the system on a given day.
// One row per (user, date); streaks are computed from these dates alone.
type DailyLog struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"` // YYYY-MM-DD, naive calendar date
	DayType   *DayType  `json:"day_type,omitempty"`
	Mood      *string   `json:"mood,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DayHealth is a daily log joined with the same-day health metric,
// as consumed by the calendar merge.
type DayHealth struct {
	Date      string   `json:"date"` // YYYY-MM-DD
	DayType   *DayType `json:"day_type"`
	PainLevel *int     `json:"pain_level"`
}
