package models

import "time"

// WeightLog holds one weigh-in per (user, date); later writes replace
// the stored value for the day.
type WeightLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}

// WeightStats are server-side aggregates over a weight history range.
type WeightStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}
