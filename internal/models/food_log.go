package models

import "time"

// FoodLog is a single journaled meal or snack.
type FoodLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Name      string    `json:"name"`
	Quantity  string    `json:"quantity"`
	Calories  int       `json:"calories"`
	Time      *string   `json:"time,omitempty"` // HH:MM
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
