package models

import "time"

type IntakeStatus string

const (
	IntakeTaken   IntakeStatus = "TAKEN"
	IntakeSkipped IntakeStatus = "SKIPPED"
)

// Medicine is a prescription with its scheduled intake times of day.
type Medicine struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Frequency string    `json:"frequency"` // e.g. DAILY
	Times     []string  `json:"times"`     // "08:00", "20:00", ... (JSONB in the store)
	CreatedAt time.Time `json:"created_at"`
}

// MedicineLog is one intake event for a scheduled slot.
type MedicineLog struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	MedicineID   string       `json:"medicine_id"`
	MedicineName string       `json:"medicine_name,omitempty"`
	Date         string       `json:"date"` // YYYY-MM-DD
	Time         string       `json:"time"` // HH:MM
	Status       IntakeStatus `json:"status"`
	TakenAt      time.Time    `json:"taken_at"`
}
