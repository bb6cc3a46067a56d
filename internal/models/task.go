// internal/models/task.go
package models

import "time"

// Recurrence defines how often a task repeats. The due date acts as the
// anchor of the series; a recurring series carries a single completion
// state, there is no per-occurrence history.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "NONE"
	RecurrenceDaily   Recurrence = "DAILY"
	RecurrenceWeekly  Recurrence = "WEEKLY"
	RecurrenceMonthly Recurrence = "MONTHLY"
	RecurrenceYearly  Recurrence = "YEARLY"
)

type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "LOW"
	EnergyMedium EnergyLevel = "MEDIUM"
	EnergyHigh   EnergyLevel = "HIGH"
)

// Task represents a single todo item. CompletedAt is non-nil iff
// IsCompleted is true: it is set the moment completion flips true and
// cleared when it flips back.
type Task struct {
	ID          int64       `json:"id"`
	UserID      string      `json:"user_id"`
	Title       string      `json:"title"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	IsCompleted bool        `json:"is_completed"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	Recurrence  Recurrence  `json:"recurrence"`
	EnergyLevel EnergyLevel `json:"energy_level"`
	Progress    int         `json:"progress"`
	Feedback    string      `json:"feedback"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	Completed *bool // nil = any
}

// TaskUpdate carries a partial update; nil fields keep the stored value.
type TaskUpdate struct {
	Title       *string      `json:"title"`
	IsCompleted *bool        `json:"is_completed"`
	DueDate     *time.Time   `json:"due_date"`
	Recurrence  *Recurrence  `json:"recurrence"`
	EnergyLevel *EnergyLevel `json:"energy_level"`
	Progress    *int         `json:"progress"`
	Feedback    *string      `json:"feedback"`
}

// TaskDayStat is a per-due-date rollup used by the calendar merge.
type TaskDayStat struct {
	Date           string `json:"date"` // YYYY-MM-DD
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
}
