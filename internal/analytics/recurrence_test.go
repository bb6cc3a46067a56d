package analytics

import (
	"testing"
	"time"

	"pace/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func TestIsDue(t *testing.T) {
	tests := []struct {
		name string
		task models.Task
		q    string
		want bool
	}{
		{
			name: "none matches its due date",
			task: models.Task{Recurrence: models.RecurrenceNone, DueDate: datePtr("2024-03-15")},
			q:    "2024-03-15",
			want: true,
		},
		{
			name: "none does not match another date",
			task: models.Task{Recurrence: models.RecurrenceNone, DueDate: datePtr("2024-03-15")},
			q:    "2024-03-16",
			want: false,
		},
		{
			name: "none completed matches completion date",
			task: models.Task{
				Recurrence:  models.RecurrenceNone,
				DueDate:     datePtr("2024-03-15"),
				IsCompleted: true,
				CompletedAt: datePtr("2024-03-20"),
			},
			q:    "2024-03-20",
			want: true,
		},
		{
			name: "none completed still matches original due date",
			task: models.Task{
				Recurrence:  models.RecurrenceNone,
				DueDate:     datePtr("2024-03-15"),
				IsCompleted: true,
				CompletedAt: datePtr("2024-03-20"),
			},
			q:    "2024-03-15",
			want: true,
		},
		{
			name: "none without any dates never matches",
			task: models.Task{Recurrence: models.RecurrenceNone},
			q:    "2024-03-15",
			want: false,
		},
		{
			name: "empty rule is treated as none",
			task: models.Task{DueDate: datePtr("2024-03-15")},
			q:    "2024-03-15",
			want: true,
		},
		{
			name: "daily matches any day at or after anchor",
			task: models.Task{Recurrence: models.RecurrenceDaily, DueDate: datePtr("2024-01-01")},
			q:    "2024-03-15",
			want: true,
		},
		{
			name: "daily matches the anchor day itself",
			task: models.Task{Recurrence: models.RecurrenceDaily, DueDate: datePtr("2024-01-01")},
			q:    "2024-01-01",
			want: true,
		},
		{
			name: "daily never matches before the anchor",
			task: models.Task{Recurrence: models.RecurrenceDaily, DueDate: datePtr("2024-01-01")},
			q:    "2023-12-31",
			want: false,
		},
		{
			name: "daily completed terminates the series",
			task: models.Task{
				Recurrence:  models.RecurrenceDaily,
				DueDate:     datePtr("2024-01-01"),
				IsCompleted: true,
				CompletedAt: datePtr("2024-02-01"),
			},
			q:    "2024-03-15",
			want: false,
		},
		{
			name: "weekly matches the same weekday",
			task: models.Task{Recurrence: models.RecurrenceWeekly, DueDate: datePtr("2024-01-01")}, // Monday
			q:    "2024-01-15",                                                                     // Monday
			want: true,
		},
		{
			name: "weekly rejects other weekdays",
			task: models.Task{Recurrence: models.RecurrenceWeekly, DueDate: datePtr("2024-01-01")},
			q:    "2024-01-16", // Tuesday
			want: false,
		},
		{
			name: "monthly matches the same day of month",
			task: models.Task{Recurrence: models.RecurrenceMonthly, DueDate: datePtr("2024-01-10")},
			q:    "2024-04-10",
			want: true,
		},
		{
			name: "monthly day 31 never matches february",
			task: models.Task{Recurrence: models.RecurrenceMonthly, DueDate: datePtr("2024-01-31")},
			q:    "2024-02-29",
			want: false,
		},
		{
			name: "yearly matches the anniversary",
			task: models.Task{Recurrence: models.RecurrenceYearly, DueDate: datePtr("2023-06-05")},
			q:    "2024-06-05",
			want: true,
		},
		{
			name: "yearly rejects same day in a different month",
			task: models.Task{Recurrence: models.RecurrenceYearly, DueDate: datePtr("2023-06-05")},
			q:    "2024-07-05",
			want: false,
		},
		{
			name: "recurring without anchor never matches",
			task: models.Task{Recurrence: models.RecurrenceDaily},
			q:    "2024-03-15",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsDue(&tt.task, date(tt.q))
			if got != tt.want {
				t.Errorf("IsDue(%s, %s) = %v, want %v", tt.task.Recurrence, tt.q, got, tt.want)
			}
		})
	}
}

// Once a recurring series is completed it must stay invisible for every
// future date, regardless of rule.
func TestIsDueSeriesTermination(t *testing.T) {
	rules := []models.Recurrence{
		models.RecurrenceDaily,
		models.RecurrenceWeekly,
		models.RecurrenceMonthly,
		models.RecurrenceYearly,
	}
	anchor := datePtr("2024-01-01")
	completed := datePtr("2024-02-01")

	for _, rule := range rules {
		task := models.Task{
			Recurrence:  rule,
			DueDate:     anchor,
			IsCompleted: true,
			CompletedAt: completed,
		}
		// Walk two years forward from the anchor.
		for d := date("2024-01-01"); d.Before(date("2026-01-01")); d = d.AddDate(0, 0, 7) {
			if IsDue(&task, d) {
				t.Fatalf("completed %s series still due on %s", rule, d.Format("2006-01-02"))
			}
		}
	}
}

func TestIsDueIgnoresTimeOfDay(t *testing.T) {
	due := time.Date(2024, 3, 15, 23, 30, 0, 0, time.FixedZone("X", 5*3600))
	task := models.Task{Recurrence: models.RecurrenceNone, DueDate: &due}
	q := time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC)
	if !IsDue(&task, q) {
		t.Error("expected due date match to be day-granular")
	}
}
