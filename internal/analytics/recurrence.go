// internal/analytics/recurrence.go
package analytics

import (
	"time"

	"pace/internal/models"
)

// DateOnly normalizes a timestamp to midnight UTC, keeping only the
// calendar day. All comparisons in this package work on day granularity.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// IsDue decides whether a task belongs to the given query date.
//
// Non-recurring tasks match the day they are due or the day they were
// completed. Recurring tasks match every occurrence of their series on
// or after the anchor (due) date until the series is completed: a
// recurring series has a single completion state, so marking it done
// terminates it for all future dates. There is no skip/snooze; a missed
// occurrence simply never materializes.
func IsDue(task *models.Task, queryDate time.Time) bool {
	q := DateOnly(queryDate)

	rule := task.Recurrence
	if rule == "" {
		rule = models.RecurrenceNone
	}

	if rule == models.RecurrenceNone {
		if task.DueDate != nil && SameDay(*task.DueDate, q) {
			return true
		}
		// завершённые задачи видны в день завершения
		if task.IsCompleted && task.CompletedAt != nil && SameDay(*task.CompletedAt, q) {
			return true
		}
		return false
	}

	// Recurring rules need an anchor and a live (uncompleted) series.
	if task.DueDate == nil || task.IsCompleted {
		return false
	}
	anchor := DateOnly(*task.DueDate)
	if anchor.After(q) {
		return false
	}

	switch rule {
	case models.RecurrenceDaily:
		return true
	case models.RecurrenceWeekly:
		return anchor.Weekday() == q.Weekday()
	case models.RecurrenceMonthly:
		// Months without the anchor's day-of-month never match
		// (day 31 against February simply yields no occurrence).
		return anchor.Day() == q.Day()
	case models.RecurrenceYearly:
		return anchor.Month() == q.Month() && anchor.Day() == q.Day()
	default:
		return false
	}
}
