// internal/analytics/calendar.go
package analytics

import (
	"math"

	"pace/internal/models"
)

// MergeCalendar outer-joins the per-day health facts with the per-day
// task rollups into one view keyed by the stored YYYY-MM-DD date. A date
// present in either source appears exactly once; days present in neither
// are never synthesized. Date strings are taken as stored — they are the
// owner's naive calendar dates and must not be routed through a timezone
// conversion.
func MergeCalendar(days []models.DayHealth, tasks []models.TaskDayStat) map[string]models.CalendarDay {
	out := make(map[string]models.CalendarDay, len(days)+len(tasks))

	for _, d := range days {
		out[d.Date] = models.CalendarDay{
			DayType:   d.DayType,
			PainLevel: d.PainLevel,
		}
	}

	for _, ts := range tasks {
		cell := out[ts.Date] // zero value when the day has no log/metric
		cell.TotalTasks = ts.TotalTasks
		cell.CompletionPercent = completionPercent(ts.CompletedTasks, ts.TotalTasks)
		out[ts.Date] = cell
	}

	return out
}

func completionPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
