// internal/analytics/streak.go
package analytics

import "time"

// Streak counts the consecutive days of activity ending at today or
// yesterday. The input must be sorted descending (most recent first) and
// deduplicated; callers cap it at a bounded lookback window.
//
// A streak is live only while its most recent day is today or yesterday;
// anything older returns 0 immediately, stale counts are never carried.
func Streak(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	day := DateOnly(today)
	yesterday := day.AddDate(0, 0, -1)
	last := DateOnly(dates[0])

	if !last.Equal(day) && !last.Equal(yesterday) {
		return 0
	}

	streak := 1
	for i := 0; i < len(dates)-1; i++ {
		cur := DateOnly(dates[i])
		next := DateOnly(dates[i+1])
		gap := int(cur.Sub(next).Hours() / 24)
		switch {
		case gap == 1:
			streak++
		case gap == 0:
			// дубликат даты — продолжение без инкремента
			continue
		default:
			return streak
		}
	}
	return streak
}
