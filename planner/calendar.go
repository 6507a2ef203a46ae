package planner

import (
	"time"

	"github.com/sahilchouksey/studysavvy-api/model"
)

// dateKey identifies a calendar day in the per-date hours accumulator.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// normalizeDate truncates a timestamp to its calendar day. The planner has no
// concept smaller than a day.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// hoursForDay returns the declared study hours for the weekday of t.
// Lookup is by weekday name, so the same hours apply every week. With
// duplicate entries for a weekday the first match wins; a missing weekday
// means zero hours. The availability endpoint enforces uniqueness upstream.
func hoursForDay(available []model.AvailableTime, t time.Time) float64 {
	day := t.Weekday().String()
	for _, entry := range available {
		if entry.Day == day {
			return entry.Hours
		}
	}
	return 0
}

// nextStudyDay walks forward from cursor to the first day that still has
// capacity left, skipping zero-hour weekdays and already-full dates. It gives
// up once the cursor passes end, which bounds every generation run even when
// the requested hours can never fit. Returns the day found, the hours still
// free on it, and whether such a day exists.
func nextStudyDay(cursor, end time.Time, available []model.AvailableTime, scheduled map[string]float64) (time.Time, float64, bool) {
	for !cursor.After(end) {
		remaining := hoursForDay(available, cursor) - scheduled[dateKey(cursor)]
		if remaining > 0 {
			return cursor, remaining, true
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
	return cursor, 0, false
}
