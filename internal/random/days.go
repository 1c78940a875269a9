// ABOUTME: Calendar-day arithmetic for rest-day scheduling.
// ABOUTME: Differences ignore time of day by truncating to midnight.
package random

import "time"

// DaysDifference counts calendar-day boundaries between earlier and later,
// both read as wall-clock dates in later's location. Negative when later
// precedes earlier.
func DaysDifference(earlier, later time.Time) int {
	a := civilDate(earlier.In(later.Location()))
	b := civilDate(later)
	return int(b.Sub(a).Hours() / 24)
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// civilDate maps t's wall-clock date onto UTC midnight so that day
// arithmetic is unaffected by daylight saving shifts.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
