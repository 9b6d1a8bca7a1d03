package attendance

import "time"

// CanonicalCheckIn pins a check-in timestamp to 12:00 UTC of its calendar
// day, so equality on check_in_date is equality on the day and range queries
// never straddle a boundary.
func CanonicalCheckIn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC)
}

// DayRange returns the [from, to) window covering one calendar day.
func DayRange(day time.Time) (time.Time, time.Time) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}

// WeekRange returns the Sunday and Saturday bounding the week that contains
// today. Taking today as an argument keeps the derivation deterministic in
// tests across month and year boundaries.
func WeekRange(today time.Time) (time.Time, time.Time) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	sunday := day.AddDate(0, 0, -int(day.Weekday()))
	saturday := sunday.AddDate(0, 0, 6)
	return sunday, saturday
}
