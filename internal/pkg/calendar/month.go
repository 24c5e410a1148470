package calendar

import (
	"time"
)

const dateLayout = "2006-01-02"

// Month identifies one calendar month. Month is 1-12.
type Month struct {
	Year  int
	Month int
}

// First returns the first day of the month at midnight in loc.
func (m Month) First(loc *time.Location) time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, loc)
}

// Last returns the last day of the month at midnight in loc.
func (m Month) Last(loc *time.Location) time.Time {
	return m.First(loc).AddDate(0, 1, -1)
}

// Range returns the inclusive first and last day keys (YYYY-MM-DD).
func (m Month) Range() (from string, to string) {
	return m.First(time.UTC).Format(dateLayout), m.Last(time.UTC).Format(dateLayout)
}

// Days returns every day of the month in order, at midnight in loc.
func (m Month) Days(loc *time.Location) []time.Time {
	first := m.First(loc)
	last := m.Last(loc)
	days := make([]time.Time, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
