// utils/dates.go
package utils

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses a calendar date. Callers wrap a failure in
// NewDateFormatError so malformed dates are distinguishable from other
// validation problems.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
