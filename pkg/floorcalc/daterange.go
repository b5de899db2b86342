package floorcalc

import "time"

const dayOnly = "2006-01-02"

// ParseDate parses a date-like string. Plain YYYY-MM-DD values are built
// from components in the local zone so the calendar day never shifts by a
// timezone offset; anything else goes through RFC3339.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.ParseInLocation(dayOnly, s, time.Local); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// PlannedDays returns the day-of-month numbers of the target month covered
// by the [startStr, endStr] range, ascending and without duplicates.
// Unparseable bounds or a range that misses the month entirely yield nil.
func PlannedDays(startStr, endStr string, year int, month time.Month) []int {
	start, ok := ParseDate(startStr)
	if !ok {
		return nil
	}
	end, ok := ParseDate(endStr)
	if !ok {
		return nil
	}

	// Normalize everything to local midnight so a timestamped end bound
	// cannot truncate the final day of the range.
	start = midnight(start.In(time.Local))
	end = midnight(end.In(time.Local))

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, -1)

	if start.Before(monthStart) {
		start = monthStart
	}
	if end.After(monthEnd) {
		end = monthEnd
	}
	if start.After(end) {
		return nil
	}

	var days []int
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Day())
	}
	return days
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
