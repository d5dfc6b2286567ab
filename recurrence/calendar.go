package recurrence

import "time"

// Pure calendar arithmetic over midnight-UTC dates. No time zones, no
// time-of-day, no error paths: inputs are always well-formed dates.

// OccurrenceIndexInMonth returns how many times the date's weekday has
// occurred in its month up to and including the date itself (1st, 2nd, ...).
func OccurrenceIndexInMonth(date time.Time) int {
	return (date.Day()-1)/7 + 1
}

// IsLastOccurrenceOfWeekdayInMonth reports whether the date is the last
// occurrence of its weekday in its month, i.e. adding 7 days leaves the
// month.
func IsLastOccurrenceOfWeekdayInMonth(date time.Time) bool {
	next := date.AddDate(0, 0, 7)
	return next.Month() != date.Month() || next.Year() != date.Year()
}

// AddDays returns the date n calendar days later (or earlier for negative
// n). Month boundaries and leap years are handled by real calendar
// arithmetic.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// AddMonths returns the date n months later, clamping the day to the target
// month's length: Jan 31 + 1 month is the last day of February, never an
// invalid or spilled-over date. Note that rule expansion for
// FixedDayOfMonth deliberately does NOT use this clamping; it skips short
// months instead.
func AddMonths(date time.Time, n int) time.Time {
	year, month, day := date.Date()
	firstOfTarget := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := DaysIn(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NthWeekdayOfMonth returns the nth occurrence (1-based) of a weekday in
// the given month, and false when the month has fewer than n such
// occurrences.
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) (time.Time, bool) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	day := 1 + offset + (n-1)*7
	if day > DaysIn(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// LastWeekdayOfMonth returns the last occurrence of a weekday in the given
// month. It always exists.
func LastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) time.Time {
	last := time.Date(year, month, DaysIn(year, month), 0, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset)
}
