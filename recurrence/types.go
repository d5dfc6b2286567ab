// Package recurrence turns a compact recurrence rule into the explicit,
// ordered list of calendar dates it covers. Dates are date-only values
// carried as midnight-UTC time.Time, the same convention used for
// VALUE=DATE iCalendar properties.
package recurrence

import (
	"time"
)

// Kind is the top-level recurrence category of a rule.
type Kind int

const (
	// KindUnspecified indicates the rule kind is not set.
	KindUnspecified Kind = iota
	// KindOnce yields exactly the start date.
	KindOnce
	// KindDaily yields every date between start and end inclusive.
	KindDaily
	// KindWeekly yields every date in range whose weekday is selected.
	KindWeekly
	// KindMonthly yields one date per month according to the monthly mode.
	KindMonthly
)

func (k Kind) String() string {
	switch k {
	case KindOnce:
		return "once"
	case KindDaily:
		return "daily"
	case KindWeekly:
		return "weekly"
	case KindMonthly:
		return "monthly"
	default:
		return "unspecified"
	}
}

// MonthlyMode resolves the ambiguity of "repeats monthly": a fixed day
// number, the Nth occurrence of a weekday, or the last occurrence of a
// weekday. The concrete day number, N and weekday are always derived from
// the rule's start date, never stored separately.
type MonthlyMode int

const (
	// MonthlyModeUnspecified indicates the monthly mode is not set.
	MonthlyModeUnspecified MonthlyMode = iota
	// FixedDayOfMonth repeats on the same day-of-month as the start date.
	// Months without that day (e.g. the 31st in April) are skipped, not
	// clamped to the month's last day.
	FixedDayOfMonth
	// NthWeekday repeats on the Nth occurrence of the start date's weekday,
	// where N is the start date's own occurrence index in its month.
	NthWeekday
	// LastWeekday repeats on the last occurrence of the start date's
	// weekday in each month.
	LastWeekday
)

func (m MonthlyMode) String() string {
	switch m {
	case FixedDayOfMonth:
		return "fixed-day-of-month"
	case NthWeekday:
		return "nth-weekday"
	case LastWeekday:
		return "last-weekday"
	default:
		return "unspecified"
	}
}

// Rule is the validated, normalized description of which calendar dates a
// recurring event covers. It is a plain value: construct it once from user
// input, validate it, expand it, discard it.
type Rule struct {
	Kind Kind

	// StartDate is the first candidate date. Required for every kind.
	StartDate time.Time

	// EndDate is the last candidate date, inclusive. Ignored for KindOnce,
	// where it is implicitly equal to StartDate.
	EndDate time.Time

	// Weekdays selects the weekdays a KindWeekly rule includes. Only
	// meaningful for KindWeekly. Order and duplicates are irrelevant; the
	// expansion is strictly chronological either way.
	Weekdays []time.Weekday

	// MonthlyMode selects the monthly interpretation. Only meaningful for
	// KindMonthly.
	MonthlyMode MonthlyMode
}

// Date builds the midnight-UTC date value used throughout this package.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates an arbitrary instant to its midnight-UTC calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// end returns the effective inclusive end of the rule's date range.
func (r Rule) end() time.Time {
	if r.Kind == KindOnce {
		return r.StartDate
	}
	return r.EndDate
}

// DeriveNthWeekday returns the (occurrence index, weekday) pair a date
// implies for NthWeekday mode, e.g. the 3rd Tuesday of its month.
func DeriveNthWeekday(date time.Time) (n int, weekday time.Weekday) {
	return OccurrenceIndexInMonth(date), date.Weekday()
}

// LastWeekdayAvailable reports whether a date may anchor a LastWeekday
// rule, i.e. whether it falls on the last occurrence of its weekday in its
// month. The mode is only offered to users when this holds.
func LastWeekdayAvailable(date time.Time) bool {
	return IsLastOccurrenceOfWeekdayInMonth(date)
}

// weekdaySet returns the rule's weekday selection as a lookup set.
func (r Rule) weekdaySet() map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(r.Weekdays))
	for _, wd := range r.Weekdays {
		set[wd] = true
	}
	return set
}
