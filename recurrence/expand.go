package recurrence

import "time"

// ExpandDates expands a validated rule into the full ascending list of
// calendar dates it covers, both range endpoints inclusive. The result is a
// fresh slice built by a pure function: re-invoking on the same rule yields
// the same dates, which is how callers restart the sequence (validate and
// count on a first pass, persist on a second).
//
// Expansion assumes the rule already passed ValidateRule; an unknown kind
// yields nil.
func ExpandDates(rule Rule) []time.Time {
	switch rule.Kind {
	case KindOnce:
		return []time.Time{rule.StartDate}
	case KindDaily:
		return expandDaily(rule.StartDate, rule.end())
	case KindWeekly:
		return expandWeekly(rule.StartDate, rule.end(), rule.weekdaySet())
	case KindMonthly:
		return expandMonthly(rule)
	default:
		return nil
	}
}

func expandDaily(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = AddDays(d, 1) {
		dates = append(dates, d)
	}
	return dates
}

func expandWeekly(start, end time.Time, weekdays map[time.Weekday]bool) []time.Time {
	// A day-by-day walk keeps the output strictly chronological instead of
	// grouped by weekday.
	var dates []time.Time
	for d := start; !d.After(end); d = AddDays(d, 1) {
		if weekdays[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates
}

func expandMonthly(rule Rule) []time.Time {
	start, end := rule.StartDate, rule.end()
	n, weekday := DeriveNthWeekday(start)

	var dates []time.Time
	// Walk month by month from the start date's month. The candidate for a
	// month may not exist (short month, too few weekday occurrences); such
	// months are skipped entirely rather than clamped.
	for year, month := start.Year(), start.Month(); ; {
		var candidate time.Time
		ok := true
		switch rule.MonthlyMode {
		case FixedDayOfMonth:
			if day := start.Day(); day <= DaysIn(year, month) {
				candidate = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			} else {
				ok = false
			}
		case NthWeekday:
			candidate, ok = NthWeekdayOfMonth(year, month, weekday, n)
		case LastWeekday:
			candidate = LastWeekdayOfMonth(year, month, weekday)
		default:
			return nil
		}

		if ok && candidate.After(end) {
			break
		}
		if ok && !candidate.Before(start) {
			dates = append(dates, candidate)
		}

		// First of the next month; also the loop's only termination check
		// for months whose candidate was skipped.
		next := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
		if next.After(end) {
			break
		}
		year, month = next.Year(), next.Month()
	}
	return dates
}
