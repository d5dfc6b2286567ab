package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Bridge to RFC 5545 recurrence rules. Expansion itself never goes through
// rrule-go (the fixed-day skip semantics and inclusive ranges are this
// package's own contract), but calendar tooling downstream speaks RRULE, so
// every rule can be exported as one.

// rruleWeekdays maps time.Weekday onto rrule-go's weekday values.
var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// RRule converts a validated rule into the equivalent RFC 5545 recurrence
// rule, DTSTART and UNTIL included.
func RRule(rule Rule) (*rrule.RRule, error) {
	opt := rrule.ROption{
		Dtstart: rule.StartDate,
		Until:   rule.end(),
	}

	switch rule.Kind {
	case KindOnce:
		opt.Freq = rrule.DAILY
		opt.Count = 1
	case KindDaily:
		opt.Freq = rrule.DAILY
	case KindWeekly:
		opt.Freq = rrule.WEEKLY
		for _, wd := range rule.Weekdays {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[wd])
		}
	case KindMonthly:
		opt.Freq = rrule.MONTHLY
		n, weekday := DeriveNthWeekday(rule.StartDate)
		rwd := rruleWeekdays[weekday]
		switch rule.MonthlyMode {
		case FixedDayOfMonth:
			opt.Bymonthday = []int{rule.StartDate.Day()}
		case NthWeekday:
			opt.Byweekday = []rrule.Weekday{rwd.Nth(n)}
		case LastWeekday:
			opt.Byweekday = []rrule.Weekday{rwd.Nth(-1)}
		default:
			return nil, fmt.Errorf("cannot express monthly mode %q as an RRULE", rule.MonthlyMode)
		}
	default:
		return nil, fmt.Errorf("cannot express rule kind %q as an RRULE", rule.Kind)
	}

	return rrule.NewRRule(opt)
}

// RRuleString returns the rule's bare RFC 5545 RRULE value (no DTSTART
// line), e.g. "FREQ=WEEKLY;UNTIL=20240115T000000Z;BYDAY=MO,TH", suitable
// for an iCalendar RRULE property.
func RRuleString(rule Rule) (string, error) {
	r, err := RRule(rule)
	if err != nil {
		return "", err
	}
	return r.OrigOptions.RRuleString(), nil
}
