package recurrence

import (
	"fmt"
	"strings"
	"time"
)

// ViolationCode identifies one structured validation failure. Codes are
// values, not user-visible text; callers translate them to messages.
type ViolationCode string

// Rule-level violation codes.
const (
	// NoRuleKind: the rule kind is unset or unknown.
	NoRuleKind ViolationCode = "no-rule-kind"
	// MissingStartDate: the start date is absent or in the past relative
	// to the injected generation time.
	MissingStartDate ViolationCode = "missing-start-date"
	// EndBeforeStart: the end date is absent or earlier than the start
	// date (only rules other than "once" require an end date).
	EndBeforeStart ViolationCode = "end-before-start"
	// NoWeekdaySelected: a weekly rule selects no weekday.
	NoWeekdaySelected ViolationCode = "no-weekday-selected"
	// NoMonthlyMode: a monthly rule carries no monthly mode.
	NoMonthlyMode ViolationCode = "no-monthly-mode"
	// LastWeekdayMismatch: a monthly rule requests last-weekday mode but
	// its start date is not the last occurrence of its weekday in its
	// month. Treated as invalid input rather than silently reinterpreted.
	LastWeekdayMismatch ViolationCode = "last-weekday-mismatch"
)

// Violation is a single structured validation failure.
type Violation struct {
	Code  ViolationCode
	Field string
}

func (v Violation) Error() string {
	if v.Field == "" {
		return string(v.Code)
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Code)
}

// Violations aggregates every failure found in one validation pass, so a
// caller can report all of them at once.
type Violations []Violation

func (vs Violations) Error() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Error()
	}
	return "invalid recurrence input: " + strings.Join(parts, "; ")
}

// Has reports whether the list contains a violation with the given code.
func (vs Violations) Has(code ViolationCode) bool {
	for _, v := range vs {
		if v.Code == code {
			return true
		}
	}
	return false
}

// ValidateRule checks a rule against the injected generation time and
// returns every violation found, never stopping at the first one. A nil
// result means the rule may be expanded.
func ValidateRule(rule Rule, now time.Time) Violations {
	var vs Violations

	switch rule.Kind {
	case KindOnce, KindDaily, KindWeekly, KindMonthly:
	default:
		vs = append(vs, Violation{Code: NoRuleKind, Field: "kind"})
	}

	if rule.StartDate.IsZero() || rule.StartDate.Before(DateOf(now)) {
		vs = append(vs, Violation{Code: MissingStartDate, Field: "startDate"})
	}

	// "Once" has no end date of its own; everything else needs one at or
	// after the start.
	if rule.Kind != KindOnce && rule.Kind != KindUnspecified {
		if rule.EndDate.IsZero() || rule.EndDate.Before(rule.StartDate) {
			vs = append(vs, Violation{Code: EndBeforeStart, Field: "endDate"})
		}
	}

	if rule.Kind == KindWeekly && len(rule.Weekdays) == 0 {
		vs = append(vs, Violation{Code: NoWeekdaySelected, Field: "weekdays"})
	}

	if rule.Kind == KindMonthly {
		switch rule.MonthlyMode {
		case FixedDayOfMonth, NthWeekday:
		case LastWeekday:
			if !rule.StartDate.IsZero() && !LastWeekdayAvailable(rule.StartDate) {
				vs = append(vs, Violation{Code: LastWeekdayMismatch, Field: "monthlyMode"})
			}
		default:
			vs = append(vs, Violation{Code: NoMonthlyMode, Field: "monthlyMode"})
		}
	}

	return vs
}
