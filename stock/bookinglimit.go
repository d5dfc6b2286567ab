package stock

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"
)

// LimitError reports a booking cutoff that would already be in the past at
// generation time. The engine surfaces the condition instead of silently
// clamping; the caller decides whether to clamp to "now" or reject.
type LimitError struct {
	Instance Instance
	Cutoff   time.Time
}

func (e LimitError) Error() string {
	return fmt.Sprintf("booking cutoff %s for instance at %s is in the past",
		e.Cutoff.Format(time.RFC3339), e.Instance.StartsAt().Format(time.RFC3339))
}

// LimitErrors aggregates every past-cutoff instance found in one
// generation pass.
type LimitErrors []LimitError

func (es LimitErrors) Error() string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return "negative booking limits: " + strings.Join(parts, "; ")
}

// BookingCutoff derives the booking deadline for one instance: its date
// minus the limit's day count, at the instance's own time-of-day. Two slots
// on the same date therefore close at different moments. A None limit means
// no deadline at all.
func BookingCutoff(date time.Time, slot TimeSlot, limit mo.Option[int]) mo.Option[time.Time] {
	days, ok := limit.Get()
	if !ok {
		return mo.None[time.Time]()
	}
	return mo.Some(slot.At(date.AddDate(0, 0, -days)))
}

// applyCutoffs fills in the booking cutoff of every instance and collects a
// LimitError for each cutoff that falls before the injected "now". It
// never stops early; the caller gets either all instances or all errors.
func applyCutoffs(instances []Instance, limit mo.Option[int], now time.Time) ([]Instance, LimitErrors) {
	var errs LimitErrors
	for i := range instances {
		cutoff := BookingCutoff(instances[i].Date, instances[i].Slot, limit)
		instances[i].BookingCutoff = cutoff
		if at, ok := cutoff.Get(); ok && at.Before(now) {
			errs = append(errs, LimitError{Instance: instances[i], Cutoff: at})
		}
	}
	return instances, errs
}
