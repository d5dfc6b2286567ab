// Package stock combines expanded recurrence dates with time slots and
// price allocations into the concrete, individually bookable event
// instances ("stocks") a venue sells. It is a pure computation layer: the
// caller injects the current time, receives the full instance list or the
// full error list, and owns persistence.
package stock

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

// TimeSlot is a time-of-day with no date component, e.g. 20:30. One
// recurrence may carry several, order-preserving and duplicate-free.
type TimeSlot struct {
	Hour   int
	Minute int
}

// ParseTimeSlot parses a "HH:MM" string into a TimeSlot.
func ParseTimeSlot(s string) (TimeSlot, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q: %w", s, err)
	}
	return TimeSlot{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d", ts.Hour, ts.Minute)
}

// At combines the slot with a calendar date into a concrete UTC instant.
func (ts TimeSlot) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), ts.Hour, ts.Minute, 0, 0, time.UTC)
}

// PriceAllocation pairs a price category with a seat quantity. The category
// is an opaque reference owned by the offer-management layer; this package
// only carries it through. A None quantity means unlimited.
type PriceAllocation struct {
	PriceCategory uuid.UUID
	Quantity      mo.Option[int]
}

// BookingLimitDays wraps a booking-limit rule: booking closes n days before
// each instance's date (0 = same day). Use NoBookingLimit for "no limit".
func BookingLimitDays(n int) mo.Option[int] {
	return mo.Some(n)
}

// NoBookingLimit is the absent booking-limit rule.
func NoBookingLimit() mo.Option[int] {
	return mo.None[int]()
}

// Instance is one concrete bookable combination of date, time slot and
// price allocation. It carries no identity; the persistence layer assigns
// one when storing it.
type Instance struct {
	Date          time.Time
	Slot          TimeSlot
	PriceCategory uuid.UUID
	Quantity      mo.Option[int]

	// BookingCutoff is the instant after which the instance can no longer
	// be booked. None when the offer has no booking limit.
	BookingCutoff mo.Option[time.Time]
}

// StartsAt returns the instance's concrete start instant.
func (i Instance) StartsAt() time.Time {
	return i.Slot.At(i.Date)
}
