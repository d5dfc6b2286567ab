package stock

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/cyp0633/stockgen/recurrence"
)

// Non-standard properties carrying the booking data a plain calendar
// client would otherwise drop.
const (
	propPriceCategory = "X-STOCKGEN-PRICE-CATEGORY"
	propQuantity      = "X-STOCKGEN-QUANTITY"
	propBookingCutoff = "X-STOCKGEN-BOOKING-CUTOFF"
)

// EncodeCalendar renders a generation run as an iCalendar object: one
// VEVENT per instance, plus the offer's RRULE on the first event of each
// series so calendar tooling can recognize the recurrence. Summary becomes
// each event's SUMMARY property.
func EncodeCalendar(rule recurrence.Rule, summary string, instances []Instance) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, "-//stockgen//Stock Generator//EN")
	cal.Props.SetText(ical.PropVersion, "2.0")

	rruleStr, err := recurrence.RRuleString(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to express rule as RRULE: %w", err)
	}

	for i, instance := range instances {
		event := ical.NewComponent(ical.CompEvent)
		event.Props.SetText(ical.PropUID, uuid.NewString())
		if summary != "" {
			event.Props.SetText(ical.PropSummary, summary)
		}
		event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
		event.Props.SetDateTime(ical.PropDateTimeStart, instance.StartsAt())

		// Only the first instance carries the RRULE; repeating it on every
		// expanded occurrence would describe each as its own series.
		if i == 0 {
			event.Props.SetText(ical.PropRecurrenceRule, rruleStr)
		}

		event.Props.SetText(propPriceCategory, instance.PriceCategory.String())
		if qty, ok := instance.Quantity.Get(); ok {
			event.Props.SetText(propQuantity, strconv.Itoa(qty))
		} else {
			event.Props.SetText(propQuantity, "unlimited")
		}
		if cutoff, ok := instance.BookingCutoff.Get(); ok {
			event.Props.SetDateTime(propBookingCutoff, cutoff)
		}

		cal.Children = append(cal.Children, event)
	}

	return cal, nil
}

// EncodeICS serializes the calendar produced by EncodeCalendar to its wire
// form.
func EncodeICS(rule recurrence.Rule, summary string, instances []Instance) ([]byte, error) {
	cal, err := EncodeCalendar(rule, summary, instances)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}
