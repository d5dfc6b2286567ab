package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"gopkg.in/yaml.v3"

	"github.com/cyp0633/stockgen/recurrence"
	"github.com/cyp0633/stockgen/stock"
)

// offerFile is the YAML shape of an offer description.
type offerFile struct {
	Summary string `yaml:"summary"`

	Rule struct {
		Kind        string   `yaml:"kind"`         // once | daily | weekly | monthly
		Start       string   `yaml:"start"`        // 2006-01-02
		End         string   `yaml:"end"`          // 2006-01-02, unused for "once"
		Weekdays    []string `yaml:"weekdays"`     // weekly only
		MonthlyMode string   `yaml:"monthly_mode"` // monthly only
	} `yaml:"rule"`

	Slots []string `yaml:"slots"` // "HH:MM"

	Allocations []struct {
		PriceCategory string `yaml:"price_category"`
		// Quantity omitted or nil means unlimited.
		Quantity *int `yaml:"quantity"`
	} `yaml:"allocations"`

	// BookingLimitDays omitted means no booking limit.
	BookingLimitDays *int `yaml:"booking_limit_days"`
}

// Offer is the parsed, engine-ready offer description.
type Offer struct {
	Summary      string
	Rule         recurrence.Rule
	Slots        []stock.TimeSlot
	Allocations  []stock.PriceAllocation
	BookingLimit mo.Option[int]
}

var kindNames = map[string]recurrence.Kind{
	"once":    recurrence.KindOnce,
	"daily":   recurrence.KindDaily,
	"weekly":  recurrence.KindWeekly,
	"monthly": recurrence.KindMonthly,
}

var monthlyModeNames = map[string]recurrence.MonthlyMode{
	"fixed-day-of-month": recurrence.FixedDayOfMonth,
	"nth-weekday":        recurrence.NthWeekday,
	"last-weekday":       recurrence.LastWeekday,
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// LoadOffer reads and parses an offer description file. Structural errors
// (bad dates, unknown names) fail here; semantic validation is the
// engine's job.
func LoadOffer(path string) (*Offer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file offerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	offer := &Offer{Summary: file.Summary}

	if file.Rule.Kind != "" {
		kind, ok := kindNames[strings.ToLower(file.Rule.Kind)]
		if !ok {
			return nil, fmt.Errorf("unknown rule kind %q", file.Rule.Kind)
		}
		offer.Rule.Kind = kind
	}
	if file.Rule.Start != "" {
		start, err := time.Parse("2006-01-02", file.Rule.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q: %w", file.Rule.Start, err)
		}
		offer.Rule.StartDate = recurrence.DateOf(start)
	}
	if file.Rule.End != "" {
		end, err := time.Parse("2006-01-02", file.Rule.End)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", file.Rule.End, err)
		}
		offer.Rule.EndDate = recurrence.DateOf(end)
	}
	for _, name := range file.Rule.Weekdays {
		wd, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		offer.Rule.Weekdays = append(offer.Rule.Weekdays, wd)
	}
	if file.Rule.MonthlyMode != "" {
		mode, ok := monthlyModeNames[strings.ToLower(file.Rule.MonthlyMode)]
		if !ok {
			return nil, fmt.Errorf("unknown monthly mode %q", file.Rule.MonthlyMode)
		}
		offer.Rule.MonthlyMode = mode
	}

	for _, s := range file.Slots {
		slot, err := stock.ParseTimeSlot(s)
		if err != nil {
			return nil, err
		}
		offer.Slots = append(offer.Slots, slot)
	}

	for _, a := range file.Allocations {
		category, err := uuid.Parse(a.PriceCategory)
		if err != nil {
			return nil, fmt.Errorf("invalid price category %q: %w", a.PriceCategory, err)
		}
		quantity := mo.None[int]()
		if a.Quantity != nil {
			quantity = mo.Some(*a.Quantity)
		}
		offer.Allocations = append(offer.Allocations, stock.PriceAllocation{
			PriceCategory: category,
			Quantity:      quantity,
		})
	}

	offer.BookingLimit = mo.None[int]()
	if file.BookingLimitDays != nil {
		offer.BookingLimit = mo.Some(*file.BookingLimitDays)
	}

	return offer, nil
}
