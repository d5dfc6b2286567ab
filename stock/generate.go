package stock

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"

	"github.com/cyp0633/stockgen/recurrence"
)

// Violation codes for the inputs accompanying the rule. They share the
// rule-level taxonomy so one validation pass reports everything at once.
const (
	// NoTimeSlot: the offer carries no time slot.
	NoTimeSlot recurrence.ViolationCode = "no-time-slot"
	// DuplicateTimeSlot: the same time-of-day appears twice.
	DuplicateTimeSlot recurrence.ViolationCode = "duplicate-time-slot"
	// NoPriceAllocation: the offer carries no price allocation.
	NoPriceAllocation recurrence.ViolationCode = "no-price-allocation"
	// DuplicatePriceCategory: two allocations reference the same price
	// category.
	DuplicatePriceCategory recurrence.ViolationCode = "duplicate-price-category"
)

// Generator expands recurrence rules into bookable instances. The zero
// value is not usable; NewGenerator wires the expansion engine and logger
// (both may be nil for a stateless, silent generator).
type Generator struct {
	engine *recurrence.Engine
	logger *slog.Logger
}

// NewGenerator creates a generator. A nil engine expands rules without
// caching; a nil logger discards log output.
func NewGenerator(engine *recurrence.Engine, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		engine: engine,
		logger: logger,
	}
}

// Generate is the package's single entry point: it validates the rule and
// its accompanying inputs, expands the rule into dates, combines dates with
// slots and allocations, and derives every booking cutoff.
//
// The result is all-or-nothing: either the complete instance list, or an
// error holding either every validation failure (recurrence.Violations) or
// every past-cutoff instance (LimitErrors). "now" is injected by the
// caller; the engine never reads a system clock, so identical inputs
// always produce identical output.
func (g *Generator) Generate(
	rule recurrence.Rule,
	slots []TimeSlot,
	allocations []PriceAllocation,
	bookingLimit mo.Option[int],
	now time.Time,
) mo.Result[[]Instance] {
	if vs := validateInputs(rule, slots, allocations, now); len(vs) > 0 {
		g.logger.Debug("generation rejected", "violations", len(vs))
		return mo.Err[[]Instance](vs)
	}

	dates := g.engine.ExpandDates(rule)
	instances := Combine(dates, slots, allocations)

	instances, limitErrs := applyCutoffs(instances, bookingLimit, now)
	if len(limitErrs) > 0 {
		g.logger.Debug("generation rejected", "past_cutoffs", len(limitErrs))
		return mo.Err[[]Instance](limitErrs)
	}

	g.logger.Debug("generated instances",
		"kind", rule.Kind.String(),
		"dates", len(dates),
		"slots", len(slots),
		"allocations", len(allocations),
		"instances", len(instances))
	return mo.Ok(instances)
}

// Generate runs a one-shot generation with no cache and no logging.
func Generate(
	rule recurrence.Rule,
	slots []TimeSlot,
	allocations []PriceAllocation,
	bookingLimit mo.Option[int],
	now time.Time,
) mo.Result[[]Instance] {
	return NewGenerator(nil, nil).Generate(rule, slots, allocations, bookingLimit, now)
}

// validateInputs runs the rule checks plus the slot and allocation checks,
// collecting every violation before reporting.
func validateInputs(rule recurrence.Rule, slots []TimeSlot, allocations []PriceAllocation, now time.Time) recurrence.Violations {
	vs := recurrence.ValidateRule(rule, now)

	if len(slots) == 0 {
		vs = append(vs, recurrence.Violation{Code: NoTimeSlot, Field: "timeSlots"})
	}
	seenSlots := make(map[TimeSlot]bool, len(slots))
	for _, slot := range slots {
		if seenSlots[slot] {
			vs = append(vs, recurrence.Violation{Code: DuplicateTimeSlot, Field: "timeSlots"})
			break
		}
		seenSlots[slot] = true
	}

	if len(allocations) == 0 {
		vs = append(vs, recurrence.Violation{Code: NoPriceAllocation, Field: "priceAllocations"})
	}
	seenCategories := make(map[uuid.UUID]bool, len(allocations))
	for _, alloc := range allocations {
		if seenCategories[alloc.PriceCategory] {
			vs = append(vs, recurrence.Violation{Code: DuplicatePriceCategory, Field: "priceAllocations"})
			break
		}
		seenCategories[alloc.PriceCategory] = true
	}

	return vs
}
