package stock

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyp0633/stockgen/recurrence"
)

var generateNow = time.Date(2023, 12, 15, 10, 0, 0, 0, time.UTC)

func weeklyOffer() (recurrence.Rule, []TimeSlot, []PriceAllocation) {
	rule := recurrence.Rule{
		Kind:      recurrence.KindWeekly,
		StartDate: recurrence.Date(2024, time.January, 1),
		EndDate:   recurrence.Date(2024, time.January, 15),
		Weekdays:  []time.Weekday{time.Monday, time.Thursday},
	}
	slots := []TimeSlot{{Hour: 19}, {Hour: 21, Minute: 30}}
	allocations := []PriceAllocation{
		{PriceCategory: uuid.MustParse("7f9c24e5-2f31-4b2a-9d20-8f5c1a3b6d42"), Quantity: mo.Some(80)},
		{PriceCategory: uuid.MustParse("3c1d9b70-6e4f-4d18-a5a7-2b9e0c8d4f11"), Quantity: mo.None[int]()},
	}
	return rule, slots, allocations
}

func TestGenerate_FullExpansion(t *testing.T) {
	rule, slots, allocations := weeklyOffer()

	result := Generate(rule, slots, allocations, BookingLimitDays(2), generateNow)

	instances, err := result.Get()
	require.NoError(t, err)

	// 5 dates x 2 slots x 2 allocations.
	require.Len(t, instances, 20)

	// First instance: first date, first slot, first allocation.
	first := instances[0]
	assert.Equal(t, recurrence.Date(2024, time.January, 1), first.Date)
	assert.Equal(t, TimeSlot{Hour: 19}, first.Slot)
	assert.Equal(t, allocations[0].PriceCategory, first.PriceCategory)

	cutoff, ok := first.BookingCutoff.Get()
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 12, 30, 19, 0, 0, 0, time.UTC), cutoff)
}

func TestGenerate_Deterministic(t *testing.T) {
	rule, slots, allocations := weeklyOffer()

	first := Generate(rule, slots, allocations, NoBookingLimit(), generateNow)
	second := Generate(rule, slots, allocations, NoBookingLimit(), generateNow)

	a, err := first.Get()
	require.NoError(t, err)
	b, err := second.Get()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_EmptyWeekdays_FailsWithExactlyOneViolation(t *testing.T) {
	rule, slots, allocations := weeklyOffer()
	rule.Weekdays = nil

	result := Generate(rule, slots, allocations, NoBookingLimit(), generateNow)

	require.True(t, result.IsError())

	var vs recurrence.Violations
	require.ErrorAs(t, result.Error(), &vs)
	require.Len(t, vs, 1)
	assert.Equal(t, recurrence.NoWeekdaySelected, vs[0].Code)
}

func TestGenerate_InputViolationsCollected(t *testing.T) {
	rule, _, _ := weeklyOffer()

	result := Generate(rule, nil, nil, NoBookingLimit(), generateNow)

	var vs recurrence.Violations
	require.ErrorAs(t, result.Error(), &vs)
	assert.True(t, vs.Has(NoTimeSlot))
	assert.True(t, vs.Has(NoPriceAllocation))
	assert.Len(t, vs, 2)
}

func TestGenerate_DuplicateSlotAndCategory(t *testing.T) {
	rule, slots, allocations := weeklyOffer()
	slots = append(slots, slots[0])
	allocations = append(allocations, allocations[1])

	result := Generate(rule, slots, allocations, NoBookingLimit(), generateNow)

	var vs recurrence.Violations
	require.ErrorAs(t, result.Error(), &vs)
	assert.True(t, vs.Has(DuplicateTimeSlot))
	assert.True(t, vs.Has(DuplicatePriceCategory))
}

func TestGenerate_PastCutoffsRejectWholeRun(t *testing.T) {
	rule, slots, allocations := weeklyOffer()

	// A 30-day limit puts the early instances' cutoffs before "now".
	result := Generate(rule, slots, allocations, BookingLimitDays(30), generateNow)

	require.True(t, result.IsError())

	var limitErrs LimitErrors
	require.ErrorAs(t, result.Error(), &limitErrs)
	assert.NotEmpty(t, limitErrs)
}

func TestGenerate_NoPartialResultOnError(t *testing.T) {
	rule, slots, allocations := weeklyOffer()

	result := Generate(rule, slots, allocations, BookingLimitDays(30), generateNow)

	instances, err := result.Get()
	assert.Error(t, err)
	assert.Empty(t, instances)
}

func TestGenerate_OnceRule(t *testing.T) {
	_, slots, allocations := weeklyOffer()
	rule := recurrence.Rule{Kind: recurrence.KindOnce, StartDate: recurrence.Date(2024, time.May, 10)}

	result := Generate(rule, slots, allocations, NoBookingLimit(), generateNow)

	instances, err := result.Get()
	require.NoError(t, err)
	assert.Len(t, instances, 4)
	for _, in := range instances {
		assert.Equal(t, recurrence.Date(2024, time.May, 10), in.Date)
		assert.True(t, in.BookingCutoff.IsAbsent())
	}
}

func TestGenerator_WithEngineCache(t *testing.T) {
	engine := recurrence.NewEngine()
	defer engine.Close()
	gen := NewGenerator(engine, nil)

	rule, slots, allocations := weeklyOffer()

	first := gen.Generate(rule, slots, allocations, NoBookingLimit(), generateNow)
	second := gen.Generate(rule, slots, allocations, NoBookingLimit(), generateNow)

	a, err := first.Get()
	require.NoError(t, err)
	b, err := second.Get()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, engine.CacheStats().ActiveEntries)
}
