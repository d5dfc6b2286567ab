package stock

import "time"

// Combine builds the cartesian product of dates, time slots and price
// allocations: one instance per triple, nested date → slot → allocation so
// the output order is stable and reproducible. Booking cutoffs are left
// unset; Generate fills them in afterwards.
//
// The result always has exactly len(dates) × len(slots) × len(allocations)
// elements. No capping happens here; warning about excessive counts is the
// form layer's job.
func Combine(dates []time.Time, slots []TimeSlot, allocations []PriceAllocation) []Instance {
	instances := make([]Instance, 0, len(dates)*len(slots)*len(allocations))
	for _, date := range dates {
		for _, slot := range slots {
			for _, alloc := range allocations {
				instances = append(instances, Instance{
					Date:          date,
					Slot:          slot,
					PriceCategory: alloc.PriceCategory,
					Quantity:      alloc.Quantity,
				})
			}
		}
	}
	return instances
}
