package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// WorkOrder holds the set of vehicles serviced for one dealer on one
// calendar date. A work order never contains two structurally identical
// records.
type WorkOrder struct {
	vehicles []VehicleRecord
}

// Add attaches a vehicle to the work order. Adding a record that is already
// present is a silent no-op; Add reports whether the order was changed.
func (w *WorkOrder) Add(v VehicleRecord) bool {
	for _, existing := range w.vehicles {
		if existing.Equal(v) {
			return false
		}
	}
	w.vehicles = append(w.vehicles, v)
	return true
}

// Vehicles returns the contained records, Used before New and then by
// case-insensitive stock number.
func (w *WorkOrder) Vehicles() []VehicleRecord {
	out := make([]VehicleRecord, len(w.vehicles))
	copy(out, w.vehicles)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Total is the sum of the charges for each vehicle on this work order.
func (w *WorkOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range w.vehicles {
		total = total.Add(v.Price)
	}
	return total
}

// Len returns the number of vehicles on the work order.
func (w *WorkOrder) Len() int {
	return len(w.vehicles)
}

// countByCondition returns how many contained vehicles have the given
// condition.
func (w *WorkOrder) countByCondition(c Condition) int {
	n := 0
	for _, v := range w.vehicles {
		if v.Condition == c {
			n++
		}
	}
	return n
}
