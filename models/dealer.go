package models

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const maxAddressLines = 3

var nonWordPattern = regexp.MustCompile(`\W`)

// Dealer stores a registered dealer account: its monthly charges and the
// work orders built up from imported service records. Work orders and all
// derived totals are transient; only name, address, charges and the active
// flag persist.
type Dealer struct {
	name       string
	address    []string
	charges    []Charge
	workOrders map[time.Time]*WorkOrder
	active     bool
	staged     bool
}

// NewDealer creates an active, unstaged dealer. The name is trimmed and must
// not be blank. Name uniqueness across dealers is the registry's concern.
func NewDealer(name string) (*Dealer, error) {
	d := &Dealer{
		workOrders: make(map[time.Time]*WorkOrder),
		active:     true,
	}
	if err := d.SetName(name); err != nil {
		return nil, err
	}
	return d, nil
}

// Name returns the dealer's business name.
func (d *Dealer) Name() string { return d.name }

// SetName trims and applies a new business name.
func (d *Dealer) SetName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &ValidationError{Field: "name", Reason: "dealer name does not contain any valid characters"}
	}
	d.name = trimmed
	return nil
}

// Address returns a copy of the dealer's address lines.
func (d *Dealer) Address() []string {
	out := make([]string, len(d.address))
	copy(out, d.address)
	return out
}

// SetAddress stores up to three non-empty address lines. Blank lines and any
// lines past the cap are silently dropped.
func (d *Dealer) SetAddress(lines []string) {
	kept := make([]string, 0, maxAddressLines)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
		if len(kept) == maxAddressLines {
			break
		}
	}
	d.address = kept
}

// Charges returns a copy of the configured monthly charges in insertion
// order, which is the order they print on an invoice.
func (d *Dealer) Charges() []Charge {
	out := make([]Charge, len(d.charges))
	copy(out, d.charges)
	return out
}

// SetCharges replaces the configured monthly charges.
func (d *Dealer) SetCharges(charges []Charge) {
	d.charges = make([]Charge, len(charges))
	copy(d.charges, charges)
}

// Active reports whether the dealer is a current client. Inactive dealers
// are excluded from listings and queue totals.
func (d *Dealer) Active() bool { return d.active }

// SetActive marks the dealer active or inactive.
func (d *Dealer) SetActive(active bool) { d.active = active }

// Staged reports whether the dealer has unbilled changes pending invoice
// generation.
func (d *Dealer) Staged() bool { return d.staged }

// SetStaged sets the pending-invoice flag. It is raised automatically when
// vehicles are added and cleared explicitly by the caller.
func (d *Dealer) SetStaged(staged bool) { d.staged = staged }

// AddVehicle attaches a vehicle to the dealer's work order for the date's
// calendar day, creating the work order if needed. A structural duplicate is
// a silent no-op that leaves the staged flag untouched; a real addition
// stages the dealer. Reports whether anything changed.
func (d *Dealer) AddVehicle(date time.Time, v VehicleRecord) bool {
	day := dateOnly(date)
	wo, ok := d.workOrders[day]
	if !ok {
		wo = &WorkOrder{}
		d.workOrders[day] = wo
	}
	if !wo.Add(v) {
		return false
	}
	d.staged = true
	return true
}

// WorkOrder returns the work order for the date's calendar day, or nil.
func (d *Dealer) WorkOrder(date time.Time) *WorkOrder {
	return d.workOrders[dateOnly(date)]
}

// WorkOrderDates returns the dates with work orders, ascending.
func (d *Dealer) WorkOrderDates() []time.Time {
	dates := make([]time.Time, 0, len(d.workOrders))
	for day := range d.workOrders {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// ClearWorkOrders drops every work order. Used when the invoice queue is
// reset after a billing run.
func (d *Dealer) ClearWorkOrders() {
	d.workOrders = make(map[time.Time]*WorkOrder)
}

// WorkOrderCount returns the number of work orders for this dealer.
func (d *Dealer) WorkOrderCount() int { return len(d.workOrders) }

// VehicleCount returns the total number of vehicles across all work orders.
func (d *Dealer) VehicleCount() int {
	n := 0
	for _, wo := range d.workOrders {
		n += wo.Len()
	}
	return n
}

// ConditionCount returns the number of vehicles of the given condition
// across all work orders.
func (d *Dealer) ConditionCount(c Condition) int {
	n := 0
	for _, wo := range d.workOrders {
		n += wo.countByCondition(c)
	}
	return n
}

// TotalOTLCharges is the sum of all on-the-lot charges: every vehicle price
// on every work order, regardless of charge configuration.
func (d *Dealer) TotalOTLCharges() decimal.Decimal {
	total := decimal.Zero
	for _, wo := range d.workOrders {
		total = total.Add(wo.Total())
	}
	return total
}

// CalculateMonthlyCharge returns the amount due for one configured charge.
// Count-scaled charges are computed from the dealer's work orders. A charge
// with an unknown type is a programming error and fails fast.
func (d *Dealer) CalculateMonthlyCharge(c Charge) (decimal.Decimal, error) {
	switch c.Type {
	case ChargeFixed:
		return c.Price, nil
	case ChargeUsedCount:
		return c.Price.Mul(decimal.NewFromInt(int64(d.ConditionCount(ConditionUsed)))), nil
	case ChargeNewCount:
		return c.Price.Mul(decimal.NewFromInt(int64(d.ConditionCount(ConditionNew)))), nil
	case ChargeVehicleCount:
		return c.Price.Mul(decimal.NewFromInt(int64(d.VehicleCount()))), nil
	}
	return decimal.Zero, &InvalidChargeTypeError{Type: c.Type}
}

// TotalMonthlyCharges sums the calculated amounts of the enabled charges in
// configured order.
func (d *Dealer) TotalMonthlyCharges() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, c := range d.charges {
		if !c.Enabled {
			continue
		}
		amount, err := d.CalculateMonthlyCharge(c)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}
	return total, nil
}

// TotalInvoiceAmount is the total amount due: monthly charges plus
// on-the-lot charges.
func (d *Dealer) TotalInvoiceAmount() (decimal.Decimal, error) {
	monthly, err := d.TotalMonthlyCharges()
	if err != nil {
		return decimal.Zero, err
	}
	return monthly.Add(d.TotalOTLCharges()), nil
}

// FileName returns the dealer's name with whitespace replaced by underscores
// and non-word characters stripped, for use in generated file names.
func (d *Dealer) FileName() string {
	return nonWordPattern.ReplaceAllString(strings.ReplaceAll(d.name, " ", "_"), "")
}

func (d *Dealer) String() string { return d.name }

// dateOnly discards the time-of-day component; work orders are keyed by
// calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
