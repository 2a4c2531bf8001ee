package models

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Condition is a vehicle's stock condition. Used sorts before New.
type Condition int

// The known vehicle conditions.
const (
	ConditionUsed Condition = iota
	ConditionNew
)

func (c Condition) String() string {
	switch c {
	case ConditionUsed:
		return "Used"
	case ConditionNew:
		return "New"
	}
	return "Unknown"
}

var (
	// Matches the used/certified/pre-owned variants the providers emit,
	// e.g. "Used", "CPO", "Certified Pre-Owned", "pre-owned".
	usedConditionPattern = regexp.MustCompile(`(?i)^(?:cpo|certified|used)?[ -]?(?:pre)?[ -]?(?:owned)?$`)
	newConditionPattern  = regexp.MustCompile(`(?i)new`)
)

// ParseCondition classifies provider condition text. Text matching neither
// pattern returns an UnrecognizedConditionError carrying the offending text.
func ParseCondition(s string) (Condition, error) {
	if usedConditionPattern.MatchString(s) {
		return ConditionUsed, nil
	}
	if newConditionPattern.MatchString(s) {
		return ConditionNew, nil
	}
	return 0, &UnrecognizedConditionError{Text: s}
}

// VehicleRecord holds the data for one serviced vehicle, used as a line item
// on a work summary. Records are treated as immutable once constructed;
// identity is full structural equality (see Equal).
type VehicleRecord struct {
	Stock     string
	Condition Condition
	Price     decimal.Decimal
	Details   VehicleDetails
}

// VehicleDetails holds the optional fields a provider export may supply.
// Zero values mean the provider did not supply the field.
type VehicleDetails struct {
	Vin         string
	Year        int
	Make        string
	Model       string
	Description string
	RefNo       uint32
}

// NewVehicleRecord builds a validated vehicle record. A record without a
// stock number is rejected.
func NewVehicleRecord(stock string, condition Condition, price decimal.Decimal, details VehicleDetails) (VehicleRecord, error) {
	if strings.TrimSpace(stock) == "" {
		return VehicleRecord{}, &ValidationError{Field: "stock", Reason: "vehicle does not have a stock number"}
	}
	return VehicleRecord{
		Stock:     stock,
		Condition: condition,
		Price:     price,
		Details:   details,
	}, nil
}

// DisplayDescription is the line item description printed on a work summary:
// the provider description when present, otherwise "{year} {make} {model}"
// trimmed.
func (v VehicleRecord) DisplayDescription() string {
	if v.Details.Description != "" {
		return v.Details.Description
	}
	year := ""
	if v.Details.Year != 0 {
		year = strconv.Itoa(v.Details.Year)
	}
	return strings.TrimSpace(strings.Join([]string{year, v.Details.Make, v.Details.Model}, " "))
}

// Equal reports full structural equality, the identity rule used for
// deduplication within a work order.
func (v VehicleRecord) Equal(o VehicleRecord) bool {
	return v.Stock == o.Stock &&
		v.Condition == o.Condition &&
		v.Price.Equal(o.Price) &&
		v.Details == o.Details
}

// Less reports whether v sorts before o: Used before New, then
// case-insensitive stock number.
func (v VehicleRecord) Less(o VehicleRecord) bool {
	if v.Condition != o.Condition {
		return v.Condition < o.Condition
	}
	return strings.ToLower(v.Stock) < strings.ToLower(o.Stock)
}

func (v VehicleRecord) String() string {
	return v.Stock + ": " + v.DisplayDescription()
}
