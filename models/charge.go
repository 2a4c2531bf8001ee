package models

import "github.com/shopspring/decimal"

// ChargeType selects how a monthly charge is computed against a dealer's
// work orders.
type ChargeType string

const (
	// ChargeFixed appears as-is; a flat monthly amount.
	ChargeFixed ChargeType = "fixed"
	// ChargeUsedCount is multiplied by the number of Used vehicles processed.
	ChargeUsedCount ChargeType = "used"
	// ChargeNewCount is multiplied by the number of New vehicles processed.
	ChargeNewCount ChargeType = "new"
	// ChargeVehicleCount is multiplied by the total number of vehicles processed.
	ChargeVehicleCount ChargeType = "vehicle"
)

// Valid reports whether t is one of the known charge types.
func (t ChargeType) Valid() bool {
	switch t {
	case ChargeFixed, ChargeUsedCount, ChargeNewCount, ChargeVehicleCount:
		return true
	}
	return false
}

// Charge is one configured monthly line item billed to a dealer. Disabled
// charges stay configured but are excluded from invoices and totals.
type Charge struct {
	Name    string          `json:"name"`
	Type    ChargeType      `json:"type"`
	Price   decimal.Decimal `json:"price"`
	Enabled bool            `json:"enabled"`
}
