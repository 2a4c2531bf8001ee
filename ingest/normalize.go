package ingest

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dealerworks/dealer-engine-api/models"
)

// Date layouts the known providers emit, tried in order. Only the calendar
// date survives into the work order key.
var dateLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizedRow is one raw row converted into domain values: the vehicle
// record plus the dealer name and service date it attaches under.
type NormalizedRow struct {
	DealerName  string
	ServiceDate time.Time
	Vehicle     models.VehicleRecord
}

// NormalizeRow converts one raw row using the schema mapping, or fails with
// a typed error: missing stock is a ValidationError, an unparsable price,
// year or date is a FormatError, and unknown condition text is an
// UnrecognizedConditionError.
func NormalizeRow(schema Schema, row map[string]string) (NormalizedRow, error) {
	condition, err := models.ParseCondition(row[schema.Condition])
	if err != nil {
		return NormalizedRow{}, err
	}

	price, err := parsePrice(row[schema.Price])
	if err != nil {
		return NormalizedRow{}, err
	}

	serviceDate, err := parseDate(row[schema.Date])
	if err != nil {
		return NormalizedRow{}, err
	}

	details := models.VehicleDetails{}
	if schema.Vin != "" {
		details.Vin = row[schema.Vin]
	}
	if schema.Make != "" {
		details.Make = row[schema.Make]
	}
	if schema.Model != "" {
		details.Model = row[schema.Model]
	}
	if schema.Description != "" {
		details.Description = row[schema.Description]
	}
	if schema.Year != "" && row[schema.Year] != "" {
		year, err := strconv.Atoi(row[schema.Year])
		if err != nil {
			return NormalizedRow{}, &models.FormatError{Field: "year", Value: row[schema.Year], Err: err}
		}
		details.Year = year
	}

	vehicle, err := models.NewVehicleRecord(row[schema.Stock], condition, price, details)
	if err != nil {
		return NormalizedRow{}, err
	}

	return NormalizedRow{
		DealerName:  row[schema.DealerName],
		ServiceDate: serviceDate,
		Vehicle:     vehicle,
	}, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), "$"), ",", ""))
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &models.FormatError{Field: "price", Value: s, Err: err}
	}
	return price, nil
}

func parseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &models.FormatError{Field: "date", Value: s, Err: errors.New("unrecognized date format")}
}
