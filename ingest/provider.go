package ingest

import "github.com/dealerworks/dealer-engine-api/models"

// Schema maps logical field roles to the physical column names of one known
// provider export. Optional roles are empty when the provider does not
// supply them.
type Schema struct {
	Provider string

	Date       string
	DealerName string
	Stock      string
	Condition  string
	Price      string

	Vin         string
	Year        string
	Make        string
	Model       string
	Description string
}

// Provider detection is keyed purely on total column count. This is a
// closed-world heuristic, not content sniffing: a new exporter format means
// a new entry here, and two providers sharing a column count is an
// unresolved ambiguity.
var schemasByColumnCount = map[int]Schema{
	21: {
		Provider:   "Autouplink Tech",
		Date:       "Service Date/Time",
		DealerName: "Dealer Name",
		Stock:      "Stock Number",
		Condition:  "Vehicle Stock Type",
		Price:      "Service Type Price",
		Vin:        "VIN",
		Year:       "Model Year",
		Make:       "Make",
		Model:      "Model",
	},
	7: {
		Provider:    "Custom Template",
		Date:        "Service Date",
		DealerName:  "Dealer",
		Stock:       "Stock Number",
		Condition:   "Stock Type",
		Price:       "Price",
		Description: "Description",
	},
}

// DetectSchema classifies a parsed file by its column count. Counts that
// match no known provider fail the whole file.
func DetectSchema(columnCount int) (Schema, error) {
	schema, ok := schemasByColumnCount[columnCount]
	if !ok {
		return Schema{}, &models.UnsupportedProviderError{Columns: columnCount}
	}
	return schema, nil
}
