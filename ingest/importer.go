package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/dealerworks/dealer-engine-api/models"
)

// DealerLookup resolves a dealer name to its registered account. Lookup is
// an exact, case-sensitive match.
type DealerLookup interface {
	Lookup(name string) (*models.Dealer, bool)
}

// Importer attaches imported service records to registered dealers' work
// orders.
type Importer struct {
	Registry DealerLookup
}

// FileResult reports the outcome of importing one file. A file that failed
// part-way keeps the rows applied before the failure; nothing is rolled
// back.
type FileResult struct {
	File          string `json:"file"`
	Provider      string `json:"provider,omitempty"`
	RowsImported  int    `json:"rowsImported"`
	DuplicateRows int    `json:"duplicateRows"`
	Error         string `json:"error,omitempty"`
}

// BatchResult reports one import batch. Files are processed strictly in
// sequence; a failed file does not stop the batch.
type BatchResult struct {
	BatchID string       `json:"batchId"`
	Files   []FileResult `json:"files"`
}

// ImportFile processes one export file, adding each vehicle to the named
// dealer's work order for its service date. Rows are processed in file
// order and the first row failure aborts the remainder of the file.
func (imp *Importer) ImportFile(name string, r io.Reader) FileResult {
	result := FileResult{File: name}

	table, err := readTable(name, r)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	schema, err := DetectSchema(len(table.Headers))
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Provider = schema.Provider

	for i, row := range table.Rows {
		if err := imp.importRow(schema, row, &result); err != nil {
			// Row 1 is the header, so data row i is line i+2.
			result.Error = fmt.Sprintf("%s: row %d: %v", name, i+2, err)
			return result
		}
	}

	zap.S().Infow("imported file",
		"file", name,
		"provider", schema.Provider,
		"rows", result.RowsImported,
		"duplicates", result.DuplicateRows,
	)
	return result
}

func (imp *Importer) importRow(schema Schema, row map[string]string, result *FileResult) error {
	normalized, err := NormalizeRow(schema, row)
	if err != nil {
		return err
	}

	dealer, ok := imp.Registry.Lookup(normalized.DealerName)
	if !ok {
		return &models.UnknownDealerError{Name: normalized.DealerName}
	}

	if dealer.AddVehicle(normalized.ServiceDate, normalized.Vehicle) {
		result.RowsImported++
	} else {
		result.DuplicateRows++
		zap.S().Debugw("duplicate vehicle skipped",
			"dealer", dealer.Name(),
			"stock", normalized.Vehicle.Stock,
			"date", normalized.ServiceDate,
		)
	}
	return nil
}

func readTable(name string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ReadCSV(r, name)
	case ".xlsx":
		return ReadXLSX(r, name)
	default:
		return nil, &models.UnsupportedProviderError{Ext: filepath.Ext(name)}
	}
}
