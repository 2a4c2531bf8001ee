package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a parsed tabular file: ordered column headers plus data rows as
// header -> value maps.
type Table struct {
	SourceFile string
	Headers    []string
	Rows       []map[string]string
}

// ReadCSV parses a comma-delimited file whose first row is the header.
func ReadCSV(r io.Reader, sourceFile string) (*Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	// Short rows are padded against the header when mapped.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return tableFromRows(rows, sourceFile)
}

// ReadXLSX parses the first sheet of a workbook, treating the first row as
// the header, and feeds the same pipeline as CSV imports.
func ReadXLSX(r io.Reader, sourceFile string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return tableFromRows(rows, sourceFile)
}

func tableFromRows(rows [][]string, sourceFile string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &Table{
		SourceFile: sourceFile,
		Headers:    headers,
		Rows:       make([]map[string]string, 0, len(rows)-1),
	}

	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		rowMap := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				rowMap[header] = strings.TrimSpace(row[i])
			} else {
				rowMap[header] = ""
			}
		}
		table.Rows = append(table.Rows, rowMap)
	}

	return table, nil
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
