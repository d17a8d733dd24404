// =============================================================================
// Fechamento - Spreadsheet Readers
// =============================================================================
//
// This package turns one input file (.xlsx or .csv) into the neutral Sheet
// representation consumed by the aggregator: a header row plus data rows as
// header->value maps. Files do not share state; each Read call is
// independent, which keeps per-file processing isolated.
//
// =============================================================================

package sheet

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Sheet is the parsed content of one spreadsheet file.
type Sheet struct {
	// Headers contains the column headers in file order.
	Headers []string

	// Rows contains the data rows as maps of header -> raw cell value,
	// preserving file order. Rows shorter than the header row are padded
	// with empty strings.
	Rows []map[string]string

	// SourceFile is the base name of the file the sheet came from.
	SourceFile string
}

// Read dispatches on the file extension. Supported: .xlsx, .csv.
func Read(path string) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path)
	case ".csv":
		return ReadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet extension: %s", filepath.Ext(path))
	}
}

// FromRows builds a Sheet from raw row data. The first row containing any
// non-blank cell is taken as the header row; fully blank data rows are
// skipped. Columns with a blank header are dropped.
func FromRows(sourceFile string, rows [][]string) (*Sheet, error) {
	headerIdx := -1
	for i, row := range rows {
		if !blank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("%s: spreadsheet has no header row", sourceFile)
	}

	headers := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}

	s := &Sheet{Headers: headers, SourceFile: sourceFile}
	for _, row := range rows[headerIdx+1:] {
		if blank(row) {
			continue
		}
		record := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				record[h] = row[i]
			} else {
				record[h] = ""
			}
		}
		s.Rows = append(s.Rows, record)
	}
	return s, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
