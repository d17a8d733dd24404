package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// ReadCSV parses a .csv export into a Sheet. CSV input is an optional
// extension for stores whose systems cannot produce .xlsx; the canonical
// interchange format remains .xlsx.
func ReadCSV(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Ragged exports are common; length checks happen against the header
	// row in FromRows instead.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return FromRows(filepath.Base(path), rows)
}
