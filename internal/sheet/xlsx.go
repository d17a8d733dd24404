package sheet

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first worksheet of an .xlsx file. The stores' export
// tooling writes a single sheet per file, so additional sheets are ignored.
func ReadXLSX(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: spreadsheet has no sheets", filepath.Base(path))
	}

	// GetRows returns formatted cell values; date cells keep whatever
	// number format the export applied, which is why the date coercer also
	// understands raw serial numbers.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return FromRows(filepath.Base(path), rows)
}
