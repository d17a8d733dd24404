// Package sales defines the canonical domain types shared by the ingestion
// pipeline, the store and the report generator.
package sales

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical field names. Every persisted row populates all five, plus the
// derived total.
const (
	FieldDate      = "date"
	FieldStoreID   = "store_id"
	FieldProductID = "product_id"
	FieldQuantity  = "quantity"
	FieldUnitPrice = "unit_price"
)

// RequiredFields lists the canonical fields in their fixed schema order.
var RequiredFields = []string{
	FieldDate,
	FieldStoreID,
	FieldProductID,
	FieldQuantity,
	FieldUnitPrice,
}

// SalesRecord is one validated sales row in canonical form. Records are
// immutable once created: the store appends them verbatim and never
// re-derives a field.
type SalesRecord struct {
	// Date is the calendar date of the sale (time component always zero).
	Date time.Time

	// StoreID and ProductID are opaque identifiers. Input spreadsheets mix
	// numeric and textual codes, so no numeric interpretation is applied.
	StoreID   string
	ProductID string

	// Quantity is the number of units sold. Fractional quantities are
	// rejected during validation.
	Quantity int64

	// UnitPrice and TotalValue use decimal arithmetic; TotalValue is always
	// exactly Quantity x UnitPrice.
	UnitPrice  decimal.Decimal
	TotalValue decimal.Decimal

	// SourceFile is the base name of the spreadsheet the row came from.
	SourceFile string

	// ImportedAt is zero until the record is persisted; the store's schema
	// default stamps it at append time.
	ImportedAt time.Time
}

// Warning is a non-fatal diagnostic describing a skipped file or dropped
// rows. Warnings are accumulated in order and never deduplicated.
type Warning string

// Dataset is the in-memory result of one pipeline run: the concatenated
// valid records of every readable input file plus the warnings collected
// along the way. It is not retained across runs.
type Dataset struct {
	Records  []SalesRecord
	Warnings []Warning
}

// AddWarning appends one printf-formatted warning to the dataset.
func (d *Dataset) AddWarning(format string, args ...any) {
	d.Warnings = append(d.Warnings, Warning(fmt.Sprintf(format, args...)))
}
