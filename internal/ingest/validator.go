// =============================================================================
// Fechamento - Row Validator
// =============================================================================
//
// Turns a canonically-mapped raw row into a SalesRecord, or rejects it.
// Rejections are collected and counted, never thrown: a spreadsheet with a
// few broken rows still contributes its valid ones, and the file's
// rejection count surfaces as a single aggregate warning.
//
// =============================================================================

package ingest

import (
	"github.com/shopspring/decimal"

	"github.com/vmsantos/fechamento/internal/coerce"
	"github.com/vmsantos/fechamento/internal/sales"
)

// ValidateRow coerces the canonical fields of one raw row and, when all
// five are present and well-typed, returns the SalesRecord with its derived
// total. The second return value reports acceptance.
//
// TotalValue is computed with decimal arithmetic so that currency never
// picks up binary floating-point drift (3 x 19.90 is exactly 59.70).
// ImportedAt is deliberately left zero: the store's schema default stamps
// it at append time, so a dry run never bakes in a timestamp.
func ValidateRow(row map[string]string, sourceFile string) (sales.SalesRecord, bool) {
	date, ok := coerce.Date(row[sales.FieldDate])
	if !ok {
		return sales.SalesRecord{}, false
	}
	storeID, ok := coerce.Identifier(row[sales.FieldStoreID])
	if !ok {
		return sales.SalesRecord{}, false
	}
	productID, ok := coerce.Identifier(row[sales.FieldProductID])
	if !ok {
		return sales.SalesRecord{}, false
	}
	quantity, ok := coerce.Quantity(row[sales.FieldQuantity])
	if !ok {
		return sales.SalesRecord{}, false
	}
	unitPrice, ok := coerce.Price(row[sales.FieldUnitPrice])
	if !ok {
		return sales.SalesRecord{}, false
	}

	return sales.SalesRecord{
		Date:       date,
		StoreID:    storeID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalValue: unitPrice.Mul(decimal.NewFromInt(quantity)),
		SourceFile: sourceFile,
	}, true
}
