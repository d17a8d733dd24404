package ingest

import (
	"testing"
)

func row(date, store, product, qty, price string) map[string]string {
	return map[string]string{
		"date":       date,
		"store_id":   store,
		"product_id": product,
		"quantity":   qty,
		"unit_price": price,
	}
}

func TestValidateRow_Accepts(t *testing.T) {
	rec, ok := ValidateRow(row("2024-03-05", "1", "SKU-9", "3", "19.90"), "vendas.xlsx")
	if !ok {
		t.Fatal("ValidateRow() rejected a valid row")
	}

	if got := rec.Date.Format("2006-01-02"); got != "2024-03-05" {
		t.Errorf("Date = %s, want 2024-03-05", got)
	}
	if rec.StoreID != "1" || rec.ProductID != "SKU-9" {
		t.Errorf("identifiers = %q/%q, want 1/SKU-9", rec.StoreID, rec.ProductID)
	}
	if rec.Quantity != 3 {
		t.Errorf("Quantity = %d, want 3", rec.Quantity)
	}
	// Exact decimal arithmetic: 3 x 19.90 is 59.70, not 59.699999...
	if rec.TotalValue.String() != "59.7" {
		t.Errorf("TotalValue = %s, want 59.7", rec.TotalValue.String())
	}
	if rec.SourceFile != "vendas.xlsx" {
		t.Errorf("SourceFile = %q, want vendas.xlsx", rec.SourceFile)
	}
	if !rec.ImportedAt.IsZero() {
		t.Errorf("ImportedAt = %v, want zero until store append", rec.ImportedAt)
	}
}

func TestValidateRow_Rejects(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]string
	}{
		{"bad date", row("not-a-date", "1", "P1", "3", "19.90")},
		{"empty date", row("", "1", "P1", "3", "19.90")},
		{"empty store", row("2024-03-05", " ", "P1", "3", "19.90")},
		{"empty product", row("2024-03-05", "1", "", "3", "19.90")},
		{"fractional quantity", row("2024-03-05", "1", "P1", "2.5", "19.90")},
		{"non numeric quantity", row("2024-03-05", "1", "P1", "many", "19.90")},
		{"bad price", row("2024-03-05", "1", "P1", "3", "free")},
		{"missing fields entirely", map[string]string{"date": "2024-03-05"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ValidateRow(tt.row, "vendas.xlsx"); ok {
				t.Error("ValidateRow() accepted an invalid row")
			}
		})
	}
}

func TestValidateRow_DayFirstDate(t *testing.T) {
	rec, ok := ValidateRow(row("05/03/2024", "2", "P2", "1", "5.00"), "loja2.xlsx")
	if !ok {
		t.Fatal("ValidateRow() rejected a day-first date")
	}
	if got := rec.Date.Format("2006-01-02"); got != "2024-03-05" {
		t.Errorf("Date = %s, want 2024-03-05", got)
	}
}
