package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vmsantos/fechamento/internal/sales"
)

func record(date string, store string, total string) sales.SalesRecord {
	d, _ := time.Parse("2006-01-02", date)
	tv, _ := decimal.NewFromString(total)
	return sales.SalesRecord{Date: d, StoreID: store, TotalValue: tv}
}

func TestSummarize_GroupsAndSums(t *testing.T) {
	rows := Summarize([]sales.SalesRecord{
		record("2024-03-05", "1", "10.00"),
		record("2024-03-05", "1", "5.00"),
		record("2024-03-05", "2", "7.50"),
		record("2024-03-04", "2", "1.00"),
	})

	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	// Ordered by date ascending, then store ascending.
	checks := []struct {
		date  string
		store string
		total string
	}{
		{"2024-03-04", "2", "1"},
		{"2024-03-05", "1", "15"},
		{"2024-03-05", "2", "7.5"},
	}
	for i, want := range checks {
		got := rows[i]
		if got.Date.Format("2006-01-02") != want.date ||
			got.StoreID != want.store ||
			got.Total.String() != want.total {
			t.Errorf("rows[%d] = %s/%s/%s, want %s/%s/%s",
				i, got.Date.Format("2006-01-02"), got.StoreID, got.Total.String(),
				want.date, want.store, want.total)
		}
	}
}

func TestGenerate_Content(t *testing.T) {
	dir := t.TempDir()
	gen := &Generator{
		Dir: dir,
		Now: func() time.Time {
			return time.Date(2024, time.March, 5, 14, 30, 12, 0, time.UTC)
		},
	}

	ds := &sales.Dataset{
		Records: []sales.SalesRecord{
			record("2024-03-05", "1", "10.00"),
			record("2024-03-05", "1", "5.00"),
		},
		Warnings: []sales.Warning{"vendas.xlsx: 2 invalid row(s) removed"},
	}

	path, err := gen.Generate(ds, "/data/fechamento.db", "/days/2024-03-05")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if filepath.Base(path) != "relatorio_2024-03-05_143012.txt" {
		t.Errorf("report name = %s, want relatorio_2024-03-05_143012.txt", filepath.Base(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	text := string(content)

	for _, want := range []string{
		"Processing Report - 2024-03-05_143012",
		"Warnings:",
		"- vendas.xlsx: 2 invalid row(s) removed",
		"Valid rows processed: 2",
		"Totals per day and store:",
		"- 2024-03-05 | Store 1: R$ 15.00",
		"Database: /data/fechamento.db",
		"Source root: /days/2024-03-05",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q\n---\n%s", want, text)
		}
	}

	// Section order: warnings before totals, totals before the trailer.
	if strings.Index(text, "Warnings:") > strings.Index(text, "Totals per day and store:") {
		t.Error("warnings section must precede totals")
	}
	if strings.Index(text, "Totals per day and store:") > strings.Index(text, "Database:") {
		t.Error("totals section must precede the trailer")
	}
}

func TestGenerate_NoWarningsSection(t *testing.T) {
	gen := &Generator{Dir: t.TempDir()}
	path, err := gen.Generate(&sales.Dataset{
		Records: []sales.SalesRecord{record("2024-03-05", "1", "1.00")},
	}, "db", "root")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	content, _ := os.ReadFile(path)
	if strings.Contains(string(content), "Warnings:") {
		t.Error("empty warning list must not produce a Warnings section")
	}
}

func TestGenerate_DistinctPathsSameSecond(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2024, time.March, 5, 14, 30, 12, 0, time.UTC)
	gen := &Generator{Dir: dir, Now: func() time.Time { return fixed }}
	ds := &sales.Dataset{Records: []sales.SalesRecord{record("2024-03-05", "1", "1.00")}}

	first, err := gen.Generate(ds, "db", "root")
	if err != nil {
		t.Fatalf("first Generate() error = %v", err)
	}
	second, err := gen.Generate(ds, "db", "root")
	if err != nil {
		t.Fatalf("second Generate() error = %v", err)
	}
	if first == second {
		t.Fatalf("two runs share the path %s", first)
	}
	if _, err := os.Stat(first); err != nil {
		t.Errorf("first report vanished: %v", err)
	}
	if _, err := os.Stat(second); err != nil {
		t.Errorf("second report missing: %v", err)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"59.7", "59.70"},
		{"0", "0.00"},
		{"1234.5", "1,234.50"},
		{"1234567.89", "1,234,567.89"},
		{"-42.1", "-42.10"},
	}
	for _, tt := range tests {
		d, _ := decimal.NewFromString(tt.input)
		if got := formatAmount(d); got != tt.want {
			t.Errorf("formatAmount(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"relatorio_2024-03-05_120000.txt", "relatorio_2024-03-04_090000.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := List(dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(paths))
	}
	if filepath.Base(paths[0]) != "relatorio_2024-03-04_090000.txt" {
		t.Errorf("List() not sorted: %v", paths)
	}

	// A day root no run has touched yet.
	empty, err := List(filepath.Join(dir, "missing"))
	if err != nil || empty != nil {
		t.Errorf("List(missing) = %v, %v; want nil, nil", empty, err)
	}
}
