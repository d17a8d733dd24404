// =============================================================================
// Fechamento - Report Generator
// =============================================================================
//
// Renders one pipeline run into an immutable plain-text reconciliation
// report under the day root's reports directory. Reports are append-only:
// every run produces a new, uniquely named file and no prior report is
// ever rewritten. The generator works from the in-memory dataset of the
// run, not from a re-read of the store, so the report always describes
// exactly what this run ingested.
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vmsantos/fechamento/internal/sales"
)

// timestampLayout drives both the title line and the file name,
// e.g. relatorio_2024-03-05_143012.txt.
const timestampLayout = "2006-01-02_150405"

// SummaryRow is one (date, store) group with its summed total.
type SummaryRow struct {
	Date    time.Time
	StoreID string
	Total   decimal.Decimal
}

// Generator writes reports into Dir.
type Generator struct {
	// Dir is the reports directory; created on first use.
	Dir string

	// Currency is the symbol printed before each total. Empty means "R$".
	Currency string

	// Now is the clock used for the timestamp. Overridable in tests; nil
	// means time.Now.
	Now func() time.Time
}

// Generate renders the dataset and its warnings into a new report file and
// returns the file's path. dbPath and sourceRoot appear verbatim in the
// trailer for traceability; the store itself is not queried.
func (g *Generator) Generate(ds *sales.Dataset, dbPath, sourceRoot string) (string, error) {
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	ts := now().Format(timestampLayout)

	path, err := g.uniquePath(ts)
	if err != nil {
		return "", err
	}

	currency := g.Currency
	if currency == "" {
		currency = "R$"
	}
	content := render(ts, currency, ds, dbPath, sourceRoot)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// uniquePath returns relatorio_<ts>.txt, suffixing _2, _3, ... when a
// report for the same second already exists. Two runs never share a path.
func (g *Generator) uniquePath(ts string) (string, error) {
	base := filepath.Join(g.Dir, fmt.Sprintf("relatorio_%s.txt", ts))
	path := base
	for n := 2; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("failed to probe report path: %w", err)
		}
		path = filepath.Join(g.Dir, fmt.Sprintf("relatorio_%s_%d.txt", ts, n))
	}
}

func render(ts, currency string, ds *sales.Dataset, dbPath, sourceRoot string) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Processing Report - %s", ts))
	lines = append(lines, "")

	if len(ds.Warnings) > 0 {
		lines = append(lines, "Warnings:")
		for _, w := range ds.Warnings {
			lines = append(lines, fmt.Sprintf("- %s", w))
		}
		lines = append(lines, "")
	}

	lines = append(lines, fmt.Sprintf("Valid rows processed: %d", len(ds.Records)))
	lines = append(lines, "")

	lines = append(lines, "Totals per day and store:")
	for _, row := range Summarize(ds.Records) {
		lines = append(lines, fmt.Sprintf("- %s | Store %s: %s %s",
			row.Date.Format("2006-01-02"), row.StoreID, currency, formatAmount(row.Total)))
	}
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("Database: %s", dbPath))
	lines = append(lines, fmt.Sprintf("Source root: %s", sourceRoot))

	return strings.Join(lines, "\n") + "\n"
}

// Summarize groups records by (date, store) and sums their totals, ordered
// by date ascending then store_id ascending.
func Summarize(records []sales.SalesRecord) []SummaryRow {
	type key struct {
		date  string
		store string
	}
	totals := make(map[key]decimal.Decimal)
	dates := make(map[key]time.Time)
	for _, rec := range records {
		k := key{date: rec.Date.Format("2006-01-02"), store: rec.StoreID}
		totals[k] = totals[k].Add(rec.TotalValue)
		dates[k] = rec.Date
	}

	rows := make([]SummaryRow, 0, len(totals))
	for k, total := range totals {
		rows = append(rows, SummaryRow{Date: dates[k], StoreID: k.store, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].StoreID < rows[j].StoreID
	})
	return rows
}

// formatAmount renders a decimal with two places and thousands separators:
// 59.7 -> "59.70", 1234.5 -> "1,234.50".
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// List returns the report files in dir sorted by name, which for the fixed
// timestamp pattern is also chronological order. A missing directory
// yields an empty list, matching a day root no run has touched yet.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read reports directory: %w", err)
	}

	var reports []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		reports = append(reports, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(reports)
	return reports, nil
}
