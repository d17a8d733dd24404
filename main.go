// =============================================================================
// Fechamento - Main Entry Point
// =============================================================================
//
// fechamento ingests the daily sales spreadsheets exported by the stores,
// normalizes them into a canonical schema, persists the validated rows into
// an append-only SQLite database and writes a plain-text reconciliation
// report for every run.
//
// USAGE:
//   fechamento process        - Process all spreadsheets under a day root
//   fechamento reports list   - List previously generated reports
//   fechamento check          - Inspect the sales database
//   fechamento version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core business logic (not for external import)
//   - pkg/       : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/vmsantos/fechamento/cmd"
)

func main() {
	cmd.Execute()
}
