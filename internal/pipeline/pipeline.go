// =============================================================================
// Fechamento - Pipeline Orchestration
// =============================================================================
//
// One Run call executes the whole chain for a day root:
//
//   aggregate (normalize -> coerce -> validate, per file)
//     -> store init (idempotent)
//     -> store append (single transaction)
//     -> report generation
//
// The chain is synchronous and single-threaded; callers that need a
// responsive front end run the whole call off their main goroutine. There
// is no cancellation mid-run: after a successful append the rows are
// durably committed even if report generation fails afterwards.
//
// =============================================================================

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vmsantos/fechamento/internal/config"
	"github.com/vmsantos/fechamento/internal/ingest"
	"github.com/vmsantos/fechamento/internal/report"
	"github.com/vmsantos/fechamento/internal/sales"
	"github.com/vmsantos/fechamento/internal/schema"
	"github.com/vmsantos/fechamento/internal/store"
)

// Options control one pipeline run.
type Options struct {
	// Root is the day root directory containing the input subdirectory.
	Root string

	// DryRun validates and summarizes without writing to the store or the
	// reports directory.
	DryRun bool

	// Logger receives per-step progress. The zero value logs nowhere.
	Logger zerolog.Logger
}

// Result describes a completed run.
type Result struct {
	// RunID uniquely identifies this run in logs.
	RunID string

	// Dataset is the merged in-memory result: valid records + warnings.
	Dataset *sales.Dataset

	// Inserted is the number of rows appended to the store (0 on dry run).
	Inserted int

	// ReportPath is the generated report file (empty on dry run).
	ReportPath string

	// DatabasePath is where rows were (or would have been) persisted.
	DatabasePath string

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Run executes the pipeline for one day root. Per-file and per-row
// problems surface as warnings on the Result; only structural failures
// (nothing to process, store or report I/O) return an error.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := opts.Logger.With().Str("run_id", runID).Logger()

	aliases, err := schema.Default().Merge(cfg.ColumnAliases)
	if err != nil {
		return nil, fmt.Errorf("failed to build alias table: %w", err)
	}

	inputDir := cfg.InputDir(opts.Root)
	dbPath := cfg.Database(opts.Root)
	log.Info().Str("input_dir", inputDir).Msg("reading spreadsheets")

	agg := ingest.New(aliases, cfg.InputExtensions, log)
	ds, err := agg.Load(inputDir)
	if err != nil {
		return nil, err
	}
	for _, w := range ds.Warnings {
		log.Warn().Msg(string(w))
	}
	log.Info().Int("valid_rows", len(ds.Records)).Msg("aggregation complete")

	result := &Result{
		RunID:        runID,
		Dataset:      ds,
		DatabasePath: dbPath,
	}

	if opts.DryRun {
		log.Info().Msg("dry run: skipping store append and report generation")
		result.Elapsed = time.Since(start)
		return result, nil
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	if err := st.Init(ctx); err != nil {
		return nil, err
	}
	inserted, err := st.Append(ctx, ds)
	if err != nil {
		return nil, err
	}
	result.Inserted = inserted
	log.Info().Int("inserted", inserted).Str("database", dbPath).Msg("rows appended")

	gen := &report.Generator{Dir: cfg.ReportsDir(opts.Root), Currency: cfg.CurrencySymbol}
	reportPath, err := gen.Generate(ds, dbPath, opts.Root)
	if err != nil {
		// The append already committed; the caller must not treat the
		// persisted rows as lost.
		return nil, fmt.Errorf("rows committed but report generation failed: %w", err)
	}
	result.ReportPath = reportPath
	log.Info().Str("report", reportPath).Msg("report generated")

	result.Elapsed = time.Since(start)
	return result, nil
}
