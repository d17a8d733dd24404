// =============================================================================
// Fechamento - Process Command
// =============================================================================
//
// The main command: run the whole ingestion pipeline for one day root.
//
// COMMAND USAGE:
//   fechamento process --root <dir> [--dry-run] [--notify]
//
// PIPELINE:
//   1. Resolve the day root (the directory itself or its planilha/ parent)
//   2. Discover and ingest every spreadsheet (skipped files become warnings)
//   3. Initialize the SQLite store (idempotent) and append the valid rows
//   4. Generate the reconciliation report
//   5. Optionally hand the report to the confirmation sender
//
// Warnings never abort a run. Fatal are only: no input files, no valid
// files, store write failure, report write failure. A report failure after
// a successful append leaves the appended rows committed.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmsantos/fechamento/internal/config"
	"github.com/vmsantos/fechamento/internal/ingest"
	"github.com/vmsantos/fechamento/internal/notify"
	"github.com/vmsantos/fechamento/internal/pipeline"
	"github.com/vmsantos/fechamento/pkg/utils"
)

// rootDir is the day root (or its planilha subdirectory) to process.
var rootDir string

// dryRun validates without writing to the store or the reports directory.
var dryRun bool

// sendNotification hands the report to the configured sender after a
// successful run.
var sendNotification bool

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process the day's spreadsheets and generate a report",
	Long: `The process command reads every sales spreadsheet under the day root's
input directory, normalizes and validates the rows, appends the valid ones to
the SQLite database and writes a reconciliation report.

Files with missing required columns and rows that fail validation are skipped
with a warning; they never abort the run. The run fails only when there is
nothing to process or the database/report cannot be written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&rootDir,
		"root",
		".",
		"Day root directory (or its spreadsheet subdirectory)",
	)
	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Validate and summarize without writing the database or a report",
	)
	processCmd.Flags().BoolVar(
		&sendNotification,
		"notify",
		false,
		"Send the confirmation message after a successful run",
	)
}

func runProcess(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root, err := utils.ResolveRoot(rootDir, cfg.InputSubdir)
	if err != nil {
		return err
	}
	if !utils.DirExists(cfg.InputDir(root)) {
		return fmt.Errorf("input directory not found: %s", cfg.InputDir(root))
	}

	result, err := pipeline.Run(cmd.Context(), cfg, pipeline.Options{
		Root:   root,
		DryRun: dryRun,
		Logger: logger,
	})
	if err != nil {
		var noInput *ingest.NoInputFilesError
		var noValid *ingest.NoValidFilesError
		if errors.As(err, &noInput) || errors.As(err, &noValid) {
			return err
		}
		return fmt.Errorf("run failed: %w", err)
	}

	for _, w := range result.Dataset.Warnings {
		fmt.Printf("WARNING: %s\n", w)
	}
	fmt.Printf("Valid rows:      %d\n", len(result.Dataset.Records))
	if dryRun {
		fmt.Println("Dry run: nothing persisted, no report written.")
		return nil
	}
	fmt.Printf("Rows appended:   %d\n", result.Inserted)
	fmt.Printf("Database:        %s\n", result.DatabasePath)
	fmt.Printf("Report:          %s\n", result.ReportPath)
	fmt.Printf("Time elapsed:    %s\n", result.Elapsed)

	if sendNotification || cfg.Notify.Enabled {
		notifyRun(cmd, cfg, result)
	}
	return nil
}

// notifyRun hands the report to the confirmation sender. Delivery problems
// are logged and swallowed; the run already succeeded and the appended
// rows stay committed regardless.
func notifyRun(cmd *cobra.Command, cfg *config.Config, result *pipeline.Result) {
	body, err := os.ReadFile(result.ReportPath)
	if err != nil {
		logger.Warn().Err(err).Msg("notification skipped: could not read report")
		return
	}

	var sender notify.Sender = notify.LogSender{Log: logger}
	msg := notify.Message{
		From:        cfg.Notify.From,
		To:          cfg.Notify.To,
		Subject:     cfg.Notify.Subject,
		Body:        string(body),
		Attachments: []string{result.ReportPath},
	}
	if err := sender.Send(cmd.Context(), msg); err != nil {
		logger.Warn().Err(err).Msg("confirmation delivery failed")
	}
}
