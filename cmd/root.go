// =============================================================================
// Fechamento - Root Command
// =============================================================================
//
// Defines the base Cobra command every subcommand hangs off:
//
//   fechamento
//   ├── process   (ingest spreadsheets, persist, report)
//   ├── reports   (list/show generated reports)
//   ├── check     (inspect the sales database)
//   └── version
//
// The root command owns the global flags (--config, --verbose) and the
// logger setup shared by all subcommands.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vmsantos/fechamento/internal/config"
)

// cfgFile holds the path to the configuration file (--config).
var cfgFile string

// verbose enables debug logging (--verbose).
var verbose bool

// logger is the process-wide logger, configured in loadConfig.
var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "fechamento",
	Short: "Fechamento - daily sales ingestion and reconciliation",
	Long: `Fechamento ingests the stores' daily sales spreadsheets, normalizes
their heterogeneous headers into a canonical schema, validates and computes
row totals, appends the valid rows to an append-only SQLite database and
writes a plain-text reconciliation report per run.

Example Usage:
  fechamento process --root ./2024-03-05     # Process one day's spreadsheets
  fechamento reports list --root ./2024-03-05
  fechamento check --root ./2024-03-05`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig loads the configuration and wires the logger accordingly.
// Every subcommand calls it first.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		level = parsed
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()

	return cfg, nil
}
