// =============================================================================
// Fechamento - Reports Command
// =============================================================================
//
// Browse previously generated reconciliation reports.
//
// COMMAND USAGE:
//   fechamento reports list --root <dir>
//   fechamento reports show <name> --root <dir>
//
// Accepts the day root or the reports directory itself for --root, the
// same way process accepts either the root or the spreadsheet directory.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmsantos/fechamento/internal/report"
	"github.com/vmsantos/fechamento/pkg/utils"
)

// reportsRoot is the day root (or reports directory) to browse.
var reportsRoot string

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Browse generated reconciliation reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the reports generated for a day root",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveReportsDir()
		if err != nil {
			return err
		}
		paths, err := report.List(dir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Printf("No reports found in %s\n", dir)
			return nil
		}
		for _, p := range paths {
			fmt.Println(filepath.Base(p))
		}
		return nil
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <report>",
	Short: "Print one report's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveReportsDir()
		if err != nil {
			return err
		}

		name := args[0]
		path := name
		if !strings.ContainsRune(name, os.PathSeparator) {
			path = filepath.Join(dir, name)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read report: %w", err)
		}
		fmt.Print(string(content))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)

	reportsCmd.PersistentFlags().StringVar(
		&reportsRoot,
		"root",
		".",
		"Day root directory (or its reports subdirectory)",
	)
}

func resolveReportsDir() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	root, err := utils.ResolveRoot(reportsRoot, cfg.ReportsSubdir)
	if err != nil {
		return "", err
	}
	return cfg.ReportsDir(root), nil
}
