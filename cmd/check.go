// =============================================================================
// Fechamento - Check Command
// =============================================================================
//
// Quick inspection of the sales database: total row count plus the most
// recent insertions, to spot-verify that an import landed.
//
// COMMAND USAGE:
//   fechamento check --root <dir> [--limit N]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmsantos/fechamento/internal/store"
	"github.com/vmsantos/fechamento/pkg/utils"
)

// checkRoot is the day root whose database is inspected.
var checkRoot string

// checkLimit is how many recent rows to print.
var checkLimit int

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Inspect the sales database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		root, err := utils.ResolveRoot(checkRoot, cfg.InputSubdir)
		if err != nil {
			return err
		}

		st, err := store.Open(cfg.Database(root))
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Init(cmd.Context()); err != nil {
			return err
		}

		total, err := st.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Database:   %s\n", st.Path())
		fmt.Printf("Total rows: %d\n", total)

		recent, err := st.Recent(cmd.Context(), checkLimit)
		if err != nil {
			return err
		}
		if len(recent) > 0 {
			fmt.Printf("\nMost recent %d row(s):\n", len(recent))
		}
		for _, rec := range recent {
			fmt.Printf("  %s | store %s | product %s | qty %d | unit %s | total %s | %s (%s)\n",
				rec.Date.Format("2006-01-02"), rec.StoreID, rec.ProductID,
				rec.Quantity, rec.UnitPrice.StringFixed(2), rec.TotalValue.StringFixed(2),
				rec.SourceFile, rec.ImportedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(
		&checkRoot,
		"root",
		".",
		"Day root directory",
	)
	checkCmd.Flags().IntVar(
		&checkLimit,
		"limit",
		5,
		"Number of recent rows to display",
	)
}
