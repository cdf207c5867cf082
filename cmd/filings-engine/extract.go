package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filings-engine/internal/extract"
	"github.com/pdiddy/filings-engine/internal/report"
	"github.com/pdiddy/filings-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract EPS figures from converted filing text",
	Long: `Extract scans each converted text file for earnings-per-share phrasings
and reduces the matches to one figure per filing. Results print as they are
found; --store records them as observations in the database so resolve can
fold repeated figures for the same filing.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("filings-dir", "filings", "base directory for filings")
	extractCmd.Flags().Bool("store", false, "record extracted figures as observations in the database")
	extractCmd.Flags().Bool("table", false, "print extracted figures as an aligned table")
	extractCmd.Flags().String("db", "db/filings.db", "SQLite database path")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := types.ExtractionConfig{
		FilingsDir: stringOpt(cmd, "filings-dir", "filings_dir"),
	}

	observations, summary, err := extract.ExtractAll(cfg, os.Stdout)
	if err != nil {
		return err
	}

	if table, _ := cmd.Flags().GetBool("table"); table && len(observations) > 0 {
		printObservations(observations)
	}

	if record, _ := cmd.Flags().GetBool("store"); record && len(observations) > 0 {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.AddObservations(context.Background(), observations); err != nil {
			return err
		}
		fmt.Printf("Recorded %d observation(s) in the database\n", len(observations))
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d filing(s) failed extraction", summary.Failed)
	}
	return nil
}

// printObservations renders extracted figures as an aligned table, negatives
// in accounting parentheses.
func printObservations(observations []types.Observation) {
	fmt.Printf("\n%-30s  %s\n", "Filing", "EPS")
	fmt.Println(strings.Repeat("-", 40))
	for _, o := range observations {
		fmt.Printf("%-30s  %s\n", o.Filing, report.FormatEPS(o.Value))
	}
}
