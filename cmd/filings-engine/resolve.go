package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filings-engine/internal/report"
	"github.com/pdiddy/filings-engine/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Rebuild resolved EPS values from stored observations",
	Long: `Resolve replays every stored observation through the conflict-resolution
fold, in the order the observations were recorded, and rebuilds the resolved
table. Use --csv to write the resolved values out directly.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("db", "db/filings.db", "SQLite database path")
	resolveCmd.Flags().String("csv", "", "write resolved values to a CSV file")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	n, err := st.Rebuild(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Resolved EPS for %d filing(s)\n", n)

	if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
		rows, err := st.Resolved(ctx)
		if err != nil {
			return err
		}
		if err := report.WriteFile(csvPath, rows, types.ReportCSV); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", csvPath)
	}
	return nil
}
