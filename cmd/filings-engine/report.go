package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filings-engine/internal/report"
	"github.com/pdiddy/filings-engine/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write resolved EPS values to a report file",
	Long: `Report renders the resolved EPS table as CSV (the default), an aligned
terminal table, JSON, or YAML. Rows are ordered by filing so repeated runs
produce identical output.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("output", "output.csv", "report destination file")
	reportCmd.Flags().String("format", "csv", "report format: csv, table, json, or yaml")
	reportCmd.Flags().String("db", "db/filings.db", "SQLite database path")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	rows, err := st.Resolved(context.Background())
	if err != nil {
		return err
	}

	format := types.ReportFormat(stringOpt(cmd, "format", "format"))
	if format == types.ReportTable {
		report.WriteTable(os.Stdout, rows)
		return nil
	}

	output := stringOpt(cmd, "output", "output")
	if err := report.WriteFile(output, rows, format); err != nil {
		return err
	}
	fmt.Printf("Wrote %d row(s) to %s\n", len(rows), output)
	return nil
}
