package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filings-engine/internal/acquire"
	"github.com/pdiddy/filings-engine/internal/edgar"
	"github.com/pdiddy/filings-engine/internal/watchlist"
	"github.com/pdiddy/filings-engine/pkg/types"
)

const (
	defaultTimeout = 60 * time.Second
	defaultDelay   = 1 * time.Second
)

var acquireCmd = &cobra.Command{
	Use:   "acquire [identifiers...]",
	Short: "Download 8-K filings for tickers, CIKs, or accession numbers",
	Long: `Acquire resolves identifiers (ticker symbols, CIK numbers, accession
numbers) to 8-K filings, downloads each filing's primary document, and
writes a metadata record. Already-downloaded filings are skipped.

Identifiers come from the command line, a watchlist file, or both.`,
	RunE: runAcquire,
}

func init() {
	acquireCmd.Flags().String("watchlist", "", "YAML watchlist of companies to acquire")
	acquireCmd.Flags().Int("limit", 10, "maximum filings per company")
	acquireCmd.Flags().String("from", "", "filing date range start (YYYY-MM-DD)")
	acquireCmd.Flags().String("to", "", "filing date range end (YYYY-MM-DD)")
	acquireCmd.Flags().String("forms", "", "form types to acquire (comma-separated, default 8-K,8-K/A)")
	acquireCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	acquireCmd.Flags().Duration("delay", defaultDelay, "delay between consecutive downloads")
	acquireCmd.Flags().String("filings-dir", "filings", "base directory for filings")
	acquireCmd.Flags().Bool("store", false, "record acquired filings in the database")
	acquireCmd.Flags().String("db", "db/filings.db", "SQLite database path")

	rootCmd.AddCommand(acquireCmd)
}

func runAcquire(cmd *cobra.Command, args []string) error {
	identifiers := args

	if wlPath, _ := cmd.Flags().GetString("watchlist"); wlPath != "" {
		wl, err := watchlist.Load(wlPath)
		if err != nil {
			return err
		}
		for _, problem := range watchlist.Validate(wl) {
			fmt.Fprintf(os.Stderr, "warning: watchlist: %s\n", problem)
		}
		identifiers = append(identifiers, watchlist.Identifiers(wl)...)
	}

	if len(identifiers) == 0 {
		return fmt.Errorf("provide one or more identifiers (tickers, CIKs, or accession numbers) or --watchlist")
	}

	userAgent, err := edgarUserAgent(cmd)
	if err != nil {
		return err
	}
	cfg, err := acquisitionConfig(cmd, userAgent)
	if err != nil {
		return err
	}

	client := edgar.NewClient(cfg.HTTPConfig)
	result := acquire.AcquireBatch(context.Background(), client, identifiers, cfg, os.Stdout)

	if record, _ := cmd.Flags().GetBool("store"); record && len(result.Filings) > 0 {
		if err := recordFilings(cmd, result.Filings); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d filing(s) failed acquisition", result.Failed)
	}
	return nil
}

func acquisitionConfig(cmd *cobra.Command, userAgent string) (types.AcquisitionConfig, error) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	delay, _ := cmd.Flags().GetDuration("delay")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := types.AcquisitionConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		DownloadDelay: delay,
		FilingsDir:    stringOpt(cmd, "filings-dir", "filings_dir"),
		Limit:         limit,
	}

	if forms, _ := cmd.Flags().GetString("forms"); forms != "" {
		cfg.Forms = strings.Split(forms, ",")
	}

	var err error
	if cfg.From, err = dateFlag(cmd, "from"); err != nil {
		return cfg, err
	}
	if cfg.To, err = dateFlag(cmd, "to"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// recordFilings upserts acquired filings into the database so later stages
// can attach observations to them.
func recordFilings(cmd *cobra.Command, filings []types.Filing) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	for _, f := range filings {
		if err := st.UpsertFiling(ctx, f); err != nil {
			return fmt.Errorf("recording %s: %w", f.Accession, err)
		}
	}
	fmt.Printf("Recorded %d filing(s) in the database\n", len(filings))
	return nil
}
