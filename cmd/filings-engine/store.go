// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filings-engine/internal/store"
	"github.com/pdiddy/filings-engine/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the filings database (init, stats, index, search)",
	Long: `Store manages the SQLite database that holds filing records, EPS
observations, and resolved values. Use subcommands to initialize the schema,
inspect row counts, index converted text for full-text search, or query the
indexed corpus.`,
}

// --- init subcommand ---

var storeInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema",
	RunE:  runStoreInit,
}

func runStoreInit(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Printf("Initialized %s\n", stringOpt(cmd, "db", "db_path"))
	return nil
}

// --- stats subcommand ---

var storeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show row counts for each table",
	RunE:  runStoreStats,
}

func runStoreStats(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("%-14s %d\n", "Filings:", stats.Filings)
	fmt.Printf("%-14s %d\n", "Observations:", stats.Observations)
	fmt.Printf("%-14s %d\n", "Resolved:", stats.Resolved)
	fmt.Printf("%-14s %d\n", "Indexed:", stats.Indexed)
	return nil
}

// --- index subcommand ---

var storeIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index converted filing text for full-text search",
	RunE:  runStoreIndex,
}

func runStoreIndex(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	textsDir := filepath.Join(stringOpt(cmd, "filings-dir", "filings_dir"), "text")
	n, err := st.IndexTexts(context.Background(), textsDir, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d filing(s)\n", n)
	return nil
}

// --- search subcommand ---

var storeSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over indexed filing text",
	RunE:  runStoreSearch,
}

func runStoreSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("provide a search query")
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	maxResults, _ := cmd.Flags().GetInt("max-results")
	hits, err := st.SearchText(context.Background(), query, maxResults)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatTextHits(hits, jsonOutput)
}

func formatTextHits(hits []store.TextHit, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-22s  %-24s  %s\n", "Rank", "Filing", "Company", "Snippet")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, h := range hits {
		company := h.Company
		if len(company) > 24 {
			company = company[:21] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-22s  %-24s  %s\n", i+1, h.Filing, company, h.Snippet)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(hits))
	return nil
}

// --- shared helpers ---

// openStore opens the SQLite store using the --db flag or config value.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return store.Open(types.StoreConfig{
		DBPath:     stringOpt(cmd, "db", "db_path"),
		MaxResults: maxResults,
	})
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("db", "db/filings.db", "SQLite database path")
	storeCmd.PersistentFlags().String("filings-dir", "filings", "base directory for filings (contains text/)")
	storeCmd.PersistentFlags().Int("max-results", 20, "maximum number of search results")

	storeSearchCmd.Flags().Bool("json", false, "output results as JSON")

	storeCmd.AddCommand(storeInitCmd)
	storeCmd.AddCommand(storeStatsCmd)
	storeCmd.AddCommand(storeIndexCmd)
	storeCmd.AddCommand(storeSearchCmd)

	rootCmd.AddCommand(storeCmd)
}
