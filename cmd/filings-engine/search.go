package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filings-engine/internal/edgar"
	"github.com/pdiddy/filings-engine/internal/search"
	"github.com/pdiddy/filings-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search EDGAR for registrants and filings",
	Long: `Search matches a company name or ticker against the SEC ticker directory
and EDGAR full-text search. Results are deduplicated by CIK and ranked by
relevance. Filing-level hits carry an accession number that acquire accepts
directly.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "company name, ticker, or phrase")
	searchCmd.Flags().String("forms", "", "restrict filing hits to form types (comma-separated, default 8-K)")
	searchCmd.Flags().String("from", "", "filing date range start (YYYY-MM-DD)")
	searchCmd.Flags().String("to", "", "filing date range end (YYYY-MM-DD)")
	searchCmd.Flags().Int("max-results", 20, "maximum number of results to return")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "save the query and results to a YAML file")
	searchCmd.Flags().Bool("no-tickers", false, "disable the ticker-directory backend")
	searchCmd.Flags().Bool("no-full-text", false, "disable the EDGAR full-text backend")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, err := searchQueryFromFlags(cmd, args)
	if err != nil {
		return err
	}

	userAgent, err := edgarUserAgent(cmd)
	if err != nil {
		return err
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	noTickers, _ := cmd.Flags().GetBool("no-tickers")
	noFullText, _ := cmd.Flags().GetBool("no-full-text")

	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: userAgent,
		},
		MaxResults:     maxResults,
		EnableTickers:  !noTickers,
		EnableFullText: !noFullText,
		Forms:          []string{"8-K"},
	}

	var backends []search.Backend
	if cfg.EnableTickers {
		backends = append(backends, &search.TickerBackend{Client: edgar.NewClient(cfg.HTTPConfig)})
	}
	if cfg.EnableFullText {
		backends = append(backends, &search.FullTextBackend{Client: &http.Client{Timeout: cfg.Timeout}})
	}

	out, err := search.Search(context.Background(), query, backends, cfg, os.Stderr)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := search.WriteQueryFile(savePath, query, cfg, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query to %s\n", savePath)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(out, os.Stdout)
	}
	search.FormatTable(out, os.Stdout)
	return nil
}

func searchQueryFromFlags(cmd *cobra.Command, args []string) (search.Query, error) {
	text, _ := cmd.Flags().GetString("query")
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}
	query := search.Query{Text: text}

	if forms, _ := cmd.Flags().GetString("forms"); forms != "" {
		query.Forms = strings.Split(forms, ",")
	}

	var err error
	if query.From, err = dateFlag(cmd, "from"); err != nil {
		return query, err
	}
	if query.To, err = dateFlag(cmd, "to"); err != nil {
		return query, err
	}
	return query, nil
}
