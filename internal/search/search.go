// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search finds SEC registrants and filings across search backends
// and returns unified, deduplicated results.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/filings-engine/pkg/types"
)

// Backend searches a single source. Each backend (ticker directory, EDGAR
// full-text search) implements this interface.
type Backend interface {
	Name() string
	Search(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.SearchResult, error)
}

// Query holds the search parameters.
type Query struct {
	// Text is the company name, ticker, or phrase to look for.
	Text string

	// Forms restricts filing-level hits to these form types. Empty uses
	// the configured default.
	Forms []string

	// From and To bound filing dates for filing-level hits.
	From time.Time
	To   time.Time
}

// IsEmpty reports whether the query contains no searchable text.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == ""
}

// SearchOutput holds the results and dedup statistics.
type SearchOutput struct {
	Results       []types.SearchResult
	DupsRemoved   int
	BackendErrors []string
}

// Search fans out the query to all backends concurrently, deduplicates by
// registrant, ranks by score, and returns the top N.
func Search(ctx context.Context, query Query, backends []Backend, cfg types.SearchConfig, w io.Writer) (SearchOutput, error) {
	if query.IsEmpty() {
		return SearchOutput{}, fmt.Errorf("query is empty: provide a company name or ticker")
	}
	if len(backends) == 0 {
		return SearchOutput{}, fmt.Errorf("no search backends configured")
	}

	type backendResult struct {
		results []types.SearchResult
		err     error
		name    string
	}

	ch := make(chan backendResult, len(backends))
	var wg sync.WaitGroup

	for _, b := range backends {
		wg.Add(1)
		go func(b Backend) {
			defer wg.Done()
			results, err := b.Search(ctx, query, cfg)
			ch <- backendResult{results: results, err: err, name: b.Name()}
		}(b)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var all []types.SearchResult
	var backendErrors []string
	for br := range ch {
		if br.err != nil {
			msg := fmt.Sprintf("%s: %v", br.name, br.err)
			backendErrors = append(backendErrors, msg)
			fmt.Fprintf(w, "warning: backend %s failed: %v\n", br.name, br.err)
			continue
		}
		all = append(all, br.results...)
	}

	deduped, removed := deduplicate(all)

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].RelevanceScore > deduped[j].RelevanceScore
	})

	if cfg.MaxResults > 0 && len(deduped) > cfg.MaxResults {
		deduped = deduped[:cfg.MaxResults]
	}

	return SearchOutput{
		Results:       deduped,
		DupsRemoved:   removed,
		BackendErrors: backendErrors,
	}, nil
}

// deduplicate merges results that refer to the same registrant. Both
// backends report a CIK, so the CIK is the dedup key; a merged row keeps
// the best score and fills fields the first hit lacked.
func deduplicate(results []types.SearchResult) ([]types.SearchResult, int) {
	seen := make(map[string]int) // CIK → index in deduped
	var deduped []types.SearchResult
	removed := 0

	for _, r := range results {
		if r.CIK != "" {
			if idx, ok := seen[r.CIK]; ok {
				mergeInto(&deduped[idx], r)
				removed++
				continue
			}
		}
		idx := len(deduped)
		deduped = append(deduped, r)
		if r.CIK != "" {
			seen[r.CIK] = idx
		}
	}
	return deduped, removed
}

// mergeInto fills empty fields of dst from src and keeps the higher score.
func mergeInto(dst *types.SearchResult, src types.SearchResult) {
	if dst.Ticker == "" && src.Ticker != "" {
		dst.Ticker = src.Ticker
	}
	if dst.Company == "" && src.Company != "" {
		dst.Company = src.Company
	}
	if dst.Accession == "" && src.Accession != "" {
		dst.Accession = src.Accession
		dst.Form = src.Form
		dst.Filed = src.Filed
	}
	if src.RelevanceScore > dst.RelevanceScore {
		dst.RelevanceScore = src.RelevanceScore
	}
	if dst.Source != src.Source && !strings.Contains(dst.Source, src.Source) {
		dst.Source = dst.Source + "," + src.Source
	}
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(out SearchOutput, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-40s  %-6s  %-10s  %-6s  %-10s  %-6s  %s\n",
		"Rank", "Company", "Ticker", "CIK", "Form", "Filed", "Score", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range out.Results {
		company := r.Company
		if len(company) > 40 {
			company = company[:37] + "..."
		}
		filed := ""
		if !r.Filed.IsZero() {
			filed = r.Filed.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-4d  %-40s  %-6s  %-10s  %-6s  %-10s  %-6.2f  %s\n",
			i+1, company, r.Ticker, r.CIK, r.Form, filed, r.RelevanceScore, r.Source)
	}

	fmt.Fprintf(w, "\n%d results", len(out.Results))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates merged)", out.DupsRemoved)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out SearchOutput, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Results)
}
